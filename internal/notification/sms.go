package notification

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/hitoshi/bloodlink/internal/model"
)

// SMSConfig はTwilio SMSチャネルの設定を保持する。
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
}

// SMSChannel はTwilio経由で管理者にSMS通知を送るチャネル。
type SMSChannel struct {
	cfg    SMSConfig
	client *twilio.RestClient
}

// NewSMSChannel はSMSChannelを生成する。
func NewSMSChannel(cfg SMSConfig) *SMSChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &SMSChannel{cfg: cfg, client: client}
}

// Name はチャネル識別子を返す。
func (c *SMSChannel) Name() string {
	return "sms"
}

// Send は新規リクエストの要約SMSを管理者宛に送信する。
// Twilio SDKはコンテキストを受け取らないため、タイムアウトは
// ディスパッチャ側のコンテキスト監視とSDK内部のHTTPタイムアウトに依る。
func (c *SMSChannel) Send(ctx context.Context, req *model.BloodRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(c.cfg.From)
	params.SetTo(c.cfg.To)
	params.SetBody(SMSBody(req))

	if _, err := c.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

// compile-time interface check
var _ Channel = (*SMSChannel)(nil)
