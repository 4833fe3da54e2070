package notification

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/hitoshi/bloodlink/internal/model"
)

// EmailConfig はSMTPチャネルの設定を保持する。
type EmailConfig struct {
	Host string
	Port int
	User string
	Pass string
	To   string
}

// EmailChannel はSMTP経由で管理者にメール通知を送るチャネル。
type EmailChannel struct {
	cfg EmailConfig
}

// NewEmailChannel はEmailChannelを生成する。
func NewEmailChannel(cfg EmailConfig) *EmailChannel {
	return &EmailChannel{cfg: cfg}
}

// Name はチャネル識別子を返す。
func (c *EmailChannel) Name() string {
	return "email"
}

// Send は新規リクエストの要約メールを管理者宛に送信する。
func (c *EmailChannel) Send(ctx context.Context, req *model.BloodRequest) error {
	msg := mail.NewMsg()
	if err := msg.From(c.cfg.User); err != nil {
		return fmt.Errorf("failed to set mail sender: %w", err)
	}
	if err := msg.To(c.cfg.To); err != nil {
		return fmt.Errorf("failed to set mail recipient: %w", err)
	}
	msg.Subject("New Blood Request")
	msg.SetBodyString(mail.TypeTextPlain, EmailBody(req))

	client, err := mail.NewClient(c.cfg.Host,
		mail.WithPort(c.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.cfg.User),
		mail.WithPassword(c.cfg.Pass),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// compile-time interface check
var _ Channel = (*EmailChannel)(nil)
