// Package notification は新規血液リクエストの通知配信を提供する。
// 配信はベストエフォートのサイドチャネルであり、失敗しても
// リクエスト受付の成否には一切影響しない。
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/bloodlink/internal/model"
)

// Channel は単一の通知チャネル（メール、SMS等）のインターフェース。
type Channel interface {
	// Name はログ・メトリクス用のチャネル識別子を返す。
	Name() string
	// Send はリクエストの通知を送信する。
	Send(ctx context.Context, req *model.BloodRequest) error
}

// Recorder は通知結果のメトリクス記録インターフェース。
type Recorder interface {
	RecordNotificationSent(channel string)
	RecordNotificationFailure(channel string)
}

// Dispatcher は設定済みの全チャネルへ通知をファンアウトする。
// 各チャネルは独立したゴルーチンで実行され、互いの失敗に影響されない。
// Dispatchは即座に返り、呼び出し元のレスポンスを通知完了でブロックしない。
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	logger   *slog.Logger
	metrics  Recorder

	wg sync.WaitGroup
}

// NewDispatcher はDispatcherを生成する。
// timeoutが0以下の場合はデフォルト値10秒を使用する。
// metricsはnil可（記録をスキップする）。
func NewDispatcher(channels []Channel, timeout time.Duration, logger *slog.Logger, metrics Recorder) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		channels: channels,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

// Dispatch は全チャネルへの通知送信を開始して即座に返る。
// HTTPリクエストのキャンセルに巻き込まれないよう、各送信は
// リクエストコンテキストから切り離した独自のタイムアウト付き
// コンテキストで実行する。失敗はログとメトリクスに記録するのみで、
// 呼び出し元には決して伝播しない。
func (d *Dispatcher) Dispatch(req *model.BloodRequest) {
	for _, ch := range d.channels {
		d.wg.Add(1)
		go func(ch Channel) {
			defer d.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()

			if err := ch.Send(ctx, req); err != nil {
				d.logger.Error("通知の送信に失敗しました",
					slog.String("channel", ch.Name()),
					slog.String("request_id", req.ID),
					slog.String("error", err.Error()),
				)
				if d.metrics != nil {
					d.metrics.RecordNotificationFailure(ch.Name())
				}
				return
			}

			d.logger.Info("通知を送信しました",
				slog.String("channel", ch.Name()),
				slog.String("request_id", req.ID),
			)
			if d.metrics != nil {
				d.metrics.RecordNotificationSent(ch.Name())
			}
		}(ch)
	}
}

// Wait は進行中の全送信の完了を待つ。シャットダウンとテスト用。
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// EmailBody はメール通知の本文を構築する。
func EmailBody(req *model.BloodRequest) string {
	return fmt.Sprintf("%s requested %d unit(s) of %s in %s.",
		req.PatientName, req.UnitsRequired, req.BloodGroup, req.City)
}

// SMSBody はSMS通知の本文を構築する。
func SMSBody(req *model.BloodRequest) string {
	return fmt.Sprintf("New %s request: %d unit(s) in %s.",
		req.BloodGroup, req.UnitsRequired, req.City)
}
