// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// サービス層・通知ディスパッチャ・HTTPミドルウェアから利用する。
type Collector struct {
	donorsRegistered  prometheus.Counter
	requestsSubmitted prometheus.Counter
	matchesFound      prometheus.Counter
	notificationsSent *prometheus.CounterVec
	notificationsFail *prometheus.CounterVec
	httpStatus        *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		donorsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_donors_registered_total",
			Help: "登録されたドナーの合計数",
		}),
		requestsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_requests_submitted_total",
			Help: "受け付けた血液リクエストの合計数",
		}),
		matchesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_matching_donors_total",
			Help: "リクエストに対して見つかった候補ドナーの合計数",
		}),
		notificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_notifications_sent_total",
			Help: "チャネル別の通知送信成功数",
		}, []string{"channel"}),
		notificationsFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_notifications_failed_total",
			Help: "チャネル別の通知送信失敗数",
		}, []string{"channel"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.donorsRegistered,
		c.requestsSubmitted,
		c.matchesFound,
		c.notificationsSent,
		c.notificationsFail,
		c.httpStatus,
	)

	return c
}

// RecordDonorRegistered はドナー登録を記録する。
func (c *Collector) RecordDonorRegistered() {
	c.donorsRegistered.Inc()
}

// RecordRequestSubmitted は血液リクエスト受付を記録する。
func (c *Collector) RecordRequestSubmitted() {
	c.requestsSubmitted.Inc()
}

// RecordMatchesFound は候補ドナー数を記録する。
func (c *Collector) RecordMatchesFound(count int) {
	c.matchesFound.Add(float64(count))
}

// RecordNotificationSent は通知送信成功を記録する。
func (c *Collector) RecordNotificationSent(channel string) {
	c.notificationsSent.WithLabelValues(channel).Inc()
}

// RecordNotificationFailure は通知送信失敗を記録する。
func (c *Collector) RecordNotificationFailure(channel string) {
	c.notificationsFail.WithLabelValues(channel).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
