package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// DatabasePinger はヘルスチェックが必要とするデータベース疎通確認のインターフェース。
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	db DatabasePinger
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(db DatabasePinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Check はサーバーとデータベースの状態を返す。
// データベースに到達できない場合は503を返す。
// GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Warn("データベースへの疎通確認に失敗しました", slog.String("error", err.Error()))
		writeJSONResponse(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "Degraded",
			Database: "Disconnected",
		})
		return
	}

	writeJSONResponse(w, http.StatusOK, healthResponse{
		Status:   "OK",
		Database: "Connected",
	})
}
