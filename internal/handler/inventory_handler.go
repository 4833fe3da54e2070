package handler

import (
	"context"
	"net/http"
)

// InventoryServiceInterface は在庫ハンドラーが必要とするサービスインターフェース。
type InventoryServiceInterface interface {
	// Aggregate は血液型ごとのドナー数を集計する。
	Aggregate(ctx context.Context) (map[string]int, error)
}

// InventoryHandler は血液在庫ビューのHTTPハンドラー。
type InventoryHandler struct {
	service InventoryServiceInterface
}

// NewInventoryHandler はInventoryHandlerを生成する。
func NewInventoryHandler(service InventoryServiceInterface) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// Aggregate は血液型ごとのドナー数を返す。
// GET /api/inventory
func (h *InventoryHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.service.Aggregate(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, inventory)
}
