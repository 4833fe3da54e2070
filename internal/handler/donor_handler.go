package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/bloodlink/internal/donor"
	"github.com/hitoshi/bloodlink/internal/middleware"
	"github.com/hitoshi/bloodlink/internal/model"
)

// DonorServiceInterface はドナーハンドラーが必要とするサービスインターフェース。
type DonorServiceInterface interface {
	// Register はドナーを検証して登録する。
	Register(ctx context.Context, in donor.RegisterInput) (*model.Donor, error)
	// List は登録済みドナーを新しい順に返す。
	List(ctx context.Context) ([]*model.Donor, error)
	// Delete は指定IDのドナーを削除する。
	Delete(ctx context.Context, id string) error
}

// DonorHandler はドナー管理のHTTPハンドラー。
type DonorHandler struct {
	service DonorServiceInterface
}

// NewDonorHandler はDonorHandlerを生成する。
func NewDonorHandler(service DonorServiceInterface) *DonorHandler {
	return &DonorHandler{service: service}
}

// registerDonorRequest はドナー登録リクエストのボディ。
type registerDonorRequest struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	BloodGroup string `json:"bloodGroup"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Location   string `json:"location"`
}

// registerDonorResponse はドナー登録成功時のレスポンス。
type registerDonorResponse struct {
	Message string       `json:"message"`
	Donor   *model.Donor `json:"donor"`
}

// Register はドナー登録を処理する。
// POST /api/donors
func (h *DonorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerDonorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "Invalid request body",
			Category: "validation",
			Action:   "Send a valid JSON body.",
		})
		return
	}

	registered, err := h.service.Register(r.Context(), donor.RegisterInput{
		Name:       req.Name,
		Age:        req.Age,
		BloodGroup: req.BloodGroup,
		Phone:      req.Phone,
		Email:      req.Email,
		Location:   req.Location,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, registerDonorResponse{
		Message: "Donor registered",
		Donor:   registered,
	})
}

// List はドナー一覧を返す。
// GET /api/donors
func (h *DonorHandler) List(w http.ResponseWriter, r *http.Request) {
	donors, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// ドナーが0件でも空配列を返す
	if donors == nil {
		donors = []*model.Donor{}
	}
	writeJSONResponse(w, http.StatusOK, donors)
}

// Delete はドナーを削除する。管理者専用。
// DELETE /api/donors/{id}
func (h *DonorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Donor deleted"})
}
