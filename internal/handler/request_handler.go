package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/bloodlink/internal/middleware"
	"github.com/hitoshi/bloodlink/internal/model"
	"github.com/hitoshi/bloodlink/internal/request"
)

// RequestServiceInterface は血液リクエストハンドラーが必要とするサービスインターフェース。
type RequestServiceInterface interface {
	// Submit はリクエストを検証・登録し、候補ドナー数を返す。
	Submit(ctx context.Context, in request.SubmitInput) (*model.BloodRequest, int, error)
	// List は登録済みリクエストを新しい順に返す。
	List(ctx context.Context) ([]*model.BloodRequest, error)
	// Delete は指定IDのリクエストを削除する。
	Delete(ctx context.Context, id string) error
	// Approve は指定IDのリクエストを承認済みに更新する。
	Approve(ctx context.Context, id string) (*model.BloodRequest, error)
}

// RequestHandler は血液リクエスト管理のHTTPハンドラー。
type RequestHandler struct {
	service RequestServiceInterface
}

// NewRequestHandler はRequestHandlerを生成する。
func NewRequestHandler(service RequestServiceInterface) *RequestHandler {
	return &RequestHandler{service: service}
}

// submitRequestRequest は血液リクエスト受付のボディ。
type submitRequestRequest struct {
	PatientName     string `json:"patientName"`
	BloodGroup      string `json:"bloodGroup"`
	UnitsRequired   int    `json:"unitsRequired"`
	HospitalName    string `json:"hospitalName"`
	HospitalAddress string `json:"hospitalAddress"`
	City            string `json:"city"`
	RequiredDate    string `json:"requiredDate"`
	RequesterPhone  string `json:"requesterPhone"`
}

// submitRequestResponse は血液リクエスト受付成功時のレスポンス。
type submitRequestResponse struct {
	Message        string `json:"message"`
	MatchingDonors int    `json:"matchingDonors"`
}

// Submit は血液リクエスト受付を処理する。
// POST /api/requests
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "Invalid request body",
			Category: "validation",
			Action:   "Send a valid JSON body.",
		})
		return
	}

	_, matches, err := h.service.Submit(r.Context(), request.SubmitInput{
		PatientName:     req.PatientName,
		BloodGroup:      req.BloodGroup,
		UnitsRequired:   req.UnitsRequired,
		HospitalName:    req.HospitalName,
		HospitalAddress: req.HospitalAddress,
		City:            req.City,
		RequiredDate:    req.RequiredDate,
		RequesterPhone:  req.RequesterPhone,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, submitRequestResponse{
		Message:        "Request submitted successfully",
		MatchingDonors: matches,
	})
}

// List は血液リクエスト一覧を返す。
// GET /api/requests
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if requests == nil {
		requests = []*model.BloodRequest{}
	}
	writeJSONResponse(w, http.StatusOK, requests)
}

// Delete は血液リクエストを削除する。管理者専用。
// DELETE /api/requests/{id}
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Request deleted"})
}

// Approve は血液リクエストを承認する。管理者専用。
// 承認済みのリクエストに対しては同じ結果を返す。
// PATCH /api/requests/{id}/approve
func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	approved, err := h.service.Approve(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, approved)
}
