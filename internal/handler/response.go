package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/bloodlink/internal/middleware"
	"github.com/hitoshi/bloodlink/internal/model"
)

// writeJSONResponse はJSONレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("レスポンスのエンコードに失敗しました", slog.String("error", err.Error()))
	}
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// model.APIError以外のエラーは内部サーバーエラーとして扱う。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidRequest,
		model.ErrCodeMissingFields,
		model.ErrCodeAgeOutOfRange,
		model.ErrCodeUnitsOutOfRange,
		model.ErrCodeInvalidBloodGroup:
		return http.StatusBadRequest
	case model.ErrCodeDonorNotFound, model.ErrCodeRequestNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	case model.ErrCodeMissingToken, model.ErrCodeInvalidToken:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
