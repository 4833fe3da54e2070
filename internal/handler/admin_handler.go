package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/bloodlink/internal/middleware"
	"github.com/hitoshi/bloodlink/internal/model"
)

// AdminAuthInterface は管理者認証ハンドラーが必要とするインターフェース。
type AdminAuthInterface interface {
	// CheckPassword は管理者パスワードを照合する。
	CheckPassword(password string) bool
	// Issue は管理者トークンを発行する。
	Issue() (string, error)
}

// AdminHandler は管理者認証のHTTPハンドラー。
type AdminHandler struct {
	auth AdminAuthInterface
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(auth AdminAuthInterface) *AdminHandler {
	return &AdminHandler{auth: auth}
}

// adminLoginRequest は管理者ログインリクエストのボディ。
type adminLoginRequest struct {
	Password string `json:"password"`
}

// adminLoginResponse は管理者ログイン成功時のレスポンス。
type adminLoginResponse struct {
	Token string `json:"token"`
}

// Login は管理者ログインを処理する。
// POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "Invalid request body",
			Category: "validation",
			Action:   "Send a valid JSON body.",
		})
		return
	}

	if !h.auth.CheckPassword(req.Password) {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewInvalidPasswordError())
		return
	}

	token, err := h.auth.Issue()
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, adminLoginResponse{Token: token})
}
