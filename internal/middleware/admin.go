package middleware

import (
	"net/http"
	"strings"

	"github.com/hitoshi/bloodlink/internal/model"
)

// TokenVerifier は管理者トークン検証のインターフェース。
type TokenVerifier interface {
	// Verify はトークンの署名と有効期限を検証する。
	Verify(token string) error
}

// NewAdminMiddleware は破壊的操作を管理者トークンで保護するミドルウェアを返す。
// Authorizationヘッダー欠如は403（Missing token）、
// Bearer形式不正・署名不正・期限切れは403（Invalid or expired token）で拒否する。
// ストアへの到達前に必ず検証されるよう、対象ルートの最前段に配置すること。
func NewAdminMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteErrorResponse(w, http.StatusForbidden, model.NewMissingTokenError())
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				WriteErrorResponse(w, http.StatusForbidden, model.NewInvalidTokenError())
				return
			}

			if err := verifier.Verify(parts[1]); err != nil {
				WriteErrorResponse(w, http.StatusForbidden, model.NewInvalidTokenError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
