// Package auth は管理者トークンの発行・検証を提供する。
// 共有シークレットによるログイン交換で時限付きHS256 JWTを発行し、
// 破壊的操作のたびにその検証を行う。
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminRole は管理者トークンのroleクレーム値。
const AdminRole = "admin"

// Claims は管理者トークンのJWTクレームを表す。
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService は管理者トークンの発行と検証を行う。
type TokenService struct {
	signingKey []byte
	adminKey   string
	ttl        time.Duration
}

// NewTokenService はTokenServiceを生成する。
// ttlが0以下の場合でもそのまま使用する（テストで期限切れトークンを作るため）。
func NewTokenService(signingKey, adminKey string, ttl time.Duration) *TokenService {
	return &TokenService{
		signingKey: []byte(signingKey),
		adminKey:   adminKey,
		ttl:        ttl,
	}
}

// CheckPassword は提示されたパスワードが管理者シークレットと一致するかを
// 定数時間比較で判定する。
func (s *TokenService) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminKey)) == 1
}

// Issue はrole=adminクレームを持つ署名済みトークンを発行する。
// 有効期限は発行時点からTTL経過後。
func (s *TokenService) Issue() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ErrInvalidToken は署名不正・形式不正・期限切れのトークンを示す。
// 呼び出し側は種別を区別せず再ログインを要求する。
var ErrInvalidToken = errors.New("invalid or expired token")

// Verify はトークンの署名・アルゴリズム・有効期限・roleクレームを検証する。
// いずれかに問題がある場合はErrInvalidTokenを返す。
func (s *TokenService) Verify(tokenString string) error {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Role != AdminRole {
		return ErrInvalidToken
	}

	return nil
}
