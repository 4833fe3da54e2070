// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// クライアントに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, donor, request, system
	Action   string // クライアント向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeMissingFields     = "MISSING_FIELDS"
	ErrCodeAgeOutOfRange     = "AGE_OUT_OF_RANGE"
	ErrCodeUnitsOutOfRange   = "UNITS_OUT_OF_RANGE"
	ErrCodeInvalidBloodGroup = "INVALID_BLOOD_GROUP"
	ErrCodeDonorNotFound     = "DONOR_NOT_FOUND"
	ErrCodeRequestNotFound   = "REQUEST_NOT_FOUND"
	ErrCodeInvalidPassword   = "INVALID_PASSWORD"
	ErrCodeMissingToken      = "MISSING_TOKEN"
	ErrCodeInvalidToken      = "INVALID_TOKEN"
)

// NewMissingFieldsError はドナー登録の必須項目不足エラーを生成する。
func NewMissingFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  "Missing required fields",
		Category: "validation",
		Action:   "Provide name, age, bloodGroup, phone and location.",
	}
}

// NewAllFieldsRequiredError は血液リクエストの必須項目不足エラーを生成する。
func NewAllFieldsRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  "All fields required",
		Category: "validation",
		Action:   "Fill in every field of the request form.",
	}
}

// NewAgeOutOfRangeError はドナー年齢の範囲外エラーを生成する。
func NewAgeOutOfRangeError() *APIError {
	return &APIError{
		Code:     ErrCodeAgeOutOfRange,
		Message:  "Age must be between 18–65",
		Category: "validation",
		Action:   "Donors must be between 18 and 65 years old.",
	}
}

// NewUnitsOutOfRangeError は必要単位数の範囲外エラーを生成する。
func NewUnitsOutOfRangeError(units int) *APIError {
	return &APIError{
		Code:     ErrCodeUnitsOutOfRange,
		Message:  fmt.Sprintf("Units required must be between 1 and 10, got %d", units),
		Category: "validation",
		Action:   "Request between 1 and 10 units.",
	}
}

// NewInvalidBloodGroupError は未知の血液型エラーを生成する。
func NewInvalidBloodGroupError(group string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBloodGroup,
		Message:  fmt.Sprintf("Unknown blood group: %s", group),
		Category: "validation",
		Action:   "Use one of A+, A-, B+, B-, O+, O-, AB+ or AB-.",
	}
}

// NewDonorNotFoundError はドナー未検出エラーを生成する。
func NewDonorNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeDonorNotFound,
		Message:  fmt.Sprintf("Donor not found: %s", id),
		Category: "donor",
		Action:   "Check the donor id.",
	}
}

// NewRequestNotFoundError は血液リクエスト未検出エラーを生成する。
func NewRequestNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeRequestNotFound,
		Message:  fmt.Sprintf("Request not found: %s", id),
		Category: "request",
		Action:   "Check the request id.",
	}
}

// NewInvalidPasswordError は管理者ログイン失敗エラーを生成する。
func NewInvalidPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPassword,
		Message:  "Invalid password",
		Category: "auth",
		Action:   "Check the admin password and try again.",
	}
}

// NewMissingTokenError はAuthorizationヘッダー欠如エラーを生成する。
func NewMissingTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingToken,
		Message:  "Missing token",
		Category: "auth",
		Action:   "Log in as admin and send the token in the Authorization header.",
	}
}

// NewInvalidTokenError は無効・期限切れトークンエラーを生成する。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidToken,
		Message:  "Invalid or expired token",
		Category: "auth",
		Action:   "Log in again to obtain a fresh token.",
	}
}
