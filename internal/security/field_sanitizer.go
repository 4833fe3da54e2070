// Package security はアプリケーションのセキュリティ機能を提供する。
//
// FieldSanitizerService はフォーム由来の自由入力テキスト（氏名、所在地、
// 病院名など）をサニタイズし、格納データ経由のXSSを防ぐ。
// これらのフィールドにHTMLが現れる正当な理由はないため、
// bluemondayのStrictPolicyで全タグを除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// FieldSanitizerService は自由入力テキストのサニタイズ機能のインターフェースを定義する。
// ドナー登録およびリクエスト受付の永続化前に使用される。
type FieldSanitizerService interface {
	// Sanitize は入力からHTMLタグをすべて除去し、前後の空白を取り除いて返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(input string) string
}

// fieldSanitizer はFieldSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type fieldSanitizer struct {
	policy *bluemonday.Policy
}

// NewFieldSanitizer はFieldSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicy（許可タグなし）を使用するため、いかなるHTML要素も通過しない。
func NewFieldSanitizer() *fieldSanitizer {
	return &fieldSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグをすべて除去し、前後の空白を取り除いて返す。
// bluemondayはエンティティをエスケープして返すため、プレーンテキストとして
// 保持できるようアンエスケープする。
func (s *fieldSanitizer) Sanitize(input string) string {
	cleaned := s.policy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
