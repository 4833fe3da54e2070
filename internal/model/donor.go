// Package model はドメインモデルを定義する。
package model

import "time"

// Donor は献血可能なドナー登録者を表す。
// 登録後は不変であり、削除は管理者操作でのみ行われる。
type Donor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	BloodGroup string    `json:"bloodGroup"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Location   string    `json:"location"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ドナー年齢の許容範囲（両端含む）。
const (
	MinDonorAge = 18
	MaxDonorAge = 65
)

// BloodGroupCount は血液型ごとのドナー数を表す集計行。
type BloodGroupCount struct {
	BloodGroup string
	Count      int
}
