// Package model はドメインモデルを定義する。
package model

import "time"

// RequestStatus は血液リクエストの状態を表す。
// 遷移は Pending → Approved の一方向のみ。
type RequestStatus string

const (
	// StatusPending は管理者承認待ちの状態。作成時のデフォルト。
	StatusPending RequestStatus = "Pending"
	// StatusApproved は管理者により承認された状態。
	StatusApproved RequestStatus = "Approved"
)

// BloodRequest は病院・患者からの血液リクエストを表す。
// requiredDateは外部コラボレータ側で検証される日付文字列をそのまま保持する。
type BloodRequest struct {
	ID              string        `json:"id"`
	PatientName     string        `json:"patientName"`
	BloodGroup      string        `json:"bloodGroup"`
	UnitsRequired   int           `json:"unitsRequired"`
	HospitalName    string        `json:"hospitalName"`
	HospitalAddress string        `json:"hospitalAddress"`
	City            string        `json:"city"`
	RequiredDate    string        `json:"requiredDate"`
	RequesterPhone  string        `json:"requesterPhone"`
	Status          RequestStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// リクエスト単位数の許容範囲（両端含む）。
const (
	MinUnitsRequired = 1
	MaxUnitsRequired = 10
)
