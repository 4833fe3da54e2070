// Package model はドメインモデルを定義する。
package model

// BloodGroups はシステムが扱う血液型の固定語彙。
var BloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

// IsValidBloodGroup は血液型が固定語彙に含まれるかを判定する。
func IsValidBloodGroup(group string) bool {
	for _, g := range BloodGroups {
		if g == group {
			return true
		}
	}
	return false
}
