// Package inventory は血液型ごとのドナー数集計を提供する。
package inventory

import (
	"context"
	"fmt"

	"github.com/hitoshi/bloodlink/internal/model"
)

// DonorCounter は血液型ごとのドナー数取得のインターフェース。
type DonorCounter interface {
	// CountByBloodGroup は血液型ごとのドナー数を集計して返す。
	CountByBloodGroup(ctx context.Context) ([]model.BloodGroupCount, error)
}

// Service は在庫集計のサービス層。
// ドナーストア全体を毎回読み直すためキャッシュや失効制御は持たない。
type Service struct {
	donors DonorCounter
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(donors DonorCounter) *Service {
	return &Service{donors: donors}
}

// Aggregate は血液型→ドナー数のマッピングを返す。
// ドナーが存在しない血液型はキー自体が含まれない。
// 利用側は欠けているキーを0件として扱うこと。
func (s *Service) Aggregate(ctx context.Context) (map[string]int, error) {
	counts, err := s.donors.CountByBloodGroup(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate inventory: %w", err)
	}

	result := make(map[string]int, len(counts))
	for _, c := range counts {
		result[c.BloodGroup] = c.Count
	}

	return result, nil
}
