// Package matching は血液リクエストに対する候補ドナーの検索を提供する。
package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/bloodlink/internal/model"
)

// DefaultLimit は候補ドナー数の既定の上限。
const DefaultLimit = 5

// DonorLister は血液型によるドナー取得のインターフェース。
type DonorLister interface {
	// ListByBloodGroup は指定血液型のドナーを作成日時の新しい順で返す。
	ListByBloodGroup(ctx context.Context, bloodGroup string) ([]*model.Donor, error)
}

// Engine は候補ドナーの検索エンジン。
// 血液型の完全一致と、所在地への都市名の大文字小文字を区別しない
// 部分一致でドナーを絞り込む。読み取り専用で副作用を持たない。
//
// 所在地の部分一致は意図的に精度の低いヒューリスティックである。
// 非該当ドナーへの連絡コストは、該当ドナーを取りこぼすコストより
// はるかに小さいため、過剰包含側に倒している。
type Engine struct {
	donors DonorLister
}

// NewEngine はEngineを生成する。
func NewEngine(donors DonorLister) *Engine {
	return &Engine{donors: donors}
}

// FindMatchingDonors はリクエストに適合する候補ドナーを返す。
// bloodGroupは固定語彙のいずれか、cityは空でない自由テキストであること。
// 結果はlimit件（0以下の場合はDefaultLimit件）を上限とし、
// 適合ドナーがいない場合は空スライスを返す。
func (e *Engine) FindMatchingDonors(ctx context.Context, bloodGroup, city string, limit int) ([]*model.Donor, error) {
	if !model.IsValidBloodGroup(bloodGroup) {
		return nil, model.NewInvalidBloodGroupError(bloodGroup)
	}
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("city must not be empty")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates, err := e.donors.ListByBloodGroup(ctx, bloodGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate donors: %w", err)
	}

	needle := strings.ToLower(city)
	matches := make([]*model.Donor, 0, limit)
	for _, donor := range candidates {
		if !strings.Contains(strings.ToLower(donor.Location), needle) {
			continue
		}
		matches = append(matches, donor)
		if len(matches) == limit {
			break
		}
	}

	return matches, nil
}
