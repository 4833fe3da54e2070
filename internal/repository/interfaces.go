// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/bloodlink/internal/model"
)

// DonorRepository はドナーデータの永続化インターフェース。
type DonorRepository interface {
	// Create はドナーを作成する。
	Create(ctx context.Context, donor *model.Donor) error

	// ListAll は全ドナーを作成日時の新しい順で返す。
	ListAll(ctx context.Context) ([]*model.Donor, error)

	// ListByBloodGroup は指定血液型のドナーを作成日時の新しい順で返す。
	ListByBloodGroup(ctx context.Context, bloodGroup string) ([]*model.Donor, error)

	// DeleteByID は指定IDのドナーを削除する。
	// 該当IDが存在しない場合はmodel.APIError（DONOR_NOT_FOUND）を返す。
	DeleteByID(ctx context.Context, id string) error

	// CountByBloodGroup は血液型ごとのドナー数を集計して返す。
	// ドナーが存在しない血液型は結果に含まれない。
	CountByBloodGroup(ctx context.Context) ([]model.BloodGroupCount, error)
}

// RequestRepository は血液リクエストデータの永続化インターフェース。
type RequestRepository interface {
	// Create は血液リクエストを作成する。
	Create(ctx context.Context, req *model.BloodRequest) error

	// ListAll は全リクエストを作成日時の新しい順で返す。
	ListAll(ctx context.Context) ([]*model.BloodRequest, error)

	// DeleteByID は指定IDのリクエストを削除する。
	// 該当IDが存在しない場合はmodel.APIError（REQUEST_NOT_FOUND）を返す。
	DeleteByID(ctx context.Context, id string) error

	// Approve は指定IDのリクエストをApprovedに更新し、更新後のレコードを返す。
	// すでにApprovedの場合も成功として更新後のレコードを返す（冪等）。
	// 見つからない場合はnilを返す。
	Approve(ctx context.Context, id string) (*model.BloodRequest, error)
}
