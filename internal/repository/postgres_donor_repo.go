package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/bloodlink/internal/model"
)

// PostgresDonorRepo はPostgreSQLを使用したドナーリポジトリ。
type PostgresDonorRepo struct {
	db *sql.DB
}

// NewPostgresDonorRepo はPostgresDonorRepoを生成する。
func NewPostgresDonorRepo(db *sql.DB) *PostgresDonorRepo {
	return &PostgresDonorRepo{db: db}
}

const donorColumns = `id, name, age, blood_group, phone, email, location, created_at`

// Create はドナーを作成する。
func (r *PostgresDonorRepo) Create(ctx context.Context, donor *model.Donor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO donors (id, name, age, blood_group, phone, email, location, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		donor.ID, donor.Name, donor.Age, donor.BloodGroup,
		donor.Phone, donor.Email, donor.Location, donor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert donor: %w", err)
	}
	return nil
}

// ListAll は全ドナーを作成日時の新しい順で返す。
func (r *PostgresDonorRepo) ListAll(ctx context.Context) ([]*model.Donor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+donorColumns+` FROM donors ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	defer rows.Close()

	return scanDonors(rows)
}

// ListByBloodGroup は指定血液型のドナーを作成日時の新しい順で返す。
func (r *PostgresDonorRepo) ListByBloodGroup(ctx context.Context, bloodGroup string) ([]*model.Donor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+donorColumns+` FROM donors WHERE blood_group = $1 ORDER BY created_at DESC`,
		bloodGroup,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list donors by blood group: %w", err)
	}
	defer rows.Close()

	return scanDonors(rows)
}

// DeleteByID は指定IDのドナーを削除する。
func (r *PostgresDonorRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM donors WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete donor: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewDonorNotFoundError(id)
	}
	return nil
}

// CountByBloodGroup は血液型ごとのドナー数を集計して返す。
func (r *PostgresDonorRepo) CountByBloodGroup(ctx context.Context) ([]model.BloodGroupCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT blood_group, COUNT(*) FROM donors GROUP BY blood_group`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count donors by blood group: %w", err)
	}
	defer rows.Close()

	var counts []model.BloodGroupCount
	for rows.Next() {
		var c model.BloodGroupCount
		if err := rows.Scan(&c.BloodGroup, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan blood group count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blood group counts: %w", err)
	}

	return counts, nil
}

// scanDonors は結果セットからドナーのスライスを読み取る。
func scanDonors(rows *sql.Rows) ([]*model.Donor, error) {
	var donors []*model.Donor
	for rows.Next() {
		donor := &model.Donor{}
		if err := rows.Scan(
			&donor.ID, &donor.Name, &donor.Age, &donor.BloodGroup,
			&donor.Phone, &donor.Email, &donor.Location, &donor.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan donor: %w", err)
		}
		donors = append(donors, donor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate donors: %w", err)
	}
	return donors, nil
}

// compile-time interface check
var _ DonorRepository = (*PostgresDonorRepo)(nil)
