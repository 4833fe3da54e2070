package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/bloodlink/internal/model"
)

// PostgresRequestRepo はPostgreSQLを使用した血液リクエストリポジトリ。
type PostgresRequestRepo struct {
	db *sql.DB
}

// NewPostgresRequestRepo はPostgresRequestRepoを生成する。
func NewPostgresRequestRepo(db *sql.DB) *PostgresRequestRepo {
	return &PostgresRequestRepo{db: db}
}

const requestColumns = `id, patient_name, blood_group, units_required, hospital_name,
	 hospital_address, city, required_date, requester_phone, status, created_at`

// Create は血液リクエストを作成する。
func (r *PostgresRequestRepo) Create(ctx context.Context, req *model.BloodRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blood_requests (id, patient_name, blood_group, units_required,
		 hospital_name, hospital_address, city, required_date, requester_phone, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		req.ID, req.PatientName, req.BloodGroup, req.UnitsRequired,
		req.HospitalName, req.HospitalAddress, req.City, req.RequiredDate,
		req.RequesterPhone, string(req.Status), req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert blood request: %w", err)
	}
	return nil
}

// ListAll は全リクエストを作成日時の新しい順で返す。
func (r *PostgresRequestRepo) ListAll(ctx context.Context) ([]*model.BloodRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM blood_requests ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.BloodRequest
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blood requests: %w", err)
	}

	return requests, nil
}

// DeleteByID は指定IDのリクエストを削除する。
func (r *PostgresRequestRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM blood_requests WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete blood request: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewRequestNotFoundError(id)
	}
	return nil
}

// Approve は指定IDのリクエストをApprovedに更新し、更新後のレコードを返す。
// 見つからない場合はnilを返す。
func (r *PostgresRequestRepo) Approve(ctx context.Context, id string) (*model.BloodRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE blood_requests SET status = $1 WHERE id = $2
		 RETURNING `+requestColumns,
		string(model.StatusApproved), id,
	)

	req, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to approve blood request: %w", err)
	}

	return req, nil
}

// scanRequest は1行分の血液リクエストを読み取る。
func scanRequest(scan func(dest ...any) error) (*model.BloodRequest, error) {
	req := &model.BloodRequest{}
	var status string
	err := scan(
		&req.ID, &req.PatientName, &req.BloodGroup, &req.UnitsRequired,
		&req.HospitalName, &req.HospitalAddress, &req.City, &req.RequiredDate,
		&req.RequesterPhone, &status, &req.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan blood request: %w", err)
	}
	req.Status = model.RequestStatus(status)
	return req, nil
}

// compile-time interface check
var _ RequestRepository = (*PostgresRequestRepo)(nil)
