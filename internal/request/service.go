// Package request は血液リクエスト受付のオーケストレーションを提供する。
// 受付は 検証 → 永続化 → マッチング → 通知（非同期） → 応答 の
// 一方向ワークフローで、再試行可能な中間状態を持たない。
package request

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/bloodlink/internal/model"
	"github.com/hitoshi/bloodlink/internal/repository"
	"github.com/hitoshi/bloodlink/internal/security"
)

// Matcher は候補ドナー検索のインターフェース。
type Matcher interface {
	FindMatchingDonors(ctx context.Context, bloodGroup, city string, limit int) ([]*model.Donor, error)
}

// Notifier は通知配信開始のインターフェース。
// 実装は即座に返り、完了を待たせてはならない。
type Notifier interface {
	Dispatch(req *model.BloodRequest)
}

// Recorder はリクエスト受付のメトリクス記録インターフェース。
type Recorder interface {
	RecordRequestSubmitted()
	RecordMatchesFound(count int)
}

// Service は血液リクエストのサービス層。
type Service struct {
	repo       repository.RequestRepository
	matcher    Matcher
	notifier   Notifier
	sanitizer  security.FieldSanitizerService
	matchLimit int
	metrics    Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
// matchLimitが0以下の場合はマッチングエンジン側のデフォルトに従う。
// metricsはnil可（記録をスキップする）。
func NewService(
	repo repository.RequestRepository,
	matcher Matcher,
	notifier Notifier,
	sanitizer security.FieldSanitizerService,
	matchLimit int,
	metrics Recorder,
) *Service {
	return &Service{
		repo:       repo,
		matcher:    matcher,
		notifier:   notifier,
		sanitizer:  sanitizer,
		matchLimit: matchLimit,
		metrics:    metrics,
	}
}

// SubmitInput は血液リクエスト受付の入力値。
type SubmitInput struct {
	PatientName     string
	BloodGroup      string
	UnitsRequired   int
	HospitalName    string
	HospitalAddress string
	City            string
	RequiredDate    string
	RequesterPhone  string
}

// Submit はリクエストを検証・永続化し、候補ドナー数を返す。
// 検証失敗時はレコードを作成せず、通知も行わない。
// 通知はベストエフォートで起動されるのみで、結果は戻り値に影響しない。
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*model.BloodRequest, int, error) {
	patientName := s.sanitizer.Sanitize(in.PatientName)
	hospitalName := s.sanitizer.Sanitize(in.HospitalName)
	hospitalAddress := s.sanitizer.Sanitize(in.HospitalAddress)
	city := s.sanitizer.Sanitize(in.City)
	requiredDate := s.sanitizer.Sanitize(in.RequiredDate)
	requesterPhone := s.sanitizer.Sanitize(in.RequesterPhone)

	if patientName == "" || in.BloodGroup == "" || in.UnitsRequired == 0 ||
		hospitalName == "" || hospitalAddress == "" || city == "" ||
		requiredDate == "" || requesterPhone == "" {
		return nil, 0, model.NewAllFieldsRequiredError()
	}
	if in.UnitsRequired < model.MinUnitsRequired || in.UnitsRequired > model.MaxUnitsRequired {
		return nil, 0, model.NewUnitsOutOfRangeError(in.UnitsRequired)
	}
	if !model.IsValidBloodGroup(in.BloodGroup) {
		return nil, 0, model.NewInvalidBloodGroupError(in.BloodGroup)
	}

	req := &model.BloodRequest{
		ID:              uuid.NewString(),
		PatientName:     patientName,
		BloodGroup:      in.BloodGroup,
		UnitsRequired:   in.UnitsRequired,
		HospitalName:    hospitalName,
		HospitalAddress: hospitalAddress,
		City:            city,
		RequiredDate:    requiredDate,
		RequesterPhone:  requesterPhone,
		Status:          model.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, 0, fmt.Errorf("failed to persist blood request: %w", err)
	}

	matches, err := s.matcher.FindMatchingDonors(ctx, req.BloodGroup, req.City, s.matchLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find matching donors: %w", err)
	}

	// 通知は受け付けの成否に影響しないfire-and-forget
	s.notifier.Dispatch(req)

	slog.Info("血液リクエストを受け付けました",
		slog.String("request_id", req.ID),
		slog.String("blood_group", req.BloodGroup),
		slog.String("city", req.City),
		slog.Int("matching_donors", len(matches)),
	)
	if s.metrics != nil {
		s.metrics.RecordRequestSubmitted()
		s.metrics.RecordMatchesFound(len(matches))
	}

	return req, len(matches), nil
}

// List は全リクエストを作成日時の新しい順で返す。
func (s *Service) List(ctx context.Context) ([]*model.BloodRequest, error) {
	requests, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood requests: %w", err)
	}
	return requests, nil
}

// Delete は指定IDのリクエストを削除する。管理者操作からのみ呼ばれる。
// 該当IDが存在しない場合はmodel.APIError（REQUEST_NOT_FOUND）が返る。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	slog.Info("血液リクエストを削除しました",
		slog.String("request_id", id),
	)
	return nil
}

// Approve は指定IDのリクエストを承認済みに遷移させ、更新後のレコードを返す。
// すでに承認済みの場合も成功として扱う（冪等）。
// 該当IDが存在しない場合はmodel.APIError（REQUEST_NOT_FOUND）を返す。
func (s *Service) Approve(ctx context.Context, id string) (*model.BloodRequest, error) {
	req, err := s.repo.Approve(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve blood request: %w", err)
	}
	if req == nil {
		return nil, model.NewRequestNotFoundError(id)
	}

	slog.Info("血液リクエストを承認しました",
		slog.String("request_id", id),
	)
	return req, nil
}
