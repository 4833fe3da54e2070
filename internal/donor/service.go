// Package donor はドナー登録・管理のドメインロジックを提供する。
package donor

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

// Recorder はドナー登録のメトリクス記録インターフェース。
type Recorder interface {
	RecordDonorRegistered()
}

// Service はドナー管理のサービス層。
type Service struct {
	repo      repository.DonorRepository
	sanitizer security.FieldSanitizerService
	metrics   Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnil可（記録をスキップする）。
func NewService(repo repository.DonorRepository, sanitizer security.FieldSanitizerService, metrics Recorder) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// RegisterInput はドナー登録の入力値。
type RegisterInput struct {
	Name       string
	Age        int
	BloodGroup string
	Phone      string
	Email      string
	Location   string
}

// Register はドナーを検証して永続化する。
// 必須項目の欠如、年齢範囲外、未知の血液型はmodel.APIErrorとして返し、
// レコードは作成しない。
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.Donor, error) {
	name := s.sanitizer.Sanitize(in.Name)
	phone := s.sanitizer.Sanitize(in.Phone)
	location := s.sanitizer.Sanitize(in.Location)
	email := s.sanitizer.Sanitize(in.Email)

	if name == "" || in.BloodGroup == "" || phone == "" || location == "" {
		return nil, model.NewMissingFieldsError()
	}
	if in.Age < model.MinDonorAge || in.Age > model.MaxDonorAge {
		return nil, model.NewAgeOutOfRangeError()
	}
	if !model.IsValidBloodGroup(in.BloodGroup) {
		return nil, model.NewInvalidBloodGroupError(in.BloodGroup)
	}

	donor := &model.Donor{
		ID:         uuid.NewString(),
		Name:       name,
		Age:        in.Age,
		BloodGroup: in.BloodGroup,
		Phone:      phone,
		Email:      email,
		Location:   location,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, donor); err != nil {
		return nil, fmt.Errorf("failed to register donor: %w", err)
	}

	slog.Info("ドナーを登録しました",
		slog.String("donor_id", donor.ID),
		slog.String("blood_group", donor.BloodGroup),
	)
	if s.metrics != nil {
		s.metrics.RecordDonorRegistered()
	}

	return donor, nil
}

// List は全ドナーを作成日時の新しい順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Donor, error) {
	donors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	return donors, nil
}

// Delete は指定IDのドナーを削除する。管理者操作からのみ呼ばれる。
// 該当IDが存在しない場合はmodel.APIError（DONOR_NOT_FOUND）が返る。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	slog.Info("ドナーを削除しました",
		slog.String("donor_id", id),
	)
	return nil
}
