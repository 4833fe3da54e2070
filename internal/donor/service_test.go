package donor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/bloodlink/internal/model"
)

// --- モック ---

type mockDonorRepo struct {
	createFn func(ctx context.Context, donor *model.Donor) error
	listFn   func(ctx context.Context) ([]*model.Donor, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockDonorRepo) Create(ctx context.Context, donor *model.Donor) error {
	if m.createFn != nil {
		return m.createFn(ctx, donor)
	}
	return nil
}
func (m *mockDonorRepo) ListAll(ctx context.Context) ([]*model.Donor, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockDonorRepo) ListByBloodGroup(ctx context.Context, bloodGroup string) ([]*model.Donor, error) {
	return nil, nil
}
func (m *mockDonorRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *mockDonorRepo) CountByBloodGroup(ctx context.Context) ([]model.BloodGroupCount, error) {
	return nil, nil
}

// passthroughSanitizer はタグ除去の代わりに空白除去のみ行うテスト用実装。
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(input string) string {
	return strings.TrimSpace(input)
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:       "Ravi Kumar",
		Age:        30,
		BloodGroup: "O+",
		Phone:      "+91-9800000000",
		Email:      "ravi@example.com",
		Location:   "Mumbai Central",
	}
}

// --- テスト ---

// TestService_Register_Success は有効な入力でドナーが作成されることを検証する。
func TestService_Register_Success(t *testing.T) {
	var created *model.Donor
	repo := &mockDonorRepo{
		createFn: func(ctx context.Context, donor *model.Donor) error {
			created = donor
			return nil
		},
	}

	svc := NewService(repo, passthroughSanitizer{}, nil)

	donor, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if created == nil {
		t.Fatal("expected donor to be persisted")
	}
	if donor.ID == "" {
		t.Error("expected system-assigned id")
	}
	if donor.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
	if donor.Name != "Ravi Kumar" || donor.BloodGroup != "O+" || donor.Age != 30 {
		t.Errorf("unexpected donor fields: %+v", donor)
	}
}

// TestService_Register_AgeBounds は年齢範囲[18,65]の境界が守られることを検証する。
func TestService_Register_AgeBounds(t *testing.T) {
	tests := []struct {
		age     int
		wantErr bool
	}{
		{17, true},
		{18, false},
		{65, false},
		{66, true},
		{0, true},
	}

	for _, tt := range tests {
		persisted := false
		repo := &mockDonorRepo{
			createFn: func(ctx context.Context, donor *model.Donor) error {
				persisted = true
				return nil
			},
		}
		svc := NewService(repo, passthroughSanitizer{}, nil)

		in := validInput()
		in.Age = tt.age
		_, err := svc.Register(context.Background(), in)

		if tt.wantErr {
			if err == nil {
				t.Errorf("age %d: expected error, got nil", tt.age)
			}
			if persisted {
				t.Errorf("age %d: expected no persistence on rejection", tt.age)
			}
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeAgeOutOfRange {
				t.Errorf("age %d: expected AGE_OUT_OF_RANGE, got %v", tt.age, err)
			}
		} else if err != nil {
			t.Errorf("age %d: unexpected error: %v", tt.age, err)
		}
	}
}

// TestService_Register_MissingFields は必須項目の欠如が拒否され、
// レコードが作成されないことを検証する。
func TestService_Register_MissingFields(t *testing.T) {
	mutations := map[string]func(*RegisterInput){
		"name":       func(in *RegisterInput) { in.Name = "" },
		"bloodGroup": func(in *RegisterInput) { in.BloodGroup = "" },
		"phone":      func(in *RegisterInput) { in.Phone = "" },
		"location":   func(in *RegisterInput) { in.Location = "" },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			persisted := false
			repo := &mockDonorRepo{
				createFn: func(ctx context.Context, donor *model.Donor) error {
					persisted = true
					return nil
				},
			}
			svc := NewService(repo, passthroughSanitizer{}, nil)

			in := validInput()
			mutate(&in)
			_, err := svc.Register(context.Background(), in)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeMissingFields {
				t.Errorf("expected MISSING_FIELDS error, got %v", err)
			}
			if persisted {
				t.Error("expected no persistence on validation failure")
			}
		})
	}
}

// TestService_Register_EmailOptional はメールアドレスが任意項目であることを検証する。
func TestService_Register_EmailOptional(t *testing.T) {
	svc := NewService(&mockDonorRepo{}, passthroughSanitizer{}, nil)

	in := validInput()
	in.Email = ""
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Errorf("expected registration without email to succeed, got %v", err)
	}
}

// TestService_Register_InvalidBloodGroup は未知の血液型が拒否されることを検証する。
func TestService_Register_InvalidBloodGroup(t *testing.T) {
	svc := NewService(&mockDonorRepo{}, passthroughSanitizer{}, nil)

	in := validInput()
	in.BloodGroup = "Z+"
	_, err := svc.Register(context.Background(), in)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidBloodGroup {
		t.Errorf("expected INVALID_BLOOD_GROUP error, got %v", err)
	}
}

// TestService_Delete_NotFound は存在しないIDの削除でリポジトリのエラーが
// そのまま返ることを検証する。
func TestService_Delete_NotFound(t *testing.T) {
	repo := &mockDonorRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return model.NewDonorNotFoundError(id)
		},
	}
	svc := NewService(repo, passthroughSanitizer{}, nil)

	err := svc.Delete(context.Background(), "missing-id")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeDonorNotFound {
		t.Errorf("expected DONOR_NOT_FOUND error, got %v", err)
	}
}
