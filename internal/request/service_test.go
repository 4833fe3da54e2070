package request

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/bloodlink/internal/model"
)

// --- モック ---

type mockRequestRepo struct {
	createFn  func(ctx context.Context, req *model.BloodRequest) error
	listFn    func(ctx context.Context) ([]*model.BloodRequest, error)
	deleteFn  func(ctx context.Context, id string) error
	approveFn func(ctx context.Context, id string) (*model.BloodRequest, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, req *model.BloodRequest) error {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil
}
func (m *mockRequestRepo) ListAll(ctx context.Context) ([]*model.BloodRequest, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockRequestRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *mockRequestRepo) Approve(ctx context.Context, id string) (*model.BloodRequest, error) {
	if m.approveFn != nil {
		return m.approveFn(ctx, id)
	}
	return nil, nil
}

type mockMatcher struct {
	findFn func(ctx context.Context, bloodGroup, city string, limit int) ([]*model.Donor, error)
}

func (m *mockMatcher) FindMatchingDonors(ctx context.Context, bloodGroup, city string, limit int) ([]*model.Donor, error) {
	if m.findFn != nil {
		return m.findFn(ctx, bloodGroup, city, limit)
	}
	return nil, nil
}

type mockNotifier struct {
	dispatched []*model.BloodRequest
}

func (m *mockNotifier) Dispatch(req *model.BloodRequest) {
	m.dispatched = append(m.dispatched, req)
}

// passthroughSanitizer はタグ除去の代わりに空白除去のみ行うテスト用実装。
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(input string) string {
	return strings.TrimSpace(input)
}

func validInput() SubmitInput {
	return SubmitInput{
		PatientName:     "Asha Rao",
		BloodGroup:      "O+",
		UnitsRequired:   2,
		HospitalName:    "City Hospital",
		HospitalAddress: "12 MG Road",
		City:            "Mumbai",
		RequiredDate:    "2026-09-15",
		RequesterPhone:  "+91-9811111111",
	}
}

// --- テスト ---

// TestService_Submit_Success は受付が 検証→永続化→マッチング→通知 の順で
// 実行され、候補ドナー数が返ることを検証する。
func TestService_Submit_Success(t *testing.T) {
	var persisted *model.BloodRequest
	repo := &mockRequestRepo{
		createFn: func(ctx context.Context, req *model.BloodRequest) error {
			persisted = req
			return nil
		},
	}
	matcher := &mockMatcher{
		findFn: func(ctx context.Context, bloodGroup, city string, limit int) ([]*model.Donor, error) {
			if bloodGroup != "O+" || city != "Mumbai" {
				t.Errorf("matcher called with (%q, %q), want (O+, Mumbai)", bloodGroup, city)
			}
			if limit != 5 {
				t.Errorf("limit = %d, want 5", limit)
			}
			// マッチングは永続化後に呼ばれる
			if persisted == nil {
				t.Error("expected request to be persisted before matching")
			}
			return []*model.Donor{{ID: "d1"}, {ID: "d2"}, {ID: "d3"}}, nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewService(repo, matcher, notifier, passthroughSanitizer{}, 5, nil)

	req, count, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if count != 3 {
		t.Errorf("matching donors = %d, want 3", count)
	}
	if req.Status != model.StatusPending {
		t.Errorf("status = %q, want %q", req.Status, model.StatusPending)
	}
	if req.ID == "" {
		t.Error("expected system-assigned id")
	}
	if len(notifier.dispatched) != 1 || notifier.dispatched[0].ID != req.ID {
		t.Errorf("expected one dispatch for the persisted request, got %d", len(notifier.dispatched))
	}
}

// TestService_Submit_MissingField は必須項目の欠如で拒否され、
// 永続化も通知も行われないことを検証する。
func TestService_Submit_MissingField(t *testing.T) {
	mutations := map[string]func(*SubmitInput){
		"patientName":     func(in *SubmitInput) { in.PatientName = "" },
		"bloodGroup":      func(in *SubmitInput) { in.BloodGroup = "" },
		"unitsRequired":   func(in *SubmitInput) { in.UnitsRequired = 0 },
		"hospitalName":    func(in *SubmitInput) { in.HospitalName = "" },
		"hospitalAddress": func(in *SubmitInput) { in.HospitalAddress = "" },
		"city":            func(in *SubmitInput) { in.City = "" },
		"requiredDate":    func(in *SubmitInput) { in.RequiredDate = "" },
		"requesterPhone":  func(in *SubmitInput) { in.RequesterPhone = "" },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			persisted := false
			repo := &mockRequestRepo{
				createFn: func(ctx context.Context, req *model.BloodRequest) error {
					persisted = true
					return nil
				},
			}
			notifier := &mockNotifier{}
			svc := NewService(repo, &mockMatcher{}, notifier, passthroughSanitizer{}, 5, nil)

			in := validInput()
			mutate(&in)
			_, _, err := svc.Submit(context.Background(), in)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeMissingFields {
				t.Errorf("expected MISSING_FIELDS error, got %v", err)
			}
			if persisted {
				t.Error("expected no persistence on validation failure")
			}
			if len(notifier.dispatched) != 0 {
				t.Error("expected no notification on validation failure")
			}
		})
	}
}

// TestService_Submit_UnitsRange は必要単位数[1,10]の境界が守られることを検証する。
func TestService_Submit_UnitsRange(t *testing.T) {
	tests := []struct {
		units   int
		wantErr bool
	}{
		{1, false},
		{10, false},
		{11, true},
		{-2, true},
	}

	for _, tt := range tests {
		svc := NewService(&mockRequestRepo{}, &mockMatcher{}, &mockNotifier{}, passthroughSanitizer{}, 5, nil)

		in := validInput()
		in.UnitsRequired = tt.units
		_, _, err := svc.Submit(context.Background(), in)

		if tt.wantErr && err == nil {
			t.Errorf("units %d: expected error, got nil", tt.units)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("units %d: unexpected error: %v", tt.units, err)
		}
	}
}

// TestService_Submit_PersistFailure は永続化失敗時に通知が起動されないことを検証する。
func TestService_Submit_PersistFailure(t *testing.T) {
	repo := &mockRequestRepo{
		createFn: func(ctx context.Context, req *model.BloodRequest) error {
			return errors.New("connection refused")
		},
	}
	notifier := &mockNotifier{}
	svc := NewService(repo, &mockMatcher{}, notifier, passthroughSanitizer{}, 5, nil)

	_, _, err := svc.Submit(context.Background(), validInput())
	if err == nil {
		t.Fatal("expected error on persistence failure, got nil")
	}
	if len(notifier.dispatched) != 0 {
		t.Error("expected no notification when persistence fails")
	}
}

// TestService_Approve_Idempotent は同一IDへの二重承認が両方成功し、
// どちらもApprovedを返すことを検証する。
func TestService_Approve_Idempotent(t *testing.T) {
	stored := &model.BloodRequest{ID: "req-1", Status: model.StatusPending}
	repo := &mockRequestRepo{
		approveFn: func(ctx context.Context, id string) (*model.BloodRequest, error) {
			stored.Status = model.StatusApproved
			copy := *stored
			return &copy, nil
		},
	}
	svc := NewService(repo, &mockMatcher{}, &mockNotifier{}, passthroughSanitizer{}, 5, nil)

	for i := 0; i < 2; i++ {
		req, err := svc.Approve(context.Background(), "req-1")
		if err != nil {
			t.Fatalf("Approve call %d returned error: %v", i+1, err)
		}
		if req.Status != model.StatusApproved {
			t.Errorf("Approve call %d: status = %q, want %q", i+1, req.Status, model.StatusApproved)
		}
	}
}

// TestService_Approve_NotFound は存在しないIDの承認がREQUEST_NOT_FOUNDになることを検証する。
func TestService_Approve_NotFound(t *testing.T) {
	repo := &mockRequestRepo{
		approveFn: func(ctx context.Context, id string) (*model.BloodRequest, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, &mockMatcher{}, &mockNotifier{}, passthroughSanitizer{}, 5, nil)

	_, err := svc.Approve(context.Background(), "missing-id")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeRequestNotFound {
		t.Errorf("expected REQUEST_NOT_FOUND error, got %v", err)
	}
}
