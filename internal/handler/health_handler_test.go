package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockPinger はDatabasePingerのモック実装。
type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func TestHealthHandler_Check_Connected(t *testing.T) {
	h := NewHealthHandler(&mockPinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	h.Check(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	result := parseJSONBody(t, w)
	if result["status"] != "OK" {
		t.Errorf("status = %v, want %q", result["status"], "OK")
	}
	if result["database"] != "Connected" {
		t.Errorf("database = %v, want %q", result["database"], "Connected")
	}
}

func TestHealthHandler_Check_Disconnected(t *testing.T) {
	h := NewHealthHandler(&mockPinger{
		pingFn: func(ctx context.Context) error {
			return errors.New("connection refused")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	h.Check(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	result := parseJSONBody(t, w)
	if result["status"] != "Degraded" {
		t.Errorf("status = %v, want %q", result["status"], "Degraded")
	}
	if result["database"] != "Disconnected" {
		t.Errorf("database = %v, want %q", result["database"], "Disconnected")
	}
}
