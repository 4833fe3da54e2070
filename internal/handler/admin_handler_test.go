package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockAdminAuth はAdminAuthInterfaceのモック実装。
type mockAdminAuth struct {
	checkPasswordFn func(password string) bool
	issueFn         func() (string, error)
}

func (m *mockAdminAuth) CheckPassword(password string) bool {
	if m.checkPasswordFn != nil {
		return m.checkPasswordFn(password)
	}
	return false
}

func (m *mockAdminAuth) Issue() (string, error) {
	if m.issueFn != nil {
		return m.issueFn()
	}
	return "", nil
}

func TestAdminHandler_Login_Success(t *testing.T) {
	auth := &mockAdminAuth{
		checkPasswordFn: func(password string) bool {
			return password == "secret"
		},
		issueFn: func() (string, error) {
			return "signed-token", nil
		},
	}
	h := NewAdminHandler(auth)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader([]byte(`{"password":"secret"}`)))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	result := parseJSONBody(t, w)
	if result["token"] != "signed-token" {
		t.Errorf("token = %v, want %q", result["token"], "signed-token")
	}
}

func TestAdminHandler_Login_InvalidPassword(t *testing.T) {
	issued := false
	auth := &mockAdminAuth{
		checkPasswordFn: func(password string) bool {
			return false
		},
		issueFn: func() (string, error) {
			issued = true
			return "", nil
		},
	}
	h := NewAdminHandler(auth)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader([]byte(`{"password":"wrong"}`)))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if issued {
		t.Error("token should not be issued for a wrong password")
	}
	result := parseJSONBody(t, w)
	if result["message"] != "Invalid password" {
		t.Errorf("message = %v, want %q", result["message"], "Invalid password")
	}
}

func TestAdminHandler_Login_InvalidBody(t *testing.T) {
	h := NewAdminHandler(&mockAdminAuth{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAdminHandler_Login_IssueFailure(t *testing.T) {
	auth := &mockAdminAuth{
		checkPasswordFn: func(password string) bool { return true },
		issueFn: func() (string, error) {
			return "", errors.New("signing failed")
		},
	}
	h := NewAdminHandler(auth)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader([]byte(`{"password":"secret"}`)))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
