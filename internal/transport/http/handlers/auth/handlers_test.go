package authhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"kpidash/internal/domain/auth"
	"kpidash/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type fakeService struct {
	verifyErr  error
	changeErr  error
	changed    bool
	lastUserID string
}

func (f *fakeService) Verify(_ context.Context, email, password string) (auth.AdminUser, bool, error) {
	if f.verifyErr != nil {
		return auth.AdminUser{}, false, f.verifyErr
	}
	if email == "admin@example.com" && password == "correct-horse" {
		return auth.AdminUser{ID: "u1", Email: email, Role: auth.RoleAdmin, IsActive: true}, true, nil
	}
	return auth.AdminUser{}, false, nil
}

func (f *fakeService) ChangePassword(_ context.Context, userID, _, _ string) (bool, error) {
	f.lastUserID = userID
	return f.changed, f.changeErr
}

type responseError struct {
	Code string `json:"code"`
}

type responseEnvelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   *responseError `json:"error"`
}

func newRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Auth(testSecret))
	NewHandler(svc, testSecret, time.Hour, middleware.LoginRateLimit(100)).RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, path, token string, body any) (int, responseEnvelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env responseEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, env
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name     string
		svc      *fakeService
		body     map[string]string
		want     int
		wantCode string
	}{
		{name: "success", svc: &fakeService{}, body: map[string]string{"email": "admin@example.com", "password": "correct-horse"}, want: http.StatusOK},
		{name: "wrong password", svc: &fakeService{}, body: map[string]string{"email": "admin@example.com", "password": "nope"}, want: http.StatusUnauthorized, wantCode: "invalid_credentials"},
		{name: "missing fields", svc: &fakeService{}, body: map[string]string{"email": ""}, want: http.StatusBadRequest, wantCode: "validation_error"},
		{name: "unconfigured backend", svc: &fakeService{verifyErr: auth.ErrBackendUnconfigured}, body: map[string]string{"email": "a@b.c", "password": "x"}, want: http.StatusServiceUnavailable, wantCode: "backend_unconfigured"},
		{name: "backend failure", svc: &fakeService{verifyErr: errors.New("db down")}, body: map[string]string{"email": "a@b.c", "password": "x"}, want: http.StatusInternalServerError, wantCode: "login_failed"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			status, env := do(t, newRouter(tc.svc), "/auth/login", "", tc.body)
			if status != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, status)
			}
			if tc.wantCode != "" && (env.Error == nil || env.Error.Code != tc.wantCode) {
				t.Fatalf("expected error code %q, got %+v", tc.wantCode, env.Error)
			}
			if tc.want == http.StatusOK {
				token, _ := env.Data["token"].(string)
				claims, err := auth.ParseToken(testSecret, token)
				if err != nil {
					t.Fatalf("expected valid token: %v", err)
				}
				if claims.UserID != "u1" || claims.Role != auth.RoleAdmin {
					t.Fatalf("unexpected claims: %+v", claims)
				}
			}
		})
	}
}

func TestHandleChangePassword(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Role: auth.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	body := map[string]string{"currentPassword": "correct-horse", "newPassword": "battery-staple"}

	tests := []struct {
		name  string
		svc   *fakeService
		token string
		want  int
	}{
		{name: "requires auth", svc: &fakeService{changed: true}, want: http.StatusUnauthorized},
		{name: "success", svc: &fakeService{changed: true}, token: token, want: http.StatusOK},
		{name: "wrong current password", svc: &fakeService{}, token: token, want: http.StatusUnauthorized},
		{name: "weak password", svc: &fakeService{changeErr: auth.ErrWeakPassword}, token: token, want: http.StatusBadRequest},
		{name: "unknown user", svc: &fakeService{changeErr: auth.ErrUserNotFound}, token: token, want: http.StatusNotFound},
		{name: "backend failure", svc: &fakeService{changeErr: errors.New("db down")}, token: token, want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			status, _ := do(t, newRouter(tc.svc), "/auth/password", tc.token, body)
			if status != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, status)
			}
			if tc.token != "" && tc.svc.lastUserID != "u1" {
				t.Fatalf("expected user id from token, got %q", tc.svc.lastUserID)
			}
		})
	}
}
