package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kpidash/internal/domain/auth"
	"kpidash/internal/transport/http/api"
	"kpidash/internal/transport/http/middleware"
	"kpidash/internal/transport/http/shared"
)

type Service interface {
	Verify(ctx context.Context, email, password string) (auth.AdminUser, bool, error)
	ChangePassword(ctx context.Context, userID, current, next string) (bool, error)
}

type Handler struct {
	Service    Service
	Secret     string
	TokenTTL   time.Duration
	LoginLimit func(http.Handler) http.Handler
}

func NewHandler(service Service, secret string, ttl time.Duration, loginLimit func(http.Handler) http.Handler) *Handler {
	return &Handler{Service: service, Secret: secret, TokenTTL: ttl, LoginLimit: loginLimit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		login := r.With()
		if h.LoginLimit != nil {
			login = r.With(h.LoginLimit)
		}
		login.Post("/login", h.HandleLogin)
		r.With(middleware.RequireAuth).Post("/password", h.HandleChangePassword)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("email", payload.Email, "is required")
	v.Required("password", payload.Password, "is required")
	if v.Reject(w, reqID) {
		return
	}

	user, ok, err := h.Service.Verify(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrBackendUnconfigured) {
		api.Fail(w, http.StatusServiceUnavailable, "backend_unconfigured", "authentication backend is not configured", reqID)
		return
	}
	if err != nil {
		slog.Warn("verify admin failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to verify credentials", reqID)
		return
	}
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}

	expiresAt := time.Now().Add(h.TokenTTL)
	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, h.TokenTTL)
	if err != nil {
		slog.Warn("issue token failed", "userId", user.ID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", reqID)
		return
	}

	api.Success(w, map[string]any{
		"token":     token,
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
		"user":      user,
	}, reqID)
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("currentPassword", payload.CurrentPassword, "is required")
	v.Required("newPassword", payload.NewPassword, "is required")
	if v.Reject(w, reqID) {
		return
	}

	changed, err := h.Service.ChangePassword(r.Context(), user.UserID, payload.CurrentPassword, payload.NewPassword)
	switch {
	case errors.Is(err, auth.ErrWeakPassword):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "newPassword", Reason: "must be at least 8 characters"}})
		return
	case errors.Is(err, auth.ErrBackendUnconfigured):
		api.Fail(w, http.StatusServiceUnavailable, "backend_unconfigured", "authentication backend is not configured", reqID)
		return
	case errors.Is(err, auth.ErrUserNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "admin user not found", reqID)
		return
	case err != nil:
		slog.Warn("change password failed", "userId", user.UserID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "password_update_failed", "failed to update password", reqID)
		return
	}
	if !changed {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "password_updated"}, reqID)
}
