package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	store StoreAPI
}

// NewService accepts a nil store; every call then reports ErrBackendUnconfigured.
func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Verify checks an email and password against the admin table. A missing,
// inactive or mismatched user yields ok == false with a nil error; errors are
// reserved for backend problems.
func (s *Service) Verify(ctx context.Context, email, password string) (AdminUser, bool, error) {
	if s.store == nil {
		return AdminUser{}, false, ErrBackendUnconfigured
	}
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return AdminUser{}, false, nil
	}

	cred, err := s.store.FindAdminByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return AdminUser{}, false, nil
	}
	if err != nil {
		return AdminUser{}, false, fmt.Errorf("find admin: %w", err)
	}
	if cred.User.Email != email || !cred.User.IsActive {
		return AdminUser{}, false, nil
	}
	if err := CheckPassword(cred.PasswordHash, password); err != nil {
		return AdminUser{}, false, nil
	}
	return cred.User, true, nil
}

// ChangePassword re-verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) (bool, error) {
	if s.store == nil {
		return false, ErrBackendUnconfigured
	}
	cred, err := s.store.GetAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load admin: %w", err)
	}
	if err := CheckPassword(cred.PasswordHash, strings.TrimSpace(current)); err != nil {
		return false, nil
	}
	if err := s.UpdatePassword(ctx, userID, next); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID, password string) error {
	if s.store == nil {
		return ErrBackendUnconfigured
	}
	password = strings.TrimSpace(password)
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
