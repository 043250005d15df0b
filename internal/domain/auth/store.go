package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (Credential, error) {
	return s.findOne(ctx, "email = $1", email)
}

func (s *Store) GetAdmin(ctx context.Context, userID string) (Credential, error) {
	return s.findOne(ctx, "id = $1", userID)
}

func (s *Store) findOne(ctx context.Context, where string, arg any) (Credential, error) {
	var out Credential
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, name, role, is_active, password_hash
    FROM admin_users
    WHERE `+where, arg).Scan(&out.User.ID, &out.User.Email, &out.User.Name, &out.User.Role, &out.User.IsActive, &out.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, ErrUserNotFound
	}
	return out, err
}

func (s *Store) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE admin_users SET password_hash = $1, updated_at = now() WHERE id = $2", passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
