package auth

import "context"

type StoreAPI interface {
	FindAdminByEmail(ctx context.Context, email string) (Credential, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	GetAdmin(ctx context.Context, userID string) (Credential, error)
}
