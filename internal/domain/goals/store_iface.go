package goals

import "context"

type StoreAPI interface {
	ListAssignments(ctx context.Context, memberID string) ([]Assignment, error)
}
