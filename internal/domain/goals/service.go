package goals

import (
	"context"
	"fmt"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// ListForMember returns the member's assignments already normalized.
func (s *Service) ListForMember(ctx context.Context, memberID string) ([]Goal, error) {
	assignments, err := s.store.ListAssignments(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list goal assignments: %w", err)
	}
	return NormalizeAll(assignments), nil
}
