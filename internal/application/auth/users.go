package auth

import (
	"context"
	"strings"

	"github.com/tourplace/auth-service/internal/domain"
)

// Admin user management. Admin accounts themselves never appear in the
// listing, and an admin cannot lock themselves out or demote themselves.

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListRegularUsers(ctx)
}

func (s *Service) UserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) SetUserStatus(ctx context.Context, actorID, targetID string, enabled bool) (domain.User, error) {
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return domain.User{}, err
	}

	if targetID == actorID && !enabled {
		return domain.User{}, domain.ErrCannotDisableSelf()
	}

	return s.users.UpdateStatus(ctx, targetID, enabled)
}

func (s *Service) SetUserRole(ctx context.Context, actorID, targetID, role string) (domain.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if !domain.IsValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole(role)
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return domain.User{}, err
	}

	if targetID == actorID {
		return domain.User{}, domain.ErrCannotChangeOwnRole()
	}

	return s.users.UpdateRole(ctx, targetID, role)
}
