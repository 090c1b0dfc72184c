package service

import (
	"context"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a non-deleted user by id.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// ListUsers returns all users; includeDeleted widens the view to soft-deleted
// rows for the admin surface.
func (s *UserService) ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, includeDeleted)
}

// UpdateTheme sets the user's theme preference.
func (s *UserService) UpdateTheme(ctx context.Context, u domain.User, theme string) (domain.User, error) {
	u.ThemePref = theme
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// SetProfilePicture records the stored picture path for a user.
func (s *UserService) SetProfilePicture(ctx context.Context, u domain.User, path string) (domain.User, error) {
	u.ProfilePicture = &path
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// ClearProfilePicture removes the stored picture path.
func (s *UserService) ClearProfilePicture(ctx context.Context, u domain.User) (domain.User, error) {
	u.ProfilePicture = nil
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
