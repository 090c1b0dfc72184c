package service

import (
	"context"
	"errors"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/NimrodLoozar/OwnProject/pkg/cryptox"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

var ErrBootstrapNotConfigured = errors.New("owner bootstrap is not configured")

// BootstrapService seeds the single owner account. It runs explicitly during
// process initialization, never as an import-time side effect.
type BootstrapService struct {
	Store store.Store

	OwnerUsername string
	OwnerEmail    string
	OwnerPassword string
}

// EnsureOwner makes sure exactly one principal with the configured email
// exists and holds the owner role with the admin and superuser flags set.
// Idempotent: a second run finds the account and changes nothing; an existing
// non-owner account with that email is upgraded in place, never duplicated or
// downgraded.
func (s *BootstrapService) EnsureOwner(ctx context.Context) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if s.OwnerEmail == "" || s.OwnerUsername == "" || s.OwnerPassword == "" {
		return domain.User{}, ErrBootstrapNotConfigured
	}

	existing, err := s.Store.Users().GetUserByEmailAny(ctx, s.OwnerEmail)
	switch {
	case err == nil:
		if existing.Role == domain.RoleOwner && existing.IsAdmin && existing.IsSuperuser {
			return existing, nil
		}
		existing.Role = domain.RoleOwner
		existing.IsAdmin = true
		existing.IsSuperuser = true
		if err := s.Store.Users().UpdateUser(ctx, existing); err != nil {
			return domain.User{}, err
		}
		l.Info("existing user upgraded to owner", "user_id", existing.ID)
		return existing, nil

	case errors.Is(err, store.ErrNotFound):
		hash, err := cryptox.HashPassword(s.OwnerPassword)
		if err != nil {
			return domain.User{}, err
		}
		owner, err := s.Store.Users().CreateUser(ctx, domain.User{
			Username:       s.OwnerUsername,
			Email:          s.OwnerEmail,
			HashedPassword: hash,
			Role:           domain.RoleOwner,
			IsActive:       true,
			IsSuperuser:    true,
			IsAdmin:        true,
			ThemePref:      "system",
		})
		if err != nil {
			return domain.User{}, err
		}
		l.Info("owner user created", "user_id", owner.ID)
		return owner, nil

	default:
		return domain.User{}, err
	}
}
