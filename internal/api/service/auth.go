package service

import (
	"context"
	"errors"
	"time"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/NimrodLoozar/OwnProject/pkg/cryptox"
	"github.com/NimrodLoozar/OwnProject/pkg/jwtx"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

var (
	// ErrInvalidCredentials is the single authentication failure. An unknown
	// username, a wrong password and a soft-deleted account all produce it,
	// so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrUserExists = errors.New("user_exists")
)

type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	AccessTTL time.Duration
}

// Authenticate turns (username, password) into an authenticated user or
// ErrInvalidCredentials. Inactive users authenticate successfully; the active
// gate is applied later, per request, by the access guard.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if !cryptox.VerifyPassword(password, u.HashedPassword) {
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// Login authenticates and issues a session token for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Info("login rejected", "username", username)
		}
		return "", domain.User{}, err
	}

	token, err := s.Signer.Sign(jwtx.NewAccessClaims(u.Username, s.AccessTTL, time.Now()))
	if err != nil {
		return "", domain.User{}, err
	}

	l.Info("login succeeded", "user_id", u.ID)
	return token, u, nil
}

// Register creates a new ordinary user. Uniqueness of username and email
// among live accounts is enforced by the store, so two concurrent
// registrations of the same name cannot both succeed.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		Role:           domain.RoleUser,
		IsActive:       true,
		ThemePref:      "system",
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}
