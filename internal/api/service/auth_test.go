package service

import (
	"context"
	"testing"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, u.Role)
	require.True(t, u.IsActive)
	require.False(t, u.IsAdmin)
	require.False(t, u.IsSuperuser)
	require.Equal(t, "system", u.ThemePref)
	require.NotEqual(t, "hunter22", u.HashedPassword)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "alice2@example.com", "hunter22")
		require.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice2", "alice@example.com", "hunter22")
		require.ErrorIs(t, err, ErrUserExists)
	})
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	// Two racing registrations of the same identifiers: the partial unique
	// index decides the winner, so exactly one succeeds.
	results := make(chan error, 2)
	for range 2 {
		go func() {
			_, err := svc.Register(ctx, "raced", "raced@example.com", "hunter22")
			results <- err
		}()
	}

	var won, lost int
	for range 2 {
		switch err := <-results; {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, ErrUserExists)
			lost++
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, 1, lost)

	users, err := st.Users().ListUsers(ctx, true)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	registerUser(t, svc, "bob")

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "bob", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, "bob", u.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "bob", "wrong password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user fails the same way", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "correct horse battery")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive users still authenticate", func(t *testing.T) {
		u, err := st.Users().GetUserByUsername(ctx, "bob")
		require.NoError(t, err)
		u.IsActive = false
		require.NoError(t, st.Users().UpdateUser(ctx, u))

		got, err := svc.Authenticate(ctx, "bob", "correct horse battery")
		require.NoError(t, err)
		require.False(t, got.IsActive)
	})
}

func TestAuthenticateSoftDeleted(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	id := registerUser(t, svc, "carol")
	require.NoError(t, st.Users().SoftDeleteUser(ctx, id, id))

	// A soft-deleted account must be indistinguishable from one that never
	// existed, even with the correct password.
	_, err := svc.Authenticate(ctx, "carol", "correct horse battery")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	t.Run("restore re-enables login", func(t *testing.T) {
		require.NoError(t, st.Users().RestoreUser(ctx, id))

		u, err := svc.Authenticate(ctx, "carol", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, id, u.ID)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	registerUser(t, svc, "dave")

	token, u, err := svc.Login(ctx, "dave", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, "dave", u.Username)

	verifier, err := jwtx.NewVerifierHS256(testSecret)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "dave", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)

	t.Run("bad credentials issue no token", func(t *testing.T) {
		token, _, err := svc.Login(ctx, "dave", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Empty(t, token)
	})
}
