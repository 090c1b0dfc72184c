package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/NimrodLoozar/OwnProject/internal/api/store/drivers/sqlite"
	"github.com/NimrodLoozar/OwnProject/pkg/idx"
	"github.com/NimrodLoozar/OwnProject/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-token-signing"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", idx.New().String())
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newAuthService(t *testing.T, st store.Store) *AuthService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	return &AuthService{Store: st, Signer: signer}
}

func registerUser(t *testing.T, svc *AuthService, username string) int64 {
	t.Helper()

	u, err := svc.Register(context.Background(),
		username, username+"@example.com", "correct horse battery")
	require.NoError(t, err)
	return u.ID
}
