package service

import (
	"context"
	"testing"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/stretchr/testify/require"
)

func TestSoftDelete(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	svc := &LifecycleService{Store: st}
	ctx := context.Background()

	ownerID := registerUser(t, auth, "boss")
	targetID := registerUser(t, auth, "target")

	t.Run("self delete is rejected", func(t *testing.T) {
		_, err := svc.SoftDelete(ctx, ownerID, ownerID)
		require.ErrorIs(t, err, ErrSelfDelete)
	})

	deleted, err := svc.SoftDelete(ctx, ownerID, targetID)
	require.NoError(t, err)
	require.True(t, deleted.Deleted())
	require.NotNil(t, deleted.DeletedBy)
	require.Equal(t, ownerID, *deleted.DeletedBy)

	t.Run("already deleted reports not found", func(t *testing.T) {
		_, err := svc.SoftDelete(ctx, ownerID, targetID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		_, err := svc.SoftDelete(ctx, ownerID, 99999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRestore(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	svc := &LifecycleService{Store: st}
	ctx := context.Background()

	ownerID := registerUser(t, auth, "boss")
	targetID := registerUser(t, auth, "victim")

	_, err := svc.SoftDelete(ctx, ownerID, targetID)
	require.NoError(t, err)

	restored, err := svc.Restore(ctx, targetID)
	require.NoError(t, err)
	require.False(t, restored.Deleted())

	t.Run("restoring a live account reports not found", func(t *testing.T) {
		_, err := svc.Restore(ctx, targetID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("restore conflicts when the name was reclaimed", func(t *testing.T) {
		_, err := svc.SoftDelete(ctx, ownerID, targetID)
		require.NoError(t, err)
		registerUser(t, auth, "victim")

		_, err = svc.Restore(ctx, targetID)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestPermanentlyDelete(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	svc := &LifecycleService{Store: st}
	ctx := context.Background()

	ownerID := registerUser(t, auth, "boss")
	targetID := registerUser(t, auth, "condemned")

	_, err := st.UserData().Create(ctx, domain.UserData{UserID: targetID, Key: "prefs"})
	require.NoError(t, err)

	t.Run("self delete is rejected", func(t *testing.T) {
		_, err := svc.PermanentlyDelete(ctx, ownerID, ownerID)
		require.ErrorIs(t, err, ErrSelfDelete)
	})

	gone, err := svc.PermanentlyDelete(ctx, ownerID, targetID)
	require.NoError(t, err)
	require.Equal(t, "condemned", gone.Username)

	_, err = st.Users().GetUserByIDAny(ctx, targetID)
	require.ErrorIs(t, err, store.ErrNotFound)

	items, err := st.UserData().ListByUser(ctx, targetID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestListDeleted(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	svc := &LifecycleService{Store: st}
	ctx := context.Background()

	ownerID := registerUser(t, auth, "boss")
	aID := registerUser(t, auth, "gone-a")
	bID := registerUser(t, auth, "gone-b")

	_, err := svc.SoftDelete(ctx, ownerID, aID)
	require.NoError(t, err)
	_, err = svc.SoftDelete(ctx, ownerID, bID)
	require.NoError(t, err)

	deleted, err := svc.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 2)
	for _, d := range deleted {
		require.True(t, d.Deleted())
		require.Equal(t, "boss", d.DeletedByUsername)
	}

	t.Run("deleter name survives the deleter's own removal", func(t *testing.T) {
		other := registerUser(t, auth, "boss2")
		_, err := svc.SoftDelete(ctx, other, ownerID)
		require.NoError(t, err)

		deleted, err := svc.ListDeleted(ctx)
		require.NoError(t, err)
		require.Len(t, deleted, 3)
		for _, d := range deleted {
			if d.ID == aID || d.ID == bID {
				require.Equal(t, "boss", d.DeletedByUsername)
			}
		}
	})
}

func TestExists(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	svc := &LifecycleService{Store: st}
	ctx := context.Background()

	ownerID := registerUser(t, auth, "boss")
	targetID := registerUser(t, auth, "present")

	exists, err := svc.Exists(ctx, targetID)
	require.NoError(t, err)
	require.True(t, exists)

	_, err = svc.SoftDelete(ctx, ownerID, targetID)
	require.NoError(t, err)

	exists, err = svc.Exists(ctx, targetID)
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = svc.Exists(ctx, 99999)
	require.NoError(t, err)
	require.False(t, exists)
}
