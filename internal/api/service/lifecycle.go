package service

import (
	"context"
	"errors"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

// ErrSelfDelete rejects an owner deleting their own account, soft or
// permanent. Without it the last owner could lock everyone out.
var ErrSelfDelete = errors.New("self_delete_forbidden")

// LifecycleService soft-deletes, restores and permanently deletes accounts,
// maintaining the deleted-by audit link.
type LifecycleService struct {
	Store store.Store
}

// SoftDelete marks the target deleted and records the acting owner. The
// target disappears from authentication, existence checks and default
// listings on the very next request; already-issued tokens stop resolving.
func (s *LifecycleService) SoftDelete(ctx context.Context, actorID, targetID int64) (domain.User, error) {
	if actorID == targetID {
		return domain.User{}, ErrSelfDelete
	}

	var deleted domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SoftDeleteUser(ctx, targetID, actorID); err != nil {
			return err
		}
		u, err := tx.Users().GetUserByIDAny(ctx, targetID)
		if err != nil {
			return err
		}
		deleted = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user soft-deleted",
		"user_id", targetID, "deleted_by", actorID)
	return deleted, nil
}

// Restore clears the soft-delete markers, re-enabling authentication with
// unchanged credentials. store.ErrNotFound unless a soft-deleted record with
// that id exists.
func (s *LifecycleService) Restore(ctx context.Context, targetID int64) (domain.User, error) {
	var restored domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().RestoreUser(ctx, targetID); err != nil {
			return err
		}
		u, err := tx.Users().GetUserByID(ctx, targetID)
		if err != nil {
			return err
		}
		restored = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user restored", "user_id", targetID)
	return restored, nil
}

// PermanentlyDelete removes the row and the user's data entries regardless of
// prior soft-delete state. The same self-delete guard applies.
func (s *LifecycleService) PermanentlyDelete(ctx context.Context, actorID, targetID int64) (domain.User, error) {
	if actorID == targetID {
		return domain.User{}, ErrSelfDelete
	}

	var removed domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByIDAny(ctx, targetID)
		if err != nil {
			return err
		}
		if err := tx.UserData().DeleteAllForUser(ctx, targetID); err != nil {
			return err
		}
		if err := tx.Users().DeleteUser(ctx, targetID); err != nil {
			return err
		}
		removed = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user permanently deleted",
		"user_id", targetID, "deleted_by", actorID)
	return removed, nil
}

// ListDeleted returns all soft-deleted users with the deleter's username
// resolved for audit display. Resolution is best-effort: if the deleter was
// itself hard-deleted since, the name is left empty rather than failing the
// whole listing.
func (s *LifecycleService) ListDeleted(ctx context.Context) ([]domain.DeletedUser, error) {
	users, err := s.Store.Users().ListDeletedUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DeletedUser, 0, len(users))
	for _, u := range users {
		entry := domain.DeletedUser{User: u}
		if u.DeletedBy != nil {
			if deleter, err := s.Store.Users().GetUserByIDAny(ctx, *u.DeletedBy); err == nil {
				entry.DeletedByUsername = deleter.Username
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// Exists reports whether a non-deleted user with that id exists. External
// callers use it to check that a held token's subject is still valid.
func (s *LifecycleService) Exists(ctx context.Context, targetID int64) (bool, error) {
	return s.Store.Users().ExistsUser(ctx, targetID)
}
