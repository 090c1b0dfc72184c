package store

import (
	"context"
	"errors"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and let services depend
// on exactly the slice of storage they use.
type Store interface {
	Users() Users
	UserData() UserData

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise committed. Rollback also runs on
	// panic, so the handle is released on every exit path.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users holds account records. Reads filter out soft-deleted rows unless the
// method name says otherwise ("Any" variants, ListDeletedUsers); the filter
// lives in one place in the driver so no query can forget it.
type Users interface {
	// GetUserByID returns a non-deleted user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByIDAny returns a user by id regardless of soft-delete state.
	GetUserByIDAny(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is the authentication lookup; soft-deleted users are
	// indistinguishable from never-existed.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmailAny looks up by email across all rows, used by the owner
	// bootstrap which must see soft-deleted accounts too.
	GetUserByEmailAny(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns all users, newest first. includeDeleted widens the
	// view to soft-deleted rows.
	ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error)

	// ListDeletedUsers returns only soft-deleted rows.
	ListDeletedUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user and returns it with id and timestamps
	// assigned. Returns ErrAlreadyExists when username or email is already
	// held by a non-deleted user; uniqueness is enforced by the database so
	// concurrent registrations cannot both succeed.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateUser persists mutable fields and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// SoftDeleteUser marks a non-deleted user deleted, recording who did it.
	SoftDeleteUser(ctx context.Context, id, deletedBy int64) error

	// RestoreUser clears the soft-delete markers. ErrNotFound unless a
	// soft-deleted row with that id exists.
	RestoreUser(ctx context.Context, id int64) error

	// DeleteUser removes the row permanently, regardless of soft-delete state.
	DeleteUser(ctx context.Context, id int64) error

	// ExistsUser reports whether a non-deleted user with that id exists.
	ExistsUser(ctx context.Context, id int64) (bool, error)
}

// UserData holds per-user key/value entries.
type UserData interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.UserData, error)
	GetByKey(ctx context.Context, userID int64, key string) (domain.UserData, error)

	// Create inserts a new entry. ErrAlreadyExists when the key is taken for
	// this user.
	Create(ctx context.Context, d domain.UserData) (domain.UserData, error)

	UpdateValue(ctx context.Context, userID int64, key string, value *string) error
	DeleteByKey(ctx context.Context, userID int64, key string) error

	// DeleteAllForUser removes every entry for a user; used when an account
	// is permanently deleted.
	DeleteAllForUser(ctx context.Context, userID int64) error
}
