package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
)

// visibleUsers is the single soft-delete predicate every default read uses.
// Queries that need deleted rows say so explicitly instead of repeating (and
// potentially forgetting) the null check.
const visibleUsers = "deleted_at IS NULL"

const userColumns = `id, username, email, hashed_password, role, is_active,
	is_superuser, is_admin, profile_picture, theme_pref, deleted_at,
	deleted_by, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u              domain.User
		profilePicture sql.NullString
		deletedAt      sql.NullTime
		deletedBy      sql.NullInt64
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.Role, &u.IsActive,
		&u.IsSuperuser, &u.IsAdmin, &profilePicture, &u.ThemePref, &deletedAt,
		&deletedBy, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.ProfilePicture = mapNullStringPtr(profilePicture)
	u.DeletedAt = mapNullTimePtr(deletedAt)
	u.DeletedBy = mapNullInt64Ptr(deletedBy)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND `+visibleUsers, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByIDAny(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? AND `+visibleUsers, username)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmailAny(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context, includeDeleted bool) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	if !includeDeleted {
		query += ` WHERE ` + visibleUsers
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *usersRepo) ListDeletedUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, hashed_password, role, is_active,
			is_superuser, is_admin, profile_picture, theme_pref, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.HashedPassword, u.Role, u.IsActive,
		u.IsSuperuser, u.IsAdmin, mapOptionalString(u.ProfilePicture),
		u.ThemePref, now, now,
	)
	if err != nil {
		return domain.User{}, mapConflict(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}

	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, hashed_password = ?, role = ?,
			is_active = ?, is_superuser = ?, is_admin = ?, profile_picture = ?,
			theme_pref = ?, updated_at = ?
		 WHERE id = ?`,
		u.Username, u.Email, u.HashedPassword, u.Role,
		u.IsActive, u.IsSuperuser, u.IsAdmin, mapOptionalString(u.ProfilePicture),
		u.ThemePref, time.Now().UTC(), u.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *usersRepo) SoftDeleteUser(ctx context.Context, id, deletedBy int64) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET deleted_at = ?, deleted_by = ?, updated_at = ?
		 WHERE id = ? AND `+visibleUsers,
		now, deletedBy, now, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) RestoreUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET deleted_at = NULL, deleted_by = NULL, updated_at = ?
		 WHERE id = ? AND deleted_at IS NOT NULL`,
		time.Now().UTC(), id,
	)
	if err != nil {
		// Restoring may collide with a live user who has since claimed the
		// same username or email.
		return mapConflict(err)
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) ExistsUser(ctx context.Context, id int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE id = ? AND `+visibleUsers, id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// requireRow maps a zero-row write to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
