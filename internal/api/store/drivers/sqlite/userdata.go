package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
)

const userDataColumns = `id, user_id, key, value, created_at, updated_at`

type userDataRepo struct {
	db dbtx
}

func scanUserData(row interface{ Scan(...any) error }) (domain.UserData, error) {
	var (
		d     domain.UserData
		value sql.NullString
	)
	err := row.Scan(&d.ID, &d.UserID, &d.Key, &value, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.UserData{}, err
	}
	d.Value = mapNullStringPtr(value)
	return d, nil
}

func (r *userDataRepo) ListByUser(ctx context.Context, userID int64) ([]domain.UserData, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userDataColumns+` FROM user_data WHERE user_id = ? ORDER BY key`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.UserData
	for rows.Next() {
		d, err := scanUserData(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, d)
	}
	return entries, rows.Err()
}

func (r *userDataRepo) GetByKey(ctx context.Context, userID int64, key string) (domain.UserData, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userDataColumns+` FROM user_data WHERE user_id = ? AND key = ?`, userID, key)
	d, err := scanUserData(row)
	if err != nil {
		return domain.UserData{}, mapNotFound(err)
	}
	return d, nil
}

func (r *userDataRepo) Create(ctx context.Context, d domain.UserData) (domain.UserData, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_data (user_id, key, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		d.UserID, d.Key, mapOptionalString(d.Value), now, now,
	)
	if err != nil {
		return domain.UserData{}, mapConflict(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.UserData{}, err
	}

	d.ID = id
	d.CreatedAt = now
	d.UpdatedAt = now
	return d, nil
}

func (r *userDataRepo) UpdateValue(ctx context.Context, userID int64, key string, value *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_data SET value = ?, updated_at = ? WHERE user_id = ? AND key = ?`,
		mapOptionalString(value), time.Now().UTC(), userID, key,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *userDataRepo) DeleteByKey(ctx context.Context, userID int64, key string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_data WHERE user_id = ? AND key = ?`, userID, key)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *userDataRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_data WHERE user_id = ?`, userID)
	return err
}
