package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cvmaker-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, first_name, last_name, education, email, password_hash, google_id, is_admin, reset_token_hash, reset_expires_at, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, first_name, last_name, education, email, password_hash, google_id, is_admin, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Education,
		user.Email,
		db.NullableString(user.PasswordHash),
		db.NullableString(user.GoogleID),
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if db.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	const query = `
UPDATE users SET
  first_name = $2,
  last_name = $3,
  education = $4,
  email = $5,
  password_hash = $6,
  google_id = $7,
  is_admin = $8,
  reset_token_hash = $9,
  reset_expires_at = $10,
  updated_at = $11
WHERE id = $1`
	var resetExpires any
	if user.ResetExpiresAt != nil {
		resetExpires = *user.ResetExpiresAt
	}
	res, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Education,
		user.Email,
		db.NullableString(user.PasswordHash),
		db.NullableString(user.GoogleID),
		user.IsAdmin,
		db.NullableString(user.ResetTokenHash),
		resetExpires,
		user.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 LIMIT 1`, userID)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

func (r *PGRepo) GetByGoogleID(ctx context.Context, googleID string) (User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1 LIMIT 1`, googleID)
}

func (r *PGRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token_hash = $1 AND reset_expires_at > $2 LIMIT 1`, tokenHash, now)
}

func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *PGRepo) getOne(ctx context.Context, query string, args ...any) (User, error) {
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user         User
		passwordHash sql.NullString
		googleID     sql.NullString
		resetHash    sql.NullString
		resetExpires sql.NullTime
	)
	if err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Education,
		&user.Email,
		&passwordHash,
		&googleID,
		&user.IsAdmin,
		&resetHash,
		&resetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return User{}, err
	}
	user.PasswordHash = passwordHash.String
	user.GoogleID = googleID.String
	user.ResetTokenHash = resetHash.String
	if resetExpires.Valid {
		t := resetExpires.Time
		user.ResetExpiresAt = &t
	}
	return user, nil
}
