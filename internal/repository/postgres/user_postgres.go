package postgres

import (
	"context"
	"database/sql"
	"time"

	"drives3/internal/model"
	"drives3/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, email, COALESCE(access_token, ''), COALESCE(google_access_token, ''),
		COALESCE(google_refresh_token, ''), google_token_expiry, created_at, updated_at`

func scanUser(row rowScanner) (*model.User, error) {
	var (
		u      model.User
		expiry sql.NullTime
	)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.AccessToken,
		&u.GoogleAccessToken,
		&u.GoogleRefreshToken,
		&expiry,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	if expiry.Valid {
		u.GoogleTokenExpiry = expiry.Time
	}
	return &u, nil
}

// Upsert inserts a user or updates the existing row with the same email.
func (r *UserPostgres) Upsert(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, email, access_token, google_access_token, google_refresh_token, google_token_expiry)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		ON CONFLICT (email) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			google_access_token = EXCLUDED.google_access_token,
			google_refresh_token = COALESCE(EXCLUDED.google_refresh_token, users.google_refresh_token),
			google_token_expiry = EXCLUDED.google_token_expiry,
			updated_at = now()
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Email,
		u.AccessToken,
		u.GoogleAccessToken,
		u.GoogleRefreshToken,
		nullTime(u.GoogleTokenExpiry),
	)
	return scanUser(row)
}

// FindByID fetches a single user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByAccessToken fetches the user holding the given bearer token.
func (r *UserPostgres) FindByAccessToken(ctx context.Context, token string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE access_token = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, token))
}

// UpdateGoogleTokens stores a refreshed Google access token and, when given,
// a rotated refresh token.
func (r *UserPostgres) UpdateGoogleTokens(ctx context.Context, userID, accessToken, refreshToken string, expiry time.Time) error {
	const q = `
		UPDATE users SET
			google_access_token = $2,
			google_refresh_token = COALESCE(NULLIF($3, ''), google_refresh_token),
			google_token_expiry = $4,
			updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, userID, accessToken, refreshToken, nullTime(expiry))
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
