package repository

import (
	"context"
	"time"

	"drives3/internal/model"
)

// UserRepository persists users and their delegated Google credentials.
type UserRepository interface {
	// Upsert inserts or updates the user identified by Email.
	// An empty GoogleRefreshToken keeps the stored one.
	Upsert(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns ErrNotFound when missing.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByAccessToken matches the bearer token verbatim.
	FindByAccessToken(ctx context.Context, token string) (*model.User, error)

	// UpdateGoogleTokens stores a refreshed access token and its expiry.
	// refreshToken is only written when non-empty.
	UpdateGoogleTokens(ctx context.Context, userID, accessToken, refreshToken string, expiry time.Time) error
}
