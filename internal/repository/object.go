package repository

import (
	"context"
	"time"

	"drives3/internal/model"
)

// ObjectRepository persists objects (the files table).
type ObjectRepository interface {
	Create(ctx context.Context, o *model.Object) (*model.Object, error)

	// FindByName looks an object up by (bucket, stored name, owner).
	FindByName(ctx context.Context, bucketID, userID, fileName string) (*model.Object, error)

	// FindByPublicToken resolves an object for anonymous access by bucket name,
	// stored name and presign token. Ownership is not filtered.
	FindByPublicToken(ctx context.Context, bucketName, fileName, token string) (*model.Object, error)

	ListByBucket(ctx context.Context, bucketID string) ([]model.Object, error)

	// SetPublicToken overwrites the presign token and its expiry.
	SetPublicToken(ctx context.Context, id, token string, expiresAt time.Time) error

	// ClearPublicToken removes the presign token and its expiry.
	ClearPublicToken(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
	DeleteByBucket(ctx context.Context, bucketID string) error
}
