package repository

import (
	"context"

	"drives3/internal/model"
)

// BucketRepository persists buckets. (user_id, name) is unique; Create reports
// a violation as ErrDuplicate.
type BucketRepository interface {
	Create(ctx context.Context, b *model.Bucket) (*model.Bucket, error)
	FindByName(ctx context.Context, userID, name string) (*model.Bucket, error)
	ListByUser(ctx context.Context, userID string) ([]model.Bucket, error)
	Delete(ctx context.Context, id string) error
}
