package postgres

import (
	"context"
	"database/sql"

	"drives3/internal/model"
	"drives3/internal/repository"
)

// BucketPostgres is a PostgreSQL implementation of repository.BucketRepository.
type BucketPostgres struct {
	db *sql.DB
}

// NewBucketPostgres creates a new BucketPostgres repository.
func NewBucketPostgres(db *sql.DB) *BucketPostgres {
	return &BucketPostgres{db: db}
}

var _ repository.BucketRepository = (*BucketPostgres)(nil)

const bucketColumns = `id, user_id, name, drive_folder_id, created_at`

func scanBucket(row rowScanner) (*model.Bucket, error) {
	var b model.Bucket
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.DriveFolderID, &b.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// Create inserts a bucket row. A duplicate (user_id, name) yields repository.ErrDuplicate.
func (r *BucketPostgres) Create(ctx context.Context, b *model.Bucket) (*model.Bucket, error) {
	const q = `
		INSERT INTO buckets (id, user_id, name, drive_folder_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + bucketColumns
	row := r.db.QueryRowContext(ctx, q, b.ID, b.UserID, b.Name, b.DriveFolderID, b.CreatedAt)
	return scanBucket(row)
}

// FindByName fetches the bucket called name owned by userID.
func (r *BucketPostgres) FindByName(ctx context.Context, userID, name string) (*model.Bucket, error) {
	const q = `SELECT ` + bucketColumns + ` FROM buckets WHERE user_id = $1 AND name = $2`
	return scanBucket(r.db.QueryRowContext(ctx, q, userID, name))
}

// ListByUser returns every bucket owned by userID.
func (r *BucketPostgres) ListByUser(ctx context.Context, userID string) ([]model.Bucket, error) {
	const q = `SELECT ` + bucketColumns + ` FROM buckets WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Bucket, 0)
	for rows.Next() {
		b, err := scanBucket(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a bucket by ID. Remaining files rows go with it through the foreign key.
func (r *BucketPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM buckets WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
