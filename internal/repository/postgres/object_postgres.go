package postgres

import (
	"context"
	"database/sql"
	"time"

	"drives3/internal/model"
	"drives3/internal/repository"
)

// ObjectPostgres is a PostgreSQL implementation of repository.ObjectRepository.
// Objects are stored in the files table.
type ObjectPostgres struct {
	db *sql.DB
}

// NewObjectPostgres creates a new ObjectPostgres repository.
func NewObjectPostgres(db *sql.DB) *ObjectPostgres {
	return &ObjectPostgres{db: db}
}

var _ repository.ObjectRepository = (*ObjectPostgres)(nil)

const objectColumns = `f.id, f.user_id, f.bucket_id, f.drive_file_id, f.file_name,
		COALESCE(f.original_file_name, ''), COALESCE(f.mime_type, ''), f.public_token, f.expires_at, f.created_at`

func scanObject(row rowScanner) (*model.Object, error) {
	var (
		o       model.Object
		token   sql.NullString
		expires sql.NullTime
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.BucketID,
		&o.DriveFileID,
		&o.FileName,
		&o.OriginalFileName,
		&o.MimeType,
		&token,
		&expires,
		&o.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	if token.Valid {
		o.PublicToken = &token.String
	}
	if expires.Valid {
		o.ExpiresAt = &expires.Time
	}
	return &o, nil
}

// Create inserts a files row and returns the stored record.
func (r *ObjectPostgres) Create(ctx context.Context, o *model.Object) (*model.Object, error) {
	const q = `
		INSERT INTO files AS f (id, user_id, bucket_id, drive_file_id, file_name, original_file_name, mime_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + objectColumns
	row := r.db.QueryRowContext(ctx, q,
		o.ID,
		o.UserID,
		o.BucketID,
		o.DriveFileID,
		o.FileName,
		o.OriginalFileName,
		o.MimeType,
		o.CreatedAt,
	)
	return scanObject(row)
}

// FindByName fetches an object by bucket, owner and stored name.
func (r *ObjectPostgres) FindByName(ctx context.Context, bucketID, userID, fileName string) (*model.Object, error) {
	const q = `SELECT ` + objectColumns + ` FROM files f
		WHERE f.bucket_id = $1 AND f.user_id = $2 AND f.file_name = $3`
	return scanObject(r.db.QueryRowContext(ctx, q, bucketID, userID, fileName))
}

// FindByPublicToken fetches an object through its bucket name, stored name and
// presign token in a single lookup.
func (r *ObjectPostgres) FindByPublicToken(ctx context.Context, bucketName, fileName, token string) (*model.Object, error) {
	const q = `SELECT ` + objectColumns + ` FROM files f
		JOIN buckets b ON b.id = f.bucket_id
		WHERE b.name = $1 AND f.file_name = $2 AND f.public_token = $3`
	return scanObject(r.db.QueryRowContext(ctx, q, bucketName, fileName, token))
}

// ListByBucket returns all objects of a bucket, newest first.
func (r *ObjectPostgres) ListByBucket(ctx context.Context, bucketID string) ([]model.Object, error) {
	const q = `SELECT ` + objectColumns + ` FROM files f
		WHERE f.bucket_id = $1
		ORDER BY f.created_at DESC, f.id DESC`
	rows, err := r.db.QueryContext(ctx, q, bucketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Object, 0)
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// SetPublicToken stores a presign token and its expiry, replacing any previous pair.
func (r *ObjectPostgres) SetPublicToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	const q = `UPDATE files SET public_token = $2, expires_at = $3 WHERE id = $1`
	return r.execOne(ctx, q, id, token, expiresAt)
}

// ClearPublicToken drops the presign token and its expiry.
func (r *ObjectPostgres) ClearPublicToken(ctx context.Context, id string) error {
	const q = `UPDATE files SET public_token = NULL, expires_at = NULL WHERE id = $1`
	return r.execOne(ctx, q, id)
}

// Delete removes an object by ID. It does not return an error if the row does not exist.
func (r *ObjectPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// DeleteByBucket removes every object of a bucket.
func (r *ObjectPostgres) DeleteByBucket(ctx context.Context, bucketID string) error {
	const q = `DELETE FROM files WHERE bucket_id = $1`
	_, err := r.db.ExecContext(ctx, q, bucketID)
	return err
}

func (r *ObjectPostgres) execOne(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
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
