package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drives3/internal/model"
	"drives3/internal/repository"
)

var objectRowColumns = []string{
	"id", "user_id", "bucket_id", "drive_file_id", "file_name",
	"original_file_name", "mime_type", "public_token", "expires_at", "created_at",
}

func TestObjectPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	o := &model.Object{
		ID:               "o-1",
		UserID:           "user-1",
		BucketID:         "b-1",
		DriveFileID:      "drive-1",
		FileName:         "0123456789abcdef0123456789abcdef.png",
		OriginalFileName: "cat.png",
		MimeType:         "image/png",
		CreatedAt:        now,
	}

	mock.ExpectQuery("INSERT INTO files").
		WithArgs(o.ID, o.UserID, o.BucketID, o.DriveFileID, o.FileName, o.OriginalFileName, o.MimeType, o.CreatedAt).
		WillReturnRows(sqlmock.NewRows(objectRowColumns).
			AddRow(o.ID, o.UserID, o.BucketID, o.DriveFileID, o.FileName, o.OriginalFileName, o.MimeType, nil, nil, now))

	got, err := NewObjectPostgres(db).Create(context.Background(), o)

	require.NoError(t, err)
	assert.Equal(t, "cat.png", got.OriginalFileName)
	assert.Nil(t, got.PublicToken)
	assert.Nil(t, got.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectPostgres_FindByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewObjectPostgres(db)
	ctx := context.Background()

	t.Run("with token", func(t *testing.T) {
		exp := time.Now().Add(time.Hour)
		mock.ExpectQuery("SELECT (.+) FROM files f WHERE f.bucket_id = \\$1 AND f.user_id = \\$2 AND f.file_name = \\$3").
			WithArgs("b-1", "user-1", "x.png").
			WillReturnRows(sqlmock.NewRows(objectRowColumns).
				AddRow("o-1", "user-1", "b-1", "drive-1", "x.png", "cat.png", "image/png", "tok", exp, time.Now()))

		o, err := repo.FindByName(ctx, "b-1", "user-1", "x.png")

		require.NoError(t, err)
		require.NotNil(t, o.PublicToken)
		assert.Equal(t, "tok", *o.PublicToken)
		assert.True(t, o.HasActiveToken())
		require.NotNil(t, o.ExpiresAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files f WHERE f.bucket_id").
			WithArgs("b-1", "user-2", "x.png").
			WillReturnError(sql.ErrNoRows)

		o, err := repo.FindByName(ctx, "b-1", "user-2", "x.png")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, o)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectPostgres_FindByPublicToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	exp := time.Now().Add(time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM files f JOIN buckets b ON b.id = f.bucket_id WHERE b.name = \\$1 AND f.file_name = \\$2 AND f.public_token = \\$3").
		WithArgs("photos", "x.png", "tok").
		WillReturnRows(sqlmock.NewRows(objectRowColumns).
			AddRow("o-1", "user-1", "b-1", "drive-1", "x.png", "cat.png", "image/png", "tok", exp, time.Now()))

	o, err := NewObjectPostgres(db).FindByPublicToken(context.Background(), "photos", "x.png", "tok")

	require.NoError(t, err)
	assert.Equal(t, "user-1", o.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectPostgres_ListByBucket(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(objectRowColumns).
		AddRow("o-1", "user-1", "b-1", "drive-1", "a.png", "cat.png", "image/png", nil, nil, time.Now()).
		AddRow("o-2", "user-1", "b-1", "drive-2", "b.pdf", "report.pdf", "application/pdf", nil, nil, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM files f WHERE f.bucket_id = \\$1 ORDER BY").
		WithArgs("b-1").
		WillReturnRows(rows)

	got, err := NewObjectPostgres(db).ListByBucket(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "report.pdf", got[1].OriginalFileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectPostgres_PublicToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewObjectPostgres(db)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).UTC()

	mock.ExpectExec("UPDATE files SET public_token = \\$2, expires_at = \\$3 WHERE id = \\$1").
		WithArgs("o-1", "tok", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE files SET public_token = NULL, expires_at = NULL WHERE id = \\$1").
		WithArgs("o-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE files SET public_token = NULL").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.SetPublicToken(ctx, "o-1", "tok", exp))
	assert.NoError(t, repo.ClearPublicToken(ctx, "o-1"))
	assert.ErrorIs(t, repo.ClearPublicToken(ctx, "gone"), repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObjectPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewObjectPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM files WHERE id = ?").
		WithArgs("o-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM files WHERE bucket_id = ?").
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.Delete(ctx, "o-1"))
	assert.NoError(t, repo.DeleteByBucket(ctx, "b-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
