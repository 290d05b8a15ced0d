package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drives3/internal/model"
	"drives3/internal/repository"
)

var bucketRowColumns = []string{"id", "user_id", "name", "drive_folder_id", "created_at"}

func TestBucketPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBucketPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	b := &model.Bucket{ID: "b-1", UserID: "user-1", Name: "photos", DriveFolderID: "folder-1", CreatedAt: now}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO buckets").
			WithArgs(b.ID, b.UserID, b.Name, b.DriveFolderID, b.CreatedAt).
			WillReturnRows(sqlmock.NewRows(bucketRowColumns).AddRow(b.ID, b.UserID, b.Name, b.DriveFolderID, b.CreatedAt))

		got, err := repo.Create(ctx, b)

		assert.NoError(t, err)
		assert.Equal(t, "folder-1", got.DriveFolderID)
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO buckets").
			WithArgs(b.ID, b.UserID, b.Name, b.DriveFolderID, b.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "buckets_user_id_name_key"})

		got, err := repo.Create(ctx, b)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBucketPostgres_FindByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBucketPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM buckets WHERE user_id = \\$1 AND name = \\$2").
			WithArgs("user-1", "photos").
			WillReturnRows(sqlmock.NewRows(bucketRowColumns).AddRow("b-1", "user-1", "photos", "folder-1", time.Now()))

		b, err := repo.FindByName(ctx, "user-1", "photos")

		assert.NoError(t, err)
		assert.Equal(t, "b-1", b.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM buckets WHERE user_id = \\$1 AND name = \\$2").
			WithArgs("user-2", "photos").
			WillReturnError(sql.ErrNoRows)

		b, err := repo.FindByName(ctx, "user-2", "photos")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, b)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBucketPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(bucketRowColumns).
		AddRow("b-1", "user-1", "photos", "folder-1", time.Now()).
		AddRow("b-2", "user-1", "docs", "folder-2", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM buckets WHERE user_id = ?").
		WithArgs("user-1").
		WillReturnRows(rows)

	got, err := NewBucketPostgres(db).ListByUser(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBucketPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM buckets WHERE id = ?").
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewBucketPostgres(db).Delete(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
