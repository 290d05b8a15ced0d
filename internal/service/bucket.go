package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"drives3/internal/credentials"
	"drives3/internal/model"
	"drives3/internal/repository"
	"drives3/internal/storage"
)

// RemoteFailure records one Drive deletion that did not succeed.
type RemoteFailure struct {
	Kind    string `json:"kind"` // "file" or "folder"
	DriveID string `json:"-"`
	Name    string `json:"name"`
	Error   string `json:"error"` // fixed reason; provider detail is only logged
}

// DeletionReport is the outcome of a cascading bucket delete. Records are
// always removed; Failures lists the Drive items left behind.
type DeletionReport struct {
	Bucket        string          `json:"bucket"`
	FilesDeleted  int             `json:"files_deleted"`
	FolderDeleted bool            `json:"folder_deleted"`
	Failures      []RemoteFailure `json:"failures,omitempty"`
}

// Complete reports whether every remote item was removed.
func (r *DeletionReport) Complete() bool {
	return len(r.Failures) == 0
}

// Reasons recorded in RemoteFailure.Error.
const (
	reasonRemoteDelete = "remote delete failed"
	reasonNoClient     = "drive client unavailable"
)

// BucketService defines the bucket use cases.
type BucketService interface {
	// CreateBucket creates a Drive folder and records it. Rolls back the folder
	// if the record cannot be saved.
	CreateBucket(ctx context.Context, user *model.User, name string) (*model.Bucket, error)

	// DeleteBucket removes every file, the folder and all records. Remote
	// failures are reported, not returned.
	DeleteBucket(ctx context.Context, user *model.User, name string) (*DeletionReport, error)

	ListBuckets(ctx context.Context, user *model.User) ([]model.Bucket, error)
}

type bucketService struct {
	buckets repository.BucketRepository
	objects repository.ObjectRepository
	auth    credentials.Authorizer
	log     zerolog.Logger
	now     func() time.Time
}

func NewBucketService(buckets repository.BucketRepository, objects repository.ObjectRepository, auth credentials.Authorizer, log zerolog.Logger) BucketService {
	return &bucketService{
		buckets: buckets,
		objects: objects,
		auth:    auth,
		log:     log.With().Str("component", "bucket").Logger(),
		now:     time.Now,
	}
}

func (s *bucketService) CreateBucket(ctx context.Context, user *model.User, name string) (*model.Bucket, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: bucket name is required", ErrValidation)
	}

	_, err := s.buckets.FindByName(ctx, user.ID, name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: bucket %q already exists", ErrConflict, name)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	var stored *model.Bucket
	err = withRemote(ctx, s.auth, s.log, user, func(remote storage.Remote) error {
		folderID, err := remote.CreateFolder(ctx, name)
		if err != nil {
			return upstream(ctx, s.log, "create folder", err)
		}

		b := &model.Bucket{
			ID:            uuid.New().String(),
			UserID:        user.ID,
			Name:          name,
			DriveFolderID: folderID,
			CreatedAt:     s.now().UTC(),
		}
		stored, err = s.buckets.Create(ctx, b)
		if err != nil {
			// Rollback: the folder must not outlive a failed insert.
			if delErr := remote.Delete(ctx, folderID); delErr != nil {
				s.log.Warn().Err(delErr).Str("drive_id", folderID).Msg("rollback of drive folder failed")
			}
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: bucket %q already exists", ErrConflict, name)
			}
			return fmt.Errorf("db save failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *bucketService) DeleteBucket(ctx context.Context, user *model.User, name string) (*DeletionReport, error) {
	b, err := findBucket(ctx, s.buckets, user, name)
	if err != nil {
		return nil, err
	}
	files, err := s.objects.ListByBucket(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	report := &DeletionReport{Bucket: b.Name}
	err = withRemote(ctx, s.auth, s.log, user, func(remote storage.Remote) error {
		for _, f := range files {
			if err := remote.Delete(ctx, f.DriveFileID); err != nil {
				s.log.Warn().Err(err).Str("bucket", b.Name).Str("file", f.FileName).Str("drive_id", f.DriveFileID).Msg("failed to delete file from drive")
				report.Failures = append(report.Failures, RemoteFailure{Kind: "file", DriveID: f.DriveFileID, Name: f.FileName, Error: reasonRemoteDelete})
				continue
			}
			report.FilesDeleted++
		}
		if err := remote.Delete(ctx, b.DriveFolderID); err != nil {
			s.log.Warn().Err(err).Str("bucket", b.Name).Str("drive_id", b.DriveFolderID).Msg("failed to delete bucket folder from drive")
			report.Failures = append(report.Failures, RemoteFailure{Kind: "folder", DriveID: b.DriveFolderID, Name: b.Name, Error: reasonRemoteDelete})
			return nil
		}
		report.FolderDeleted = true
		return nil
	})
	if err != nil {
		// No client at all: every remote item is left behind, records still go.
		s.log.Warn().Err(err).Str("bucket", b.Name).Msg("drive cleanup skipped")
		for _, f := range files {
			report.Failures = append(report.Failures, RemoteFailure{Kind: "file", DriveID: f.DriveFileID, Name: f.FileName, Error: reasonNoClient})
		}
		report.Failures = append(report.Failures, RemoteFailure{Kind: "folder", DriveID: b.DriveFolderID, Name: b.Name, Error: reasonNoClient})
	}

	if err := s.objects.DeleteByBucket(ctx, b.ID); err != nil {
		return nil, fmt.Errorf("delete file records: %w", err)
	}
	if err := s.buckets.Delete(ctx, b.ID); err != nil {
		return nil, fmt.Errorf("delete bucket record: %w", err)
	}
	return report, nil
}

func (s *bucketService) ListBuckets(ctx context.Context, user *model.User) ([]model.Bucket, error) {
	return s.buckets.ListByUser(ctx, user.ID)
}
