package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"drives3/internal/credentials"
	"drives3/internal/model"
	"drives3/internal/naming"
	"drives3/internal/repository"
	"drives3/internal/storage"
)

// Upload is an incoming object. Content is closed by PutObject on every path.
type Upload struct {
	Content      io.ReadCloser
	MimeType     string
	OriginalName string
}

// PutResult identifies a stored object.
type PutResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ObjectListing is a bucket's content as shown to its owner.
type ObjectListing struct {
	Bucket string         `json:"bucket"`
	Files  []model.Object `json:"files"`
}

// ObjectService defines the object use cases. Every lookup is scoped to the
// calling user.
type ObjectService interface {
	// PutObject uploads content under an obfuscated name derived from
	// requestedName (or the upload's own name) and records it. The Drive file
	// is removed again if the record cannot be saved.
	PutObject(ctx context.Context, user *model.User, bucketName, requestedName string, up Upload) (*PutResult, error)

	GetObject(ctx context.Context, user *model.User, bucketName, storedName string) (*Download, error)

	// DeleteObject removes the Drive file first; on failure the record is kept.
	DeleteObject(ctx context.Context, user *model.User, bucketName, storedName string) error

	ListObjects(ctx context.Context, user *model.User, bucketName string) (*ObjectListing, error)
}

type objectService struct {
	buckets repository.BucketRepository
	objects repository.ObjectRepository
	auth    credentials.Authorizer
	log     zerolog.Logger
	now     func() time.Time
}

func NewObjectService(buckets repository.BucketRepository, objects repository.ObjectRepository, auth credentials.Authorizer, log zerolog.Logger) ObjectService {
	return &objectService{
		buckets: buckets,
		objects: objects,
		auth:    auth,
		log:     log.With().Str("component", "object").Logger(),
		now:     time.Now,
	}
}

func (s *objectService) PutObject(ctx context.Context, user *model.User, bucketName, requestedName string, up Upload) (*PutResult, error) {
	if up.Content == nil {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}
	defer up.Content.Close()

	b, err := findBucket(ctx, s.buckets, user, bucketName)
	if err != nil {
		return nil, err
	}

	name := requestedName
	if name == "" {
		name = up.OriginalName
	}
	if name == "" {
		return nil, fmt.Errorf("%w: object name is required", ErrValidation)
	}
	original := up.OriginalName
	if original == "" {
		original = requestedName
	}
	stored := naming.Derive(name)
	mimeType := contentTypeOrDefault(up.MimeType)

	var res *PutResult
	err = withRemote(ctx, s.auth, s.log, user, func(remote storage.Remote) error {
		info, err := remote.CreateFile(ctx, b.DriveFolderID, stored, up.Content, storage.FileOptions{MimeType: mimeType})
		if err != nil {
			return upstream(ctx, s.log, "upload file", err)
		}

		obj := &model.Object{
			ID:               uuid.New().String(),
			UserID:           user.ID,
			BucketID:         b.ID,
			DriveFileID:      info.ID,
			FileName:         stored,
			OriginalFileName: original,
			MimeType:         mimeType,
			CreatedAt:        s.now().UTC(),
		}
		if _, err := s.objects.Create(ctx, obj); err != nil {
			// Rollback: delete the uploaded file from Drive
			if delErr := remote.Delete(ctx, info.ID); delErr != nil {
				s.log.Warn().Err(delErr).Str("drive_id", info.ID).Msg("rollback of drive file failed")
			}
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: object %q already exists", ErrConflict, stored)
			}
			return fmt.Errorf("db save failed: %w", err)
		}
		res = &PutResult{ID: info.ID, Name: stored}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *objectService) GetObject(ctx context.Context, user *model.User, bucketName, storedName string) (*Download, error) {
	_, obj, err := findObject(ctx, s.buckets, s.objects, user, bucketName, storedName)
	if err != nil {
		return nil, err
	}

	var body io.ReadCloser
	err = withRemote(ctx, s.auth, s.log, user, func(remote storage.Remote) error {
		rc, err := remote.Open(ctx, obj.DriveFileID)
		if err != nil {
			return upstream(ctx, s.log, "open file", err)
		}
		body = rc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Download{
		Body:        body,
		ContentType: contentTypeOrDefault(obj.MimeType),
		FileName:    obj.DisplayName(),
		Disposition: DispositionInline,
	}, nil
}

func (s *objectService) DeleteObject(ctx context.Context, user *model.User, bucketName, storedName string) error {
	_, obj, err := findObject(ctx, s.buckets, s.objects, user, bucketName, storedName)
	if err != nil {
		return err
	}

	err = withRemote(ctx, s.auth, s.log, user, func(remote storage.Remote) error {
		if err := remote.Delete(ctx, obj.DriveFileID); err != nil {
			return upstream(ctx, s.log, "delete file", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.objects.Delete(ctx, obj.ID)
}

func (s *objectService) ListObjects(ctx context.Context, user *model.User, bucketName string) (*ObjectListing, error) {
	b, err := findBucket(ctx, s.buckets, user, bucketName)
	if err != nil {
		return nil, err
	}
	files, err := s.objects.ListByBucket(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []model.Object{}
	}
	return &ObjectListing{Bucket: b.Name, Files: files}, nil
}
