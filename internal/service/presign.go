package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"drives3/internal/credentials"
	"drives3/internal/model"
	"drives3/internal/naming"
	"drives3/internal/repository"
	"drives3/internal/storage"
)

// PresignTokenBytes is the entropy of a public token before hex encoding.
const PresignTokenBytes = 24

// PresignedURL is a capability URL granting anonymous read access.
type PresignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PresignService issues, revokes and honours public object tokens. An object
// has at most one token; issuing a new one replaces it.
type PresignService interface {
	IssueToken(ctx context.Context, user *model.User, bucketName, storedName, baseURL string) (*PresignedURL, error)

	// RevokeToken fails with ErrNotFound when the object has no token.
	RevokeToken(ctx context.Context, user *model.User, bucketName, storedName string) error

	// ServePublic streams an object to an anonymous caller holding its token,
	// using the owner's Drive credentials.
	ServePublic(ctx context.Context, bucketName, storedName, token string, wantsDownload bool) (*Download, error)
}

type presignService struct {
	buckets repository.BucketRepository
	objects repository.ObjectRepository
	users   repository.UserRepository
	auth    credentials.Authorizer
	ttl     time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

func NewPresignService(buckets repository.BucketRepository, objects repository.ObjectRepository, users repository.UserRepository, auth credentials.Authorizer, ttl time.Duration, log zerolog.Logger) PresignService {
	return &presignService{
		buckets: buckets,
		objects: objects,
		users:   users,
		auth:    auth,
		ttl:     ttl,
		log:     log.With().Str("component", "presign").Logger(),
		now:     time.Now,
	}
}

func (s *presignService) IssueToken(ctx context.Context, user *model.User, bucketName, storedName, baseURL string) (*PresignedURL, error) {
	_, obj, err := findObject(ctx, s.buckets, s.objects, user, bucketName, storedName)
	if err != nil {
		return nil, err
	}

	token, err := naming.RandomHex(PresignTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	expiresAt := s.now().Add(s.ttl).UTC()

	if err := s.objects.SetPublicToken(ctx, obj.ID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	return &PresignedURL{URL: publicURL(baseURL, bucketName, storedName, token), ExpiresAt: expiresAt}, nil
}

func (s *presignService) RevokeToken(ctx context.Context, user *model.User, bucketName, storedName string) error {
	_, obj, err := findObject(ctx, s.buckets, s.objects, user, bucketName, storedName)
	if err != nil {
		return err
	}
	if !obj.HasActiveToken() {
		return fmt.Errorf("%w: no active token for this file", ErrNotFound)
	}
	return s.objects.ClearPublicToken(ctx, obj.ID)
}

func (s *presignService) ServePublic(ctx context.Context, bucketName, storedName, token string, wantsDownload bool) (*Download, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	obj, err := s.objects.FindByPublicToken(ctx, bucketName, storedName, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Str("bucket", bucketName).Str("file", storedName).Msg("public token lookup failed")
			return nil, fmt.Errorf("%w: file not found or token invalid", ErrNotFound)
		}
		return nil, err
	}
	if obj.ExpiresAt != nil && s.now().After(*obj.ExpiresAt) {
		return nil, fmt.Errorf("%w: token expired", ErrForbidden)
	}

	owner, err := s.users.FindByID(ctx, obj.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: file not found or token invalid", ErrNotFound)
		}
		return nil, err
	}

	var body io.ReadCloser
	err = withRemote(ctx, s.auth, s.log, owner, func(remote storage.Remote) error {
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

	disposition := DispositionInline
	if wantsDownload {
		disposition = DispositionAttachment
	}
	return &Download{
		Body:        body,
		ContentType: contentTypeOrDefault(obj.MimeType),
		FileName:    obj.DisplayName(),
		Disposition: disposition,
	}, nil
}

func publicURL(baseURL, bucketName, storedName, token string) string {
	return strings.TrimRight(baseURL, "/") +
		"/public/" + url.PathEscape(bucketName) + "/" + url.PathEscape(storedName) +
		"?token=" + url.QueryEscape(token)
}
