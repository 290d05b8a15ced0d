package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"drives3/internal/credentials"
	"drives3/internal/model"
	"drives3/internal/repository"
	"drives3/internal/storage"
)

// withRemote runs fn with a Drive client acting as user, then stores any token
// refresh the call caused. Persistence failures are logged, never returned.
func withRemote(ctx context.Context, auth credentials.Authorizer, log zerolog.Logger, user *model.User, fn func(storage.Remote) error) error {
	remote, refreshes, err := auth.AuthorizedClient(ctx, user)
	if err != nil {
		return upstream(ctx, log, "authorize", err)
	}
	defer func() {
		if perr := auth.PersistRefreshes(ctx, user, refreshes); perr != nil {
			log.Warn().Err(perr).Str("user_id", user.ID).Msg("could not persist refreshed google token")
		}
	}()
	return fn(remote)
}

func findBucket(ctx context.Context, buckets repository.BucketRepository, user *model.User, name string) (*model.Bucket, error) {
	b, err := buckets.FindByName(ctx, user.ID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: bucket %q", ErrNotFound, name)
		}
		return nil, err
	}
	return b, nil
}

// findObject resolves an object owned by user. A bucket owned by someone else
// is indistinguishable from a missing one.
func findObject(ctx context.Context, buckets repository.BucketRepository, objects repository.ObjectRepository, user *model.User, bucketName, storedName string) (*model.Bucket, *model.Object, error) {
	b, err := findBucket(ctx, buckets, user, bucketName)
	if err != nil {
		return nil, nil, err
	}
	o, err := objects.FindByName(ctx, b.ID, user.ID, storedName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: object %q in bucket %q", ErrNotFound, storedName, bucketName)
		}
		return nil, nil, err
	}
	return b, o, nil
}
