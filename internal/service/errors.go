package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"drives3/internal/logging"
)

// Error kinds surfaced to the HTTP layer. Wrap them with %w; handlers match
// with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUpstream     = errors.New("remote storage error")
)

// upstream logs the provider error and hides it behind ErrUpstream.
func upstream(ctx context.Context, log zerolog.Logger, op string, err error) error {
	log.Error().Err(err).Str("op", op).Str("request_id", logging.RequestID(ctx)).Msg("drive call failed")
	return fmt.Errorf("%w: %s failed", ErrUpstream, op)
}
