package credentials

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"drives3/internal/model"
	"drives3/internal/repository"
	"drives3/internal/storage"
)

// RemoteFactory builds a storage client over an authorized HTTP client.
type RemoteFactory func(ctx context.Context, client *http.Client) (storage.Remote, error)

// Authorizer hands out storage clients acting on behalf of a user.
type Authorizer interface {
	// AuthorizedClient returns a Remote bound to the user's Google tokens and
	// a channel carrying token refreshes performed while using it.
	AuthorizedClient(ctx context.Context, user *model.User) (storage.Remote, <-chan Refresh, error)
	// PersistRefreshes drains pending refreshes without blocking and stores
	// each one.
	PersistRefreshes(ctx context.Context, user *model.User, refreshes <-chan Refresh) error
}

// Manager is the Authorizer backed by the users table.
type Manager struct {
	oauth     *oauth2.Config
	users     repository.UserRepository
	newRemote RemoteFactory
	transport http.RoundTripper
	log       zerolog.Logger
}

// NewManager returns a Manager whose outgoing Google calls, token refreshes
// included, are traced.
func NewManager(oauth *oauth2.Config, users repository.UserRepository, newRemote RemoteFactory, log zerolog.Logger) *Manager {
	return &Manager{
		oauth:     oauth,
		users:     users,
		newRemote: newRemote,
		transport: otelhttp.NewTransport(http.DefaultTransport),
		log:       log,
	}
}

func (m *Manager) AuthorizedClient(ctx context.Context, user *model.User) (storage.Remote, <-chan Refresh, error) {
	if user == nil || user.GoogleAccessToken == "" {
		return nil, nil, fmt.Errorf("user has no google credentials")
	}

	seed := &oauth2.Token{
		AccessToken:  user.GoogleAccessToken,
		RefreshToken: user.GoogleRefreshToken,
		TokenType:    "Bearer",
		Expiry:       user.GoogleTokenExpiry,
	}
	// Without a known expiry the token would be trusted forever; force one
	// refresh so the real expiry gets recorded.
	if seed.Expiry.IsZero() && seed.RefreshToken != "" {
		seed.Expiry = time.Unix(1, 0)
	}

	if _, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); !ok {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: m.transport})
	}

	src := newNotifyingSource(m.oauth.TokenSource(ctx, seed), seed)
	client := oauth2.NewClient(ctx, src)

	remote, err := m.newRemote(ctx, client)
	if err != nil {
		return nil, nil, fmt.Errorf("build drive client: %w", err)
	}
	return remote, src.ch, nil
}

func (m *Manager) PersistRefreshes(ctx context.Context, user *model.User, refreshes <-chan Refresh) error {
	for {
		select {
		case ev, ok := <-refreshes:
			if !ok {
				return nil
			}
			if err := m.users.UpdateGoogleTokens(ctx, user.ID, ev.AccessToken, ev.RefreshToken, ev.Expiry); err != nil {
				return fmt.Errorf("persist refreshed token: %w", err)
			}
			user.GoogleAccessToken = ev.AccessToken
			user.GoogleTokenExpiry = ev.Expiry
			if ev.RefreshToken != "" {
				user.GoogleRefreshToken = ev.RefreshToken
			}
			m.log.Info().
				Str("event", "google_token_refreshed").
				Str("user_id", user.ID).
				Bool("refresh_token_rotated", ev.RefreshToken != "").
				Msg("refreshed and saved google access token")
		default:
			return nil
		}
	}
}
