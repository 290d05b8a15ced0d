package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"drives3/internal/config"
	"drives3/internal/model"
	"drives3/internal/repository"
	repoMocks "drives3/internal/repository/mocks"
)

type stubIdentity struct {
	email string
	err   error
}

func (s stubIdentity) Email(context.Context, string) (string, error) {
	return s.email, s.err
}

func googleTokenServer(t *testing.T, status int, body string) *oauth2.Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8000/oauth/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://accounts.example.com/auth",
			TokenURL:  srv.URL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func newAuthService(users repository.UserRepository, oauth OAuthClient, identity IdentityVerifier, ttl time.Duration) *authService {
	return NewAuthService(users, oauth, identity, config.SessionConfig{Secret: "test-secret", TTL: ttl}, zerolog.Nop()).(*authService)
}

func TestAuthService_LoginURL(t *testing.T) {
	cfg := googleTokenServer(t, http.StatusOK, `{}`)
	svc := newAuthService(new(repoMocks.MockUserRepository), cfg, stubIdentity{}, time.Hour)

	u := svc.LoginURL("xyz")
	assert.Contains(t, u, "state=xyz")
	assert.Contains(t, u, "access_type=offline")
	assert.Contains(t, u, "prompt=consent")
}

func TestAuthService_Callback(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts user and issues a resolvable token", func(t *testing.T) {
		cfg := googleTokenServer(t, http.StatusOK, `{"access_token":"ya29.new","refresh_token":"1//new","expires_in":3600,"token_type":"Bearer","id_token":"raw.id.token"}`)
		users := new(repoMocks.MockUserRepository)
		var saved *model.User
		users.On("Upsert", ctx, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*model.User) }).
			Return(&model.User{ID: "user-a", Email: "alice@example.com"}, nil)

		svc := newAuthService(users, cfg, stubIdentity{email: "alice@example.com"}, time.Hour)
		bearer, err := svc.Callback(ctx, "auth-code")
		require.NoError(t, err)
		require.NotEmpty(t, bearer)

		require.NotNil(t, saved)
		assert.Equal(t, "alice@example.com", saved.Email)
		assert.Equal(t, bearer, saved.AccessToken)
		assert.Equal(t, "ya29.new", saved.GoogleAccessToken)
		assert.Equal(t, "1//new", saved.GoogleRefreshToken)
		assert.False(t, saved.GoogleTokenExpiry.IsZero())

		users.On("FindByAccessToken", ctx, bearer).Return(saved, nil)
		u, err := svc.Resolve(ctx, bearer)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("missing code", func(t *testing.T) {
		svc := newAuthService(new(repoMocks.MockUserRepository), googleTokenServer(t, http.StatusOK, `{}`), stubIdentity{}, time.Hour)
		_, err := svc.Callback(ctx, "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("exchange rejected", func(t *testing.T) {
		cfg := googleTokenServer(t, http.StatusBadRequest, `{"error":"invalid_grant"}`)
		svc := newAuthService(new(repoMocks.MockUserRepository), cfg, stubIdentity{}, time.Hour)
		_, err := svc.Callback(ctx, "stale-code")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("no id token", func(t *testing.T) {
		cfg := googleTokenServer(t, http.StatusOK, `{"access_token":"ya29.new","token_type":"Bearer"}`)
		svc := newAuthService(new(repoMocks.MockUserRepository), cfg, stubIdentity{email: "alice@example.com"}, time.Hour)
		_, err := svc.Callback(ctx, "auth-code")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("identity not verified", func(t *testing.T) {
		cfg := googleTokenServer(t, http.StatusOK, `{"access_token":"ya29.new","token_type":"Bearer","id_token":"forged"}`)
		svc := newAuthService(new(repoMocks.MockUserRepository), cfg, stubIdentity{err: errors.New("bad signature")}, time.Hour)
		_, err := svc.Callback(ctx, "auth-code")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("upsert failure", func(t *testing.T) {
		cfg := googleTokenServer(t, http.StatusOK, `{"access_token":"ya29.new","token_type":"Bearer","id_token":"raw"}`)
		users := new(repoMocks.MockUserRepository)
		users.On("Upsert", ctx, mock.Anything).Return(nil, errors.New("db down"))
		svc := newAuthService(users, cfg, stubIdentity{email: "alice@example.com"}, time.Hour)

		_, err := svc.Callback(ctx, "auth-code")
		assert.EqualError(t, err, "save user: db down")
	})
}

func TestAuthService_Resolve(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	user := &model.User{ID: "user-a", Email: "alice@example.com"}

	issuer := newAuthService(nil, nil, nil, time.Hour)
	issuer.now = func() time.Time { return now }
	valid, err := issuer.issue(user.Email)
	require.NoError(t, err)

	forever := newAuthService(nil, nil, nil, 0)
	forever.now = func() time.Time { return now }
	noExpiry, err := forever.issue(user.Email)
	require.NoError(t, err)

	otherSecret := NewAuthService(nil, nil, nil, config.SessionConfig{Secret: "other", TTL: time.Hour}, zerolog.Nop()).(*authService)
	otherSecret.now = func() time.Time { return now }
	forged, err := otherSecret.issue(user.Email)
	require.NoError(t, err)

	mismatched, err := issuer.issue("mallory@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		bearer  string
		at      time.Time
		stored  *model.User
		lookErr error
		wantErr error
	}{
		{name: "valid", bearer: valid, at: now.Add(time.Minute), stored: user},
		{name: "missing", bearer: "  ", at: now, wantErr: ErrUnauthorized},
		{name: "unknown token", bearer: valid, at: now, lookErr: repository.ErrNotFound, wantErr: ErrUnauthorized},
		{name: "expired", bearer: valid, at: now.Add(2 * time.Hour), stored: user, wantErr: ErrUnauthorized},
		{name: "no expiry never lapses", bearer: noExpiry, at: now.Add(10 * 365 * 24 * time.Hour), stored: user},
		{name: "wrong signature", bearer: forged, at: now, stored: user, wantErr: ErrUnauthorized},
		{name: "subject mismatch", bearer: mismatched, at: now, stored: user, wantErr: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			if tt.stored != nil || tt.lookErr != nil {
				users.On("FindByAccessToken", ctx, tt.bearer).Return(tt.stored, tt.lookErr)
			}
			svc := newAuthService(users, nil, nil, time.Hour)
			svc.now = func() time.Time { return tt.at }

			u, err := svc.Resolve(ctx, tt.bearer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, u.ID)
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_IssuedTokenClaims(t *testing.T) {
	svc := newAuthService(nil, nil, nil, 0)
	raw, err := svc.issue("alice@example.com")
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Nil(t, claims.ExpiresAt)
	assert.NotEmpty(t, claims.ID)
}
