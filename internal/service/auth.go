package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"drives3/internal/config"
	"drives3/internal/credentials"
	"drives3/internal/model"
	"drives3/internal/repository"
)

// OAuthClient is the part of *oauth2.Config the login flow uses.
type OAuthClient interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// IdentityVerifier turns a raw id_token into a verified email address.
type IdentityVerifier interface {
	Email(ctx context.Context, rawIDToken string) (string, error)
}

// AuthService signs users in with Google and resolves bearer tokens.
type AuthService interface {
	// LoginURL is the Google consent URL carrying state.
	LoginURL(state string) string

	// Callback exchanges an authorization code, upserts the user and returns
	// a fresh bearer token.
	Callback(ctx context.Context, code string) (string, error)

	// Resolve returns the user owning bearer or ErrUnauthorized.
	Resolve(ctx context.Context, bearer string) (*model.User, error)
}

type authService struct {
	users    repository.UserRepository
	oauth    OAuthClient
	identity IdentityVerifier
	secret   []byte
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, oauth OAuthClient, identity IdentityVerifier, session config.SessionConfig, log zerolog.Logger) AuthService {
	return &authService{
		users:    users,
		oauth:    oauth,
		identity: identity,
		secret:   []byte(session.Secret),
		ttl:      session.TTL,
		log:      log.With().Str("component", "auth").Logger(),
		now:      time.Now,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state, credentials.ConsentOptions...)
}

func (s *authService) Callback(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%w: missing authorization code", ErrValidation)
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.log.Warn().Err(err).Msg("authorization code exchange failed")
		return "", fmt.Errorf("%w: authorization code rejected", ErrUnauthorized)
	}
	rawIDToken, _ := tok.Extra("id_token").(string)
	if rawIDToken == "" {
		return "", fmt.Errorf("%w: no id token in response", ErrUnauthorized)
	}
	email, err := s.identity.Email(ctx, rawIDToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("id token rejected")
		return "", fmt.Errorf("%w: identity not verified", ErrUnauthorized)
	}

	bearer, err := s.issue(email)
	if err != nil {
		return "", err
	}

	// An empty refresh token keeps the stored one; Google only sends it on consent.
	u := &model.User{
		ID:                 uuid.New().String(),
		Email:              email,
		AccessToken:        bearer,
		GoogleAccessToken:  tok.AccessToken,
		GoogleRefreshToken: tok.RefreshToken,
		GoogleTokenExpiry:  tok.Expiry,
	}
	saved, err := s.users.Upsert(ctx, u)
	if err != nil {
		return "", fmt.Errorf("save user: %w", err)
	}
	s.log.Info().Str("user_id", saved.ID).Str("email", email).Msg("user signed in")
	return bearer, nil
}

func (s *authService) Resolve(ctx context.Context, bearer string) (*model.User, error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	u, err := s.users.FindByAccessToken(ctx, bearer)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
		}
		return nil, err
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(bearer, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Subject != u.Email {
		return nil, fmt.Errorf("%w: token subject mismatch", ErrUnauthorized)
	}
	return u, nil
}

// issue signs a session token. exp is omitted when ttl is zero.
func (s *authService) issue(email string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:       uuid.New().String(),
		Subject:  email,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
