package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

var ErrUnverifiedEmail = errors.New("id token carries no verified email")

// IdentityVerifier extracts the account email from a Google id_token after
// checking its signature, issuer, audience and expiry.
type IdentityVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleIdentityVerifier discovers Google's signing keys. It performs a
// network call.
func NewGoogleIdentityVerifier(ctx context.Context, clientID string) (*IdentityVerifier, error) {
	provider, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}
	return NewIdentityVerifier(provider.Verifier(&oidc.Config{ClientID: clientID})), nil
}

func NewIdentityVerifier(v *oidc.IDTokenVerifier) *IdentityVerifier {
	return &IdentityVerifier{verifier: v}
}

func (v *IdentityVerifier) Email(ctx context.Context, rawIDToken string) (string, error) {
	tok, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified *bool  `json:"email_verified"`
	}
	if err := tok.Claims(&claims); err != nil {
		return "", fmt.Errorf("decode id token claims: %w", err)
	}
	if claims.Email == "" || (claims.EmailVerified != nil && !*claims.EmailVerified) {
		return "", ErrUnverifiedEmail
	}
	return claims.Email, nil
}
