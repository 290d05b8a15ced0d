package credentials

import (
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"drives3/internal/config"
)

// GoogleIssuer is the OIDC issuer of Google accounts.
const GoogleIssuer = "https://accounts.google.com"

// Scopes requested on the consent screen. drive.file limits access to files
// this application created.
var Scopes = []string{drive.DriveFileScope, oidc.ScopeOpenID, "email", "profile"}

// ConsentOptions make Google return a refresh token on every consent, not
// only the first one.
var ConsentOptions = []oauth2.AuthCodeOption{oauth2.AccessTypeOffline, oauth2.ApprovalForce}

func GoogleOAuthConfig(c config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}
