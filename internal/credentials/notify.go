package credentials

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Refresh is emitted when the token source obtains a new access token.
// RefreshToken is empty unless Google rotated it.
type Refresh struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// notifyingSource reports token changes on ch. The channel holds at most one
// pending event; a newer event replaces an unread one and inherits its
// rotated refresh token.
type notifyingSource struct {
	mu          sync.Mutex
	src         oauth2.TokenSource
	lastAccess  string
	lastRefresh string
	ch          chan Refresh
}

func newNotifyingSource(src oauth2.TokenSource, seed *oauth2.Token) *notifyingSource {
	return &notifyingSource{
		src:         src,
		lastAccess:  seed.AccessToken,
		lastRefresh: seed.RefreshToken,
		ch:          make(chan Refresh, 1),
	}
}

func (s *notifyingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.AccessToken == s.lastAccess {
		return tok, nil
	}
	ev := Refresh{AccessToken: tok.AccessToken, Expiry: tok.Expiry}
	if tok.RefreshToken != "" && tok.RefreshToken != s.lastRefresh {
		ev.RefreshToken = tok.RefreshToken
		s.lastRefresh = tok.RefreshToken
	}
	s.lastAccess = tok.AccessToken

	// s is the only sender and holds mu, so after the drain the send cannot block.
	select {
	case prev := <-s.ch:
		if ev.RefreshToken == "" {
			ev.RefreshToken = prev.RefreshToken
		}
	default:
	}
	s.ch <- ev
	return tok, nil
}
