package model

import "time"

// User is an account that signed in through Google.
// AccessToken authenticates calls to this API; the Google pair is the delegated
// credential used against Drive on the user's behalf. None of them is serialized.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	AccessToken        string    `json:"-"`
	GoogleAccessToken  string    `json:"-"`
	GoogleRefreshToken string    `json:"-"`
	GoogleTokenExpiry  time.Time `json:"-"` // zero when unknown
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
