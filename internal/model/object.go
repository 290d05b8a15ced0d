package model

import "time"

// Object is a stored file inside a bucket (persisted in the files table).
// FileName is the obfuscated stored name used for lookups; OriginalFileName is
// what clients see. PublicToken and ExpiresAt are either both set or both nil.
type Object struct {
	ID               string     `json:"id"`
	UserID           string     `json:"-"`
	BucketID         string     `json:"-"`
	DriveFileID      string     `json:"drive_file_id"`
	FileName         string     `json:"file_name"`
	OriginalFileName string     `json:"original_file_name"`
	MimeType         string     `json:"mime_type"`
	PublicToken      *string    `json:"public_token,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// HasActiveToken reports whether a presign token is set, regardless of expiry.
func (o *Object) HasActiveToken() bool {
	return o.PublicToken != nil && *o.PublicToken != ""
}

// DisplayName returns the name shown to clients.
func (o *Object) DisplayName() string {
	if o.OriginalFileName != "" {
		return o.OriginalFileName
	}
	return o.FileName
}
