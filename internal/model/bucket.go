package model

import "time"

// Bucket is a named container owned by one user and backed by one Drive folder.
type Bucket struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Name          string    `json:"name"`
	DriveFolderID string    `json:"drive_folder_id"`
	CreatedAt     time.Time `json:"created_at"`
}
