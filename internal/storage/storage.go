// Package storage is the capability surface over the remote drive provider.
// A Remote is bound to one user's delegated credentials; obtain it from the
// credentials manager, never construct one directly in request code.
package storage

import (
	"context"
	"io"
)

// FolderMimeType marks a Drive file as a folder.
const FolderMimeType = "application/vnd.google-apps.folder"

// FileOptions define optional parameters for uploading files.
type FileOptions struct {
	MimeType string
}

// FileInfo describes a file created in the remote drive.
type FileInfo struct {
	ID   string
	Name string
}

// Remote is the subset of Drive operations the gateway needs.
type Remote interface {
	// CreateFolder creates a top-level folder and returns its remote ID.
	CreateFolder(ctx context.Context, name string) (string, error)
	// CreateFile streams r into a new file inside folderID.
	CreateFile(ctx context.Context, folderID, name string, r io.Reader, opt FileOptions) (FileInfo, error)
	// Open streams the content of a file. The caller must close the reader.
	Open(ctx context.Context, fileID string) (io.ReadCloser, error)
	// Delete removes a file or folder by ID.
	Delete(ctx context.Context, fileID string) error
}
