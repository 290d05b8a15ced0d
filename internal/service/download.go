package service

import (
	"io"
	"mime"
)

const (
	DispositionInline     = "inline"
	DispositionAttachment = "attachment"
)

// Download is an open object stream. The caller must close Body.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	FileName    string
	Disposition string
}

// ContentDisposition renders the Content-Disposition header value. Non-ASCII
// names are emitted in RFC 2231 form.
func (d *Download) ContentDisposition() string {
	if v := mime.FormatMediaType(d.Disposition, map[string]string{"filename": d.FileName}); v != "" {
		return v
	}
	return d.Disposition
}

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}
