package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// googleDrive implements Remote on top of the Drive v3 API.
// It is safe for concurrent use by multiple goroutines.
type googleDrive struct {
	svc     *drive.Service
	metrics *Metrics
	tracer  trace.Tracer
}

// NewGoogleDrive builds a Remote that authorizes every call through client.
// client is expected to carry the user's OAuth token source. Extra options
// (e.g. option.WithEndpoint in tests) are appended.
func NewGoogleDrive(ctx context.Context, client *http.Client, m *Metrics, opts ...option.ClientOption) (Remote, error) {
	if client == nil {
		return nil, fmt.Errorf("drive http client is required")
	}
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &googleDrive{
		svc:     svc,
		metrics: m,
		tracer:  otel.Tracer("drives3/internal/storage"),
	}, nil
}

func (g *googleDrive) CreateFolder(ctx context.Context, name string) (string, error) {
	var id string
	err := g.observe(ctx, "create_folder", func(ctx context.Context) error {
		f, err := g.svc.Files.Create(&drive.File{
			Name:     name,
			MimeType: FolderMimeType,
		}).Fields("id").Context(ctx).Do()
		if err != nil {
			return err
		}
		id = f.Id
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}
	return id, nil
}

func (g *googleDrive) CreateFile(ctx context.Context, folderID, name string, r io.Reader, opt FileOptions) (FileInfo, error) {
	var info FileInfo
	err := g.observe(ctx, "create_file", func(ctx context.Context) error {
		meta := &drive.File{Name: name}
		if folderID != "" {
			meta.Parents = []string{folderID}
		}
		call := g.svc.Files.Create(meta).Fields("id", "name").Context(ctx)
		if opt.MimeType != "" {
			call = call.Media(r, googleapi.ContentType(opt.MimeType))
		} else {
			call = call.Media(r)
		}
		f, err := call.Do()
		if err != nil {
			return err
		}
		info = FileInfo{ID: f.Id, Name: f.Name}
		return nil
	})
	if err != nil {
		return FileInfo{}, fmt.Errorf("create file %q: %w", name, err)
	}
	return info, nil
}

// Open downloads file content; the body is streamed, not buffered.
func (g *googleDrive) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	var body io.ReadCloser
	err := g.observe(ctx, "download", func(ctx context.Context) error {
		resp, err := g.svc.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return err
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	return body, nil
}

func (g *googleDrive) Delete(ctx context.Context, fileID string) error {
	err := g.observe(ctx, "delete", func(ctx context.Context) error {
		return g.svc.Files.Delete(fileID).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", fileID, err)
	}
	return nil
}

// observe wraps a Drive call in a span and records its outcome.
func (g *googleDrive) observe(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := g.tracer.Start(ctx, "drive."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	g.metrics.observe(op, err, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "drive call failed")
		if gerr, ok := err.(*googleapi.Error); ok {
			span.SetAttributes(attribute.Int("drive.status_code", gerr.Code))
		}
	}
	return err
}
