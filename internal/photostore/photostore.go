package photostore

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("photo not found")

// FallbackMIME is the type of stored files that are not a recognized image.
const FallbackMIME = "application/octet-stream"

// PhotoStore keeps uploaded image bytes. Save always picks a fresh,
// server-generated filename that differs from originalName.
type PhotoStore interface {
	Save(ctx context.Context, originalName, mimeType string, r io.Reader) (filename string, err error)
	Open(ctx context.Context, filename string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, filename string) error
}
