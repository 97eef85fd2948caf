// Package storage abstracts the media blob store. Uploads are gated by
// size and content type before any bytes leave the service.
package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
)

const (
	// MaxImageSize caps image uploads at 2 MB.
	MaxImageSize = 2 << 20
	// MaxVideoSize caps video uploads at 1 GB.
	MaxVideoSize = 1 << 30
)

var (
	// ErrPayloadTooLarge means the upload exceeded the size cap for its kind.
	ErrPayloadTooLarge = errors.New("payload exceeds size limit")
	// ErrUnsupportedMedia means the payload is not of the expected media kind.
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// Blob is a stored media object. PublicID is the handle for removal.
type Blob struct {
	URL      string
	PublicID string
}

// MediaStore stores and removes media blobs. Remove calls are best-effort
// from the caller's perspective; a failed removal only leaks a blob.
type MediaStore interface {
	UploadImage(ctx context.Context, r io.Reader, size int64) (*Blob, error)
	UploadVideo(ctx context.Context, r io.Reader, size int64) (*Blob, error)
	RemoveImage(ctx context.Context, publicID string) error
	RemoveVideo(ctx context.Context, publicID string) error
}

// gateMedia enforces the size cap and sniffs the content type, returning
// a reader that replays the sniffed prefix.
func gateMedia(r io.Reader, size, maxSize int64, wantPrefix string) (io.Reader, error) {
	if size > maxSize {
		return nil, ErrPayloadTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, wantPrefix) {
		return nil, ErrUnsupportedMedia
	}

	return io.MultiReader(strings.NewReader(string(head)), r), nil
}
