// Package blob stores uploaded recipe images. The app treats the store as
// opaque: it hands over bytes and gets back a URL the client can put in a
// recipe's imageUrl field.
//
// Two backends exist: local disk (the default — files land under the upload
// directory and are served by the app itself at /uploads/), and an
// S3-compatible bucket for deployments where the process's filesystem is
// ephemeral.
package blob

import (
	"context"
	"io"
)

// Store saves image blobs and returns their public URL.
type Store interface {
	// Save writes the blob and returns the URL it is reachable at. ext is
	// the file extension including the dot (".png"); contentType is the
	// MIME type reported by the upload.
	Save(ctx context.Context, ext, contentType string, r io.Reader) (string, error)
}
