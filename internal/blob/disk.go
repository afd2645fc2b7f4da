package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// DiskStore writes blobs to a local directory. The server serves that
// directory at /uploads/, so the returned URL is a relative path the client
// resolves against the API host — same contract the app has always had.
type DiskStore struct {
	dir string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates the upload directory if needed and returns a store
// writing into it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("blob: creating upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory the store writes into, for the static file
// route.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the blob under an xid-generated name. xid names are unique and
// creation-time sortable, so concurrent uploads never collide and the
// directory lists in upload order.
func (s *DiskStore) Save(_ context.Context, ext, _ string, r io.Reader) (string, error) {
	name := xid.New().String() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("blob: creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("blob: writing file: %w", err)
	}

	// Flush to disk before acknowledging.
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("blob: syncing file: %w", err)
	}

	return "/uploads/" + name, nil
}
