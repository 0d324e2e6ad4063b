// Package local provides a filesystem-backed uploader, used when no bucket is
// configured (development and offline runs). Object paths become paths under
// the configured root.
package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Uploader implements store.Uploader by copying files under a local root.
type Uploader struct {
	root string
}

// New creates a local uploader rooted at dir.
func New(dir string) *Uploader {
	return &Uploader{root: dir}
}

// Name returns the uploader identifier.
func (u *Uploader) Name() string { return "local" }

// Upload copies a local file to <root>/<objectPath>.
func (u *Uploader) Upload(ctx context.Context, localPath, objectPath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst := filepath.Join(u.root, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// UploadBytes writes raw bytes to <root>/<objectPath>.
func (u *Uploader) UploadBytes(ctx context.Context, data []byte, objectPath, contentType string) error {
	dst := filepath.Join(u.root, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// Close is a no-op for the local uploader.
func (u *Uploader) Close() error { return nil }
