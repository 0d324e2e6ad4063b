// Package gcs provides a Google Cloud Storage-backed uploader for scan
// artifacts and stage payloads.
package gcs

import (
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
)

// Config holds GCS settings.
type Config struct {
	Bucket string `yaml:"bucket"`
}

// Uploader implements store.Uploader on top of a GCS bucket.
type Uploader struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

// New creates a new GCS uploader. Uses Application Default Credentials for
// authentication.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Uploader{
		client: client,
		bucket: client.Bucket(cfg.Bucket),
	}, nil
}

// Name returns the uploader identifier.
func (u *Uploader) Name() string { return "gcs" }

// Upload copies a local file to the given object path in the bucket.
func (u *Uploader) Upload(ctx context.Context, localPath, objectPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := u.bucket.Object(objectPath).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// UploadBytes writes raw bytes to the given object path.
func (u *Uploader) UploadBytes(ctx context.Context, data []byte, objectPath, contentType string) error {
	w := u.bucket.Object(objectPath).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Close releases the GCS client resources.
func (u *Uploader) Close() error {
	return u.client.Close()
}
