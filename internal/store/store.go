// Package store abstracts the object storage destination for scan artifacts.
package store

import (
	"context"
	"fmt"
)

// Channel is the upload destination class for an artifact.
type Channel string

const (
	// ChannelLLM holds machine-consumable extracts.
	ChannelLLM Channel = "llm"
	// ChannelReview holds human-facing raw output.
	ChannelReview Channel = "review"
)

// Uploader sends local artifacts to object storage.
type Uploader interface {
	Name() string
	Upload(ctx context.Context, localPath, objectPath string) error
	UploadBytes(ctx context.Context, data []byte, objectPath, contentType string) error
	Close() error
}

// ObjectPath returns the storage path for one scan artifact.
func ObjectPath(scanID, toolName string, channel Channel, filename string) string {
	return fmt.Sprintf("data/%s/recon/%s/%s/%s", scanID, toolName, channel, filename)
}

// PayloadPath returns the storage path for the next-stage tool payload.
func PayloadPath(scanID string) string {
	return fmt.Sprintf("data/%s/vulnr-payload.json", scanID)
}
