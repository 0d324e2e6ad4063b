package postprocess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reconvoy/reconvoy/internal/store"
)

// Dispatcher routes artifacts to upload channels per tool policy. The policy
// map is populated at construction and read-only afterwards.
type Dispatcher struct {
	uploader store.Uploader
	policies map[string]Policy
}

// New creates a dispatcher that uploads through the given uploader.
func New(uploader store.Uploader) *Dispatcher {
	return &Dispatcher{
		uploader: uploader,
		policies: policies(),
	}
}

// Process uploads the tool's artifacts per its policy and removes the output
// directory when every required upload went through. A non-nil error means
// cleanup was skipped and the directory was left intact for inspection; it
// never changes the tool's already-decided success status.
func (d *Dispatcher) Process(ctx context.Context, scanID, toolName, outputDir string, artifacts []string) error {
	policy, ok := d.policies[strings.ToLower(toolName)]
	if !ok {
		return d.processDefault(ctx, scanID, toolName, outputDir, artifacts)
	}

	attempted, failed := 0, 0
	for _, u := range policy.Uploads {
		src := filepath.Join(outputDir, u.File)
		if _, err := os.Stat(src); err != nil {
			if u.Required {
				attempted++
				failed++
			}
			continue
		}
		name := u.As
		if name == "" {
			name = u.File
		}
		attempted++
		object := store.ObjectPath(scanID, toolName, u.Channel, name)
		if err := d.uploader.Upload(ctx, src, object); err != nil {
			failed++
		}
	}

	// No artifacts at all is treated as a failure to be safe: keep the
	// directory around rather than silently losing whatever happened.
	if attempted == 0 {
		return fmt.Errorf("no artifacts found for %s, keeping %s", toolName, outputDir)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed for %s, keeping %s", failed, attempted, toolName, outputDir)
	}
	return os.RemoveAll(outputDir)
}

// processDefault uploads every existing artifact to the review channel and
// cleans up when all uploads succeeded.
func (d *Dispatcher) processDefault(ctx context.Context, scanID, toolName, outputDir string, artifacts []string) error {
	failed := 0
	for _, path := range artifacts {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		object := store.ObjectPath(scanID, toolName, store.ChannelReview, filepath.Base(path))
		if err := d.uploader.Upload(ctx, path, object); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d uploads failed for %s, keeping %s", failed, toolName, outputDir)
	}
	return os.RemoveAll(outputDir)
}
