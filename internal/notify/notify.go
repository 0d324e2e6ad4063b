// Package notify publishes scan lifecycle events to the next pipeline stage.
package notify

import (
	"context"
	"math/rand"
	"time"
)

// Publisher announces scan completion to downstream consumers.
type Publisher interface {
	ScanComplete(ctx context.Context, scanID, target string) error
	Close() error
}

// Retry runs fn up to attempts times with exponential backoff plus jitter.
// The last error is returned when every attempt fails.
func Retry(ctx context.Context, attempts int, base, jitter time.Duration, fn func() error) error {
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		delay := base*(1<<attempt) + time.Duration(rand.Int63n(int64(jitter)+1))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
