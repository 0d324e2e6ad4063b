// Package results persists completed scan results to one or more backends.
package results

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// Store persists scan results.
type Store interface {
	Name() string
	SaveScan(ctx context.Context, result *types.ScanResult) error
	Close() error
}

// MultiStore wraps multiple stores.
type MultiStore struct {
	stores []Store
}

// NewMultiStore creates a store that writes to multiple backends.
func NewMultiStore(stores ...Store) *MultiStore {
	return &MultiStore{stores: stores}
}

func (m *MultiStore) Name() string { return "multi" }

func (m *MultiStore) SaveScan(ctx context.Context, result *types.ScanResult) error {
	for _, s := range m.stores {
		if err := s.SaveScan(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiStore) Close() error {
	for _, s := range m.stores {
		s.Close()
	}
	return nil
}

// FileStore writes final_results.json under the scan's outputs directory.
type FileStore struct {
	root string
}

// NewFileStore creates a file-backed result store rooted at the outputs dir.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) SaveScan(ctx context.Context, result *types.ScanResult) error {
	dir := filepath.Join(s.root, result.ScanID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "final_results.json"), data, 0o644)
}

func (s *FileStore) Close() error { return nil }
