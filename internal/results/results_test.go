package results

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconvoy/reconvoy/pkg/types"
)

type memStore struct {
	saved  int
	err    error
	closed bool
}

func (m *memStore) Name() string { return "mem" }

func (m *memStore) SaveScan(ctx context.Context, result *types.ScanResult) error {
	if m.err != nil {
		return m.err
	}
	m.saved++
	return nil
}

func (m *memStore) Close() error {
	m.closed = true
	return nil
}

func sampleResult() *types.ScanResult {
	return &types.ScanResult{
		ScanID: "scan-1",
		Target: "example.com",
		Status: types.StatusSuccess,
		Results: []types.ToolResult{
			{ToolName: "nmap", ReturnCode: 0, Success: true, Command: []string{"nmap", "example.com"}},
		},
	}
}

func TestFileStore_SaveScan(t *testing.T) {
	root := t.TempDir()
	s := NewFileStore(root)
	require.NoError(t, s.SaveScan(context.Background(), sampleResult()))

	data, err := os.ReadFile(filepath.Join(root, "scan-1", "final_results.json"))
	require.NoError(t, err)

	var got types.ScanResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "scan-1", got.ScanID)
	assert.Equal(t, "example.com", got.Target)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "nmap", got.Results[0].ToolName)
}

func TestMultiStore_Fanout(t *testing.T) {
	a, b := &memStore{}, &memStore{}
	m := NewMultiStore(a, b)

	require.NoError(t, m.SaveScan(context.Background(), sampleResult()))
	assert.Equal(t, 1, a.saved)
	assert.Equal(t, 1, b.saved)

	require.NoError(t, m.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestMultiStore_StopsOnError(t *testing.T) {
	a := &memStore{err: assert.AnError}
	b := &memStore{}
	m := NewMultiStore(a, b)

	require.Error(t, m.SaveScan(context.Background(), sampleResult()))
	assert.Equal(t, 0, b.saved)
}
