package postprocess

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUploader records uploads and fails any object path containing a
// configured substring.
type mockUploader struct {
	uploads  []string
	failWhen string
}

func (m *mockUploader) Name() string { return "mock" }

func (m *mockUploader) Upload(ctx context.Context, localPath, objectPath string) error {
	if m.failWhen != "" && strings.Contains(objectPath, m.failWhen) {
		return assert.AnError
	}
	m.uploads = append(m.uploads, objectPath)
	return nil
}

func (m *mockUploader) UploadBytes(ctx context.Context, data []byte, objectPath, contentType string) error {
	return nil
}

func (m *mockUploader) Close() error { return nil }

// toolDir creates a scan output directory containing the given files.
func toolDir(t *testing.T, files ...string) (dir string, paths []string) {
	t.Helper()
	dir = t.TempDir()
	for _, name := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(name+" content"), 0o644))
		paths = append(paths, path)
	}
	return dir, paths
}

func TestDispatcher_DefaultUploadsEverythingForReview(t *testing.T) {
	up := &mockUploader{}
	d := New(up)
	dir, paths := toolDir(t, "output.stdout", "output.stderr", "extra.bin")

	err := d.Process(context.Background(), "scan-1", "sometool", dir, paths)
	require.NoError(t, err)

	assert.Len(t, up.uploads, 3)
	for _, object := range up.uploads {
		assert.True(t, strings.HasPrefix(object, "data/scan-1/recon/sometool/review/"), object)
	}
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDispatcher_DefaultKeepsDirOnUploadFailure(t *testing.T) {
	up := &mockUploader{failWhen: "output.stderr"}
	d := New(up)
	dir, paths := toolDir(t, "output.stdout", "output.stderr")

	err := d.Process(context.Background(), "scan-1", "sometool", dir, paths)
	require.Error(t, err)

	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr)
}

func TestDispatcher_MasscanDualChannel(t *testing.T) {
	up := &mockUploader{}
	d := New(up)
	dir, paths := toolDir(t, "output.stdout", "output.stderr", "masscan_scan.json")

	err := d.Process(context.Background(), "scan-1", "masscan", dir, paths)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"data/scan-1/recon/masscan/llm/masscan_scan.json",
		"data/scan-1/recon/masscan/review/masscan_scan.json",
	}, up.uploads)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDispatcher_MasscanLLMFailureBlocksCleanup(t *testing.T) {
	up := &mockUploader{failWhen: "/llm/"}
	d := New(up)
	dir, paths := toolDir(t, "masscan_scan.json")

	err := d.Process(context.Background(), "scan-1", "masscan", dir, paths)
	require.Error(t, err)

	// review upload went through, but both are required
	assert.Equal(t, []string{"data/scan-1/recon/masscan/review/masscan_scan.json"}, up.uploads)
	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr)
}

func TestDispatcher_SubfinderMissingResultBlocksCleanup(t *testing.T) {
	up := &mockUploader{}
	d := New(up)
	dir, paths := toolDir(t, "output.stdout", "output.stderr")

	err := d.Process(context.Background(), "scan-1", "subfinder", dir, paths)
	require.Error(t, err)

	assert.Empty(t, up.uploads)
	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr)
}

func TestDispatcher_NoArtifactsSkipsCleanup(t *testing.T) {
	up := &mockUploader{}
	d := New(up)
	dir := t.TempDir()

	err := d.Process(context.Background(), "scan-1", "dnsenum", dir, nil)
	require.Error(t, err)

	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr)
}

func TestDispatcher_OptionalArtifactsUploadedWhenPresent(t *testing.T) {
	up := &mockUploader{}
	d := New(up)
	dir, paths := toolDir(t, "output.stdout", "output.stderr", "dnsenum_scan.xml")

	err := d.Process(context.Background(), "scan-1", "dnsenum", dir, paths)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"data/scan-1/recon/dnsenum/review/output.stdout",
		"data/scan-1/recon/dnsenum/review/output.stderr",
		"data/scan-1/recon/dnsenum/review/dnsenum_scan.xml",
	}, up.uploads)
}

func TestDispatcher_GobusterRenamesLLMStdout(t *testing.T) {
	up := &mockUploader{}
	d := New(up)
	dir, paths := toolDir(t, "output.stdout", "gobuster_scan.txt")

	err := d.Process(context.Background(), "scan-1", "gobuster", dir, paths)
	require.NoError(t, err)

	assert.Contains(t, up.uploads, "data/scan-1/recon/gobuster/llm/gobuster_output.txt")
	assert.Contains(t, up.uploads, "data/scan-1/recon/gobuster/review/output.stdout")
	assert.Contains(t, up.uploads, "data/scan-1/recon/gobuster/review/gobuster_scan.txt")
}

func TestDispatcher_ToolNameCaseInsensitive(t *testing.T) {
	up := &mockUploader{}
	d := New(up)
	dir, paths := toolDir(t, "theharvester_scan.json")

	err := d.Process(context.Background(), "scan-1", "theHarvester", dir, paths)
	require.NoError(t, err)

	assert.Contains(t, up.uploads, "data/scan-1/recon/theHarvester/llm/theharvester_scan.json")
}
