package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconvoy/reconvoy/pkg/types"
)

const reconNGTemplate = `workspaces create {{ workspace }}
db insert domains {{ domain }}
modules load reporting/html
options set FILENAME {{ output_file }}
run
exit
`

func writeTemplate(t *testing.T, paths Paths) {
	t.Helper()
	require.NoError(t, os.WriteFile(paths.ReconNGTemplate, []byte(reconNGTemplate), 0o644))
}

func TestReconNG_RendersScript(t *testing.T) {
	paths := testPaths(t)
	writeTemplate(t, paths)
	b := &builders{paths: paths}

	cmd, err := b.reconNG("example.com", nil, "scan-1", "recon-ng")
	require.NoError(t, err)

	scriptPath := filepath.Join(paths.OutputsRoot, "scan-1", "recon-ng", "workflow.rc")
	assert.Equal(t, []string{"recon-ng", "-r", scriptPath}, cmd)

	script, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	assert.Contains(t, string(script), "workspaces create example_com_scan-1")
	assert.Contains(t, string(script), "db insert domains example.com")
	assert.Contains(t, string(script), filepath.Join(paths.OutputsRoot, "scan-1", "recon-ng", "report.html"))
	assert.NotContains(t, string(script), "{{")
}

func TestReconNG_WorkspaceOverride(t *testing.T) {
	paths := testPaths(t)
	writeTemplate(t, paths)
	b := &builders{paths: paths}

	_, err := b.reconNG("example.com", []types.Param{
		{Flag: "--workspace", Value: "custom", Set: true},
	}, "scan-1", "recon-ng")
	require.NoError(t, err)

	script, err := os.ReadFile(filepath.Join(paths.OutputsRoot, "scan-1", "recon-ng", "workflow.rc"))
	require.NoError(t, err)
	assert.Contains(t, string(script), "workspaces create custom")
}

func TestReconNG_TemplateMissing(t *testing.T) {
	paths := testPaths(t)
	b := &builders{paths: paths}

	_, err := b.reconNG("example.com", nil, "scan-1", "recon-ng")
	assert.ErrorIs(t, err, ErrTemplateMissing)
}

func TestReconNG_WorkspaceDeterministic(t *testing.T) {
	paths := testPaths(t)
	writeTemplate(t, paths)
	b := &builders{paths: paths}

	first, err := b.reconNG("example.com", nil, "scan-1", "recon-ng")
	require.NoError(t, err)
	second, err := b.reconNG("example.com", nil, "scan-1", "recon-ng")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
