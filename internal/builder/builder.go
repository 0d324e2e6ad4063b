package builder

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// builders carries the shared paths into each per-tool builder.
type builders struct {
	paths Paths
}

// outputDir creates (idempotently) and returns the tool's output directory,
// <outputs-root>/<scan_id>/<tool_name>/.
func (b *builders) outputDir(scanID, toolName string) (string, error) {
	dir := filepath.Join(b.paths.OutputsRoot, scanID, toolName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (b *builders) wordlist(name string) string {
	return filepath.Join(b.paths.WordlistsDir, name)
}

// appendParam emits a parameter using the shared convention: [flag, value] for
// value-bearing parameters, a bare flag for boolean-true ones, nothing for
// everything else.
func appendParam(cmd []string, p types.Param) []string {
	switch {
	case p.HasArg():
		return append(cmd, p.Flag, p.Value)
	case p.Enabled():
		return append(cmd, p.Flag)
	}
	return cmd
}

// hasToken reports whether a literal token is already in the vector.
func hasToken(cmd []string, token string) bool {
	return slices.Contains(cmd, token)
}

// ensureURL prefixes http:// when the target lacks a scheme, for tools that
// need a URL form.
func ensureURL(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return "http://" + target
}
