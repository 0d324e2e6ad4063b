package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// recon-ng script generation errors. Both abort only the affected tool, never
// the whole scan.
var (
	ErrTemplateMissing = errors.New("recon-ng template file not found")
	ErrScriptRender    = errors.New("failed to render recon-ng script")
)

// reconNG builds a recon-ng command by rendering a resource script from a
// template. The workspace name defaults to a pure function of (target,
// scan_id) so reruns land in the same workspace; a --workspace parameter
// overrides it.
func (b *builders) reconNG(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	scriptPath := filepath.Join(dir, "workflow.rc")
	reportPath := filepath.Join(dir, "report.html")

	workspace := strings.ReplaceAll(target, ".", "_") + "_" + scanID
	for _, p := range params {
		if p.Flag == "--workspace" && p.HasArg() {
			workspace = p.Value
			break
		}
	}

	tpl, err := os.ReadFile(b.paths.ReconNGTemplate)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTemplateMissing
		}
		return nil, fmt.Errorf("%w: %v", ErrScriptRender, err)
	}

	script := strings.NewReplacer(
		"{{ workspace }}", workspace,
		"{{ domain }}", target,
		"{{ output_file }}", reportPath,
	).Replace(string(tpl))

	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScriptRender, err)
	}

	return []string{"recon-ng", "-r", scriptPath}, nil
}
