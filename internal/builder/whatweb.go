package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// whatweb builds a whatweb command. --log-brief is the output-capturing flag;
// the target is appended last in URL form.
func (b *builders) whatweb(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputFile := filepath.Join(dir, "whatweb_scan.txt")

	cmd := []string{"whatweb"}
	outputSpecified := false
	for _, p := range params {
		if p.Flag == "" || p.Flag == "<target>" {
			continue
		}
		if p.Flag == "--log-brief" {
			cmd = append(cmd, "--log-brief", outputFile)
			outputSpecified = true
			continue
		}
		cmd = appendParam(cmd, p)
	}

	if !outputSpecified {
		cmd = append(cmd, "--log-brief", outputFile)
	}
	cmd = append(cmd, ensureURL(target))
	return cmd, nil
}
