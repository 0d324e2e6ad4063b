package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// subfinder builds a subfinder command. A boolean -dL flag expands to the
// bundled domain list and replaces the single -d target; otherwise the target
// goes in via -d.
func (b *builders) subfinder(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputFile := filepath.Join(dir, "subfinder_scan.json")

	cmd := []string{"subfinder", "-silent"}

	domainListUsed := false
	for _, p := range params {
		if p.Flag == "-dL" && p.Enabled() {
			cmd = append(cmd, "-dL", filepath.Join(b.paths.TargetListsDir, "domains.txt"))
			domainListUsed = true
			break
		}
	}
	if !domainListUsed {
		cmd = append(cmd, "-d", target)
	}

	for _, p := range params {
		switch p.Flag {
		case "", "-d", "-dL", "-silent", "-oJ":
			continue
		}
		cmd = appendParam(cmd, p)
	}

	cmd = append(cmd, "-oJ", outputFile)
	return cmd, nil
}
