package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// theharvester builds a theHarvester command. The -f output base is always
// ours; theHarvester derives its .json/.html report names from it.
func (b *builders) theharvester(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputFile := filepath.Join(dir, "theharvester_scan")

	cmd := []string{"theharvester", "-d", target}
	for _, p := range params {
		switch p.Flag {
		case "", "-d", "-f":
			continue
		}
		cmd = appendParam(cmd, p)
	}

	cmd = append(cmd, "-f", outputFile)
	return cmd, nil
}
