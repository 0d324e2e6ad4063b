package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// masscan builds a masscan command. The target must already be resolved to an
// IP by the caller; masscan does not resolve hostnames. Port range defaults to
// 1-1000 when the caller specifies none.
func (b *builders) masscan(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputFile := filepath.Join(dir, "masscan_scan.json")

	portsSpecified := false
	for _, p := range params {
		if p.Flag == "-p" || p.Flag == "--ports" {
			portsSpecified = true
		}
	}

	cmd := []string{"masscan"}
	for _, p := range params {
		if p.Flag == "" || p.Flag == "-oJ" {
			continue
		}
		cmd = appendParam(cmd, p)
	}

	if !portsSpecified {
		cmd = append(cmd, "-p", "1-1000")
	}
	cmd = append(cmd, "-oJ", outputFile, target)
	return cmd, nil
}
