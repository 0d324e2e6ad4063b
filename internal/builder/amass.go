package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// amass builds an "amass enum" command. The domain is always placed up front
// via -d. A boolean -rf flag expands to a bundled resolver wordlist.
// Deprecated flags (-src, -ip) and positional mode selectors are dropped.
func (b *builders) amass(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputFile := filepath.Join(dir, "amass_scan.txt")

	cmd := []string{"amass", "enum", "-d", target}
	for _, p := range params {
		switch p.Flag {
		case "", "enum", "intel", "-src", "-ip", "-d", "-o":
			continue
		case "-rf":
			if p.Enabled() {
				cmd = append(cmd, "-rf", b.wordlist("subdomains-top1million-5000.txt"))
			}
			continue
		}
		cmd = appendParam(cmd, p)
	}

	cmd = append(cmd, "-o", outputFile)
	return cmd, nil
}
