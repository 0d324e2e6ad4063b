package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// dnsenum builds a dnsenum command. The logical --file flag from upstream is a
// boolean that expands to -f with a bundled wordlist. XML output is always
// captured via -o, and the domain goes last, after all options.
func (b *builders) dnsenum(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputFile := filepath.Join(dir, "dnsenum_scan.xml")

	cmd := []string{"dnsenum"}
	for _, p := range params {
		switch p.Flag {
		case "", "-o", "<domain>":
			continue
		case "--file":
			if p.Enabled() {
				cmd = append(cmd, "-f", b.wordlist("subdomains-top1million-5000.txt"))
			}
			continue
		}
		cmd = appendParam(cmd, p)
	}

	cmd = append(cmd, "-o", outputFile, target)
	return cmd, nil
}
