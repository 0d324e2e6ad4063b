package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// dirsearch builds a dirsearch command. The -u target is always a URL; a
// boolean -w flag expands to a bundled wordlist, and one is appended anyway
// when the caller supplies none since dirsearch requires it.
func (b *builders) dirsearch(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputFile := filepath.Join(dir, "dirsearch_scan.txt")

	cmd := []string{"dirsearch"}
	targetFlagSet := false
	for _, p := range params {
		if p.Flag == "" {
			continue
		}
		switch p.Flag {
		case "-w":
			if p.Enabled() {
				cmd = append(cmd, "-w", b.wordlist("directory-list-2.3-small.txt"))
			}
			continue
		case "-o":
			cmd = append(cmd, "-o", outputFile)
			continue
		case "-u":
			url := target
			if p.HasArg() {
				url = p.Value
			}
			cmd = append(cmd, "-u", ensureURL(url))
			targetFlagSet = true
			continue
		}
		cmd = appendParam(cmd, p)
	}

	if !targetFlagSet {
		cmd = append(cmd, "-u", ensureURL(target))
	}
	if !hasToken(cmd, "-w") {
		cmd = append(cmd, "-w", b.wordlist("directory-list-2.3-small.txt"))
	}
	if !hasToken(cmd, "-o") {
		cmd = append(cmd, "-o", outputFile)
	}
	return cmd, nil
}
