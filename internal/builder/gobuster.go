package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// gobuster builds a gobuster command. The "mode" parameter is a positional
// selector (dir, dns, vhost), never emitted as a flag. dir and vhost modes
// take a URL target via -u, dns mode a domain via -d. A boolean -w flag
// expands to a bundled wordlist; caller-supplied wordlist paths are dropped so
// only sandboxed paths reach the tool.
func (b *builders) gobuster(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputFile := filepath.Join(dir, "gobuster_scan.txt")

	mode := ""
	for _, p := range params {
		if p.Flag == "mode" && p.Set {
			mode = p.Value
			break
		}
	}

	cmd := []string{"gobuster"}
	if mode != "" {
		cmd = append(cmd, mode)
	}

	targetFlagSet := false
	for _, p := range params {
		if p.Flag == "" || p.Flag == "mode" {
			continue
		}
		switch p.Flag {
		case "-w":
			if p.Enabled() {
				cmd = append(cmd, "-w", b.wordlist("common.txt"))
			}
			continue
		case "-o":
			cmd = append(cmd, "-o", outputFile)
			continue
		case "-u", "-d":
			targetFlagSet = true
			if mode == "dir" || mode == "vhost" {
				url := target
				if p.HasArg() {
					url = p.Value
				}
				cmd = append(cmd, "-u", ensureURL(url))
			} else {
				domain := target
				if p.HasArg() {
					domain = p.Value
				}
				cmd = append(cmd, "-d", domain)
			}
			continue
		}
		cmd = appendParam(cmd, p)
	}

	if !targetFlagSet {
		switch mode {
		case "dir", "vhost":
			cmd = append(cmd, "-u", ensureURL(target))
		case "dns":
			cmd = append(cmd, "-d", target)
		}
	}

	if (mode == "dir" || mode == "vhost") && !hasToken(cmd, "-w") {
		cmd = append(cmd, "-w", b.wordlist("common.txt"))
	}
	if !hasToken(cmd, "-o") {
		cmd = append(cmd, "-o", outputFile)
	}
	return cmd, nil
}
