package builder

import (
	"path/filepath"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// nmap builds an nmap command. Any of the -oX/-oN/-oA output flags are
// redirected into the tool's output directory; when none is supplied the
// default XML output flag is appended.
func (b *builders) nmap(target string, params []types.Param, scanID, toolName string) ([]string, error) {
	dir, err := b.outputDir(scanID, toolName)
	if err != nil {
		return nil, err
	}
	outputBase := filepath.Join(dir, "nmap_scan")

	cmd := []string{"nmap"}
	outputSpecified := false
	for _, p := range params {
		if p.Flag == "" || p.Flag == "<target>" {
			continue
		}
		switch {
		case p.Flag == "-oX" || p.Flag == "-oN" || p.Flag == "-oA":
			outputSpecified = true
			cmd = append(cmd, p.Flag, outputBase)
		case p.RequiresValue && p.Set:
			cmd = append(cmd, p.Flag, p.Value)
		case !p.RequiresValue && p.Enabled():
			cmd = append(cmd, p.Flag)
		}
	}

	if !outputSpecified {
		cmd = append(cmd, "-oX", outputBase+".xml")
	}
	cmd = append(cmd, target)
	return cmd, nil
}
