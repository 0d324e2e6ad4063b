package engine

import "strings"

// Success classification is substring matching over human-readable tool
// output. It is fragile on purpose: these tools do not report failure through
// exit codes consistently, and the rules below are kept as explicit per-family
// tables so a misclassification can be traced to one marker.

// strictFamily contains tools where a zero exit code plus a clean stderr is
// both necessary and sufficient.
var strictFamily = map[string]bool{
	"recon-ng":     true,
	"dirsearch":    true,
	"theharvester": true,
}

// defaultErrorMarkers fail the default family when found in either stream.
var defaultErrorMarkers = []string{
	"invalid module",
	"invalid option",
	"invalid command",
	"error",
	"traceback",
	"no such file",
	"not found",
	"[!]",
	"fail",
	"module not found",
}

// dnsenumBenignMarkers excuse a non-zero dnsenum exit: ordinary DNS lookup
// misses still leave a usable result.
var dnsenumBenignMarkers = []string{
	"query failed",
	"noerror",
	"lame server",
}

// dnsenumFatalMarker indicates a missing Perl module; fatal regardless of
// exit code.
const dnsenumFatalMarker = "can't locate"

// Classify decides whether a tool run succeeded, using the tool-family rules.
func Classify(toolName string, returnCode int, stdout, stderr string) bool {
	tool := strings.ToLower(toolName)
	stdoutLower := strings.ToLower(stdout)
	stderrLower := strings.ToLower(stderr)

	switch {
	case strictFamily[tool]:
		return returnCode == 0 &&
			!strings.Contains(stderrLower, "error") &&
			!strings.Contains(stderrLower, "traceback")

	case tool == "dnsenum":
		if strings.Contains(stderrLower, dnsenumFatalMarker) {
			return false
		}
		if returnCode == 0 {
			return true
		}
		return containsAny(stderrLower, dnsenumBenignMarkers)

	default:
		if returnCode != 0 {
			return false
		}
		return !containsAny(stdoutLower, defaultErrorMarkers) &&
			!containsAny(stderrLower, defaultErrorMarkers)
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
