package types

import (
	"errors"
	"strings"
)

// Scan status values reported to callers.
const (
	StatusSuccess        = "success"
	StatusPartialFailure = "partial_failure"
	StatusFailed         = "failed"
)

// ToolRequest asks for one tool to be run with the given parameters.
type ToolRequest struct {
	Name       string  `json:"name"`
	Parameters []Param `json:"parameters"`
}

// ScanRequest is one end-to-end request to run a set of tools against a target.
// The scan ID is assigned upstream (API gateway or CLI) and keys all filesystem
// and object-storage paths for the scan.
type ScanRequest struct {
	Target string        `json:"target"`
	ScanID string        `json:"scan_id"`
	Tools  []ToolRequest `json:"tools"`
}

// Validate checks the minimal request shape and trims the target.
func (r *ScanRequest) Validate() error {
	r.Target = strings.TrimSpace(r.Target)
	if r.Target == "" {
		return errors.New("target cannot be empty")
	}
	if r.ScanID == "" {
		return errors.New("scan_id cannot be empty")
	}
	return nil
}

// ToolResult is the per-tool outcome. Stdout and Stderr carry only the trailing
// 2000 characters of each stream; the full captures live in OutputFiles.
type ToolResult struct {
	ToolName    string   `json:"tool_name"`
	Command     []string `json:"command"`
	ReturnCode  int      `json:"return_code"`
	Stdout      string   `json:"stdout"`
	Stderr      string   `json:"stderr"`
	OutputFiles []string `json:"output_file_paths"`
	Success     bool     `json:"success"`
}

// ScanResult aggregates all per-tool results for one scan.
type ScanResult struct {
	ScanID       string       `json:"scan_id"`
	Target       string       `json:"target"`
	TargetDomain string       `json:"target_domain,omitempty"`
	Results      []ToolResult `json:"results"`
	Message      string       `json:"message"`
	Status       string       `json:"status"`
}

// Summarize derives the scan status and message from the per-tool results.
func Summarize(results []ToolResult) (status, message string) {
	all, any := true, false
	for _, r := range results {
		if r.Success {
			any = true
		} else {
			all = false
		}
	}
	switch {
	case len(results) > 0 && all:
		return StatusSuccess, "All tools executed successfully."
	case any:
		return StatusPartialFailure, "Some tools failed."
	default:
		return StatusFailed, "All tools failed."
	}
}
