// Package scan orchestrates one scan: for each requested tool it builds the
// command, executes it, and routes the artifacts, isolating per-tool failures
// from the rest of the scan.
package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reconvoy/reconvoy/internal/builder"
	"github.com/reconvoy/reconvoy/internal/resolve"
	"github.com/reconvoy/reconvoy/pkg/console"
	"github.com/reconvoy/reconvoy/pkg/types"
)

// CommandBuilders resolves per-tool command builders.
type CommandBuilders interface {
	Resolve(tool string) (builder.Builder, error)
}

// Executor runs a built command and classifies the outcome.
type Executor interface {
	Execute(ctx context.Context, command []string, scanID, toolName string) types.ToolResult
}

// PostProcessor uploads a tool's artifacts and conditionally cleans up.
type PostProcessor interface {
	Process(ctx context.Context, scanID, toolName, outputDir string, artifacts []string) error
}

// ResultSink persists the aggregated scan result.
type ResultSink interface {
	SaveScan(ctx context.Context, result *types.ScanResult) error
}

// Runner drives a whole scan. Tools run one at a time; isolation between
// concurrent scans comes from the scan-ID-keyed filesystem namespace.
type Runner struct {
	Builders    CommandBuilders
	Engine      Executor
	Dispatcher  PostProcessor // optional
	Results     ResultSink    // optional
	OutputsRoot string
	Log         func(string) // optional console sink
}

// Run executes every requested tool and aggregates the per-tool results.
// It returns an error only for an invalid request; tool failures are reported
// inside the result.
func (r *Runner) Run(ctx context.Context, req types.ScanRequest) (*types.ScanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &types.ScanResult{
		ScanID: req.ScanID,
		Target: req.Target,
	}

	if resolve.IsIP(req.Target) {
		if domain, err := resolve.Reverse(ctx, req.Target); err == nil && domain != "" {
			result.TargetDomain = domain
			r.log(console.Info(fmt.Sprintf("Resolved IP %s to domain %s", req.Target, domain)))
		}
	}

	for _, tool := range req.Tools {
		result.Results = append(result.Results, r.runTool(ctx, req, tool))
	}

	result.Status, result.Message = types.Summarize(result.Results)

	if r.Results != nil {
		if err := r.Results.SaveScan(ctx, result); err != nil {
			r.log(console.Err(fmt.Sprintf("Failed to persist scan %s: %v", req.ScanID, err)))
		}
	}
	return result, nil
}

// runTool performs build, execute and post-process for one tool. Any failure
// along the way becomes a failed per-tool result, never an aborted scan.
func (r *Runner) runTool(ctx context.Context, req types.ScanRequest, tool types.ToolRequest) types.ToolResult {
	failed := func(err error) types.ToolResult {
		r.log(console.Err(fmt.Sprintf("Tool %s failed: %v", tool.Name, err)))
		return types.ToolResult{
			ToolName:    tool.Name,
			Command:     []string{},
			ReturnCode:  -1,
			Stderr:      err.Error(),
			OutputFiles: []string{},
		}
	}

	target := req.Target
	if strings.EqualFold(tool.Name, "masscan") {
		ip, err := resolve.ToIP(ctx, target)
		if err != nil {
			return failed(fmt.Errorf("resolving %s for masscan: %w", target, err))
		}
		target = ip
	}

	build, err := r.Builders.Resolve(tool.Name)
	if err != nil {
		return failed(err)
	}
	command, err := build(target, tool.Parameters, req.ScanID, tool.Name)
	if err != nil {
		return failed(err)
	}

	r.log(console.ToolStart(tool.Name))
	r.log(console.Command(command))

	result := r.Engine.Execute(ctx, command, req.ScanID, tool.Name)
	r.log(console.ToolEnd(tool.Name, result.Success, result.ReturnCode))

	if r.Dispatcher != nil {
		outputDir := filepath.Join(r.OutputsRoot, req.ScanID, tool.Name)
		if err := r.Dispatcher.Process(ctx, req.ScanID, tool.Name, outputDir, result.OutputFiles); err != nil {
			// Upload trouble never changes the tool verdict, it only
			// keeps the local directory around.
			r.log(console.Warn(fmt.Sprintf("Post-processing %s: %v", tool.Name, err)))
		}
	}
	return result
}

func (r *Runner) log(msg string) {
	if r.Log != nil {
		r.Log(msg)
	}
}
