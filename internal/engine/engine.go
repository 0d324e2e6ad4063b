// Package engine executes built argument vectors as subprocesses, captures
// their output, enforces wall-clock timeouts and classifies success.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// tailLen is how many trailing characters of each stream the result carries.
// Full captures are persisted to output.stdout / output.stderr.
const tailLen = 2000

// outputFlags are the known write-to-file flags, scanned for fallback
// recovery when a tool ignores its documented output flag.
var outputFlags = []string{"-o", "-oA", "-oG", "-oJ", "-oN", "-oX", "-f", "--log-brief"}

// Options configures the engine.
type Options struct {
	OutputsRoot string
	Timeout     time.Duration // per-execution wall clock limit, default 1h
	ReconNGHome string        // working directory for recon-ng runs
}

// Engine runs tool commands. It never returns an error for foreseeable
// execution failures; those become failed results with return code -1.
type Engine struct {
	opts Options
}

// New creates an engine.
func New(opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = time.Hour
	}
	return &Engine{opts: opts}
}

// Execute spawns the command directly from the argument vector, with no shell
// interpretation, since parameter values may originate from an untrusted
// upstream caller.
func (e *Engine) Execute(ctx context.Context, command []string, scanID, toolName string) types.ToolResult {
	result := types.ToolResult{
		ToolName:   toolName,
		Command:    command,
		ReturnCode: -1,
	}

	dir := filepath.Join(e.opts.OutputsRoot, scanID, toolName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		result.Stderr = fmt.Sprintf("failed to execute command: %v", err)
		return result
	}
	stdoutFile := filepath.Join(dir, "output.stdout")
	stderrFile := filepath.Join(dir, "output.stderr")

	if len(command) == 0 {
		result.Stderr = "failed to execute command: empty command"
		return result
	}

	runCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, command[0], command[1:]...)
	if strings.EqualFold(toolName, "recon-ng") && e.opts.ReconNGHome != "" {
		cmd.Dir = e.opts.ReconNGHome
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		msg := fmt.Sprintf("Command timed out after %d seconds.", int(e.opts.Timeout.Seconds()))
		os.WriteFile(stdoutFile, stdout.Bytes(), 0o644)
		os.WriteFile(stderrFile, []byte(msg), 0o644)
		result.Stdout = tail(stdout.String())
		result.Stderr = msg
		result.OutputFiles = listArtifacts(dir, stdoutFile, stderrFile)
		return result
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			result.Stderr = fmt.Sprintf("failed to execute command: %v", runErr)
			return result
		}
	}

	if err := os.WriteFile(stdoutFile, stdout.Bytes(), 0o644); err != nil {
		result.Stderr = fmt.Sprintf("failed to execute command: %v", err)
		return result
	}
	if err := os.WriteFile(stderrFile, stderr.Bytes(), 0o644); err != nil {
		result.Stderr = fmt.Sprintf("failed to execute command: %v", err)
		return result
	}

	// Some tools occasionally emit results only to stdout despite a
	// write-to-file flag; recover by writing stdout to the expected path.
	if path := expectedOutputPath(command); path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) && stdout.Len() > 0 {
			os.MkdirAll(filepath.Dir(path), 0o755)
			os.WriteFile(path, stdout.Bytes(), 0o644)
		}
	}

	result.ReturnCode = cmd.ProcessState.ExitCode()
	result.Stdout = tail(stdout.String())
	result.Stderr = tail(stderr.String())
	result.Success = Classify(toolName, result.ReturnCode, stdout.String(), stderr.String())
	result.OutputFiles = listArtifacts(dir, stdoutFile, stderrFile)
	return result
}

// expectedOutputPath returns the file named after the first recognized
// write-to-file flag in the vector, or "".
func expectedOutputPath(command []string) string {
	for i, token := range command {
		if slices.Contains(outputFlags, token) && i+1 < len(command) {
			return command[i+1]
		}
	}
	return ""
}

// listArtifacts enumerates every regular file under the tool's output
// directory, the two capture files first.
func listArtifacts(dir, stdoutFile, stderrFile string) []string {
	files := []string{stdoutFile, stderrFile}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return files
	}
	for _, entry := range entries {
		name := entry.Name()
		if name == "output.stdout" || name == "output.stderr" {
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files
}

func tail(s string) string {
	if len(s) <= tailLen {
		return s
	}
	return s[len(s)-tailLen:]
}
