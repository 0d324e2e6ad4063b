// Package builder turns abstract tool parameters into concrete, injection-safe
// argument vectors. One builder per supported tool encodes that tool's CLI
// contract, defaults and output-path convention.
package builder

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// ErrUnsupportedTool is returned when no builder is registered for a tool.
var ErrUnsupportedTool = errors.New("unsupported tool")

// Builder constructs the argument vector for one tool. The first token is the
// tool binary; the vector is always passed to exec verbatim, never a shell.
type Builder func(target string, params []types.Param, scanID, toolName string) ([]string, error)

// Paths holds the filesystem locations builders depend on.
type Paths struct {
	OutputsRoot     string
	WordlistsDir    string
	TargetListsDir  string
	ReconNGTemplate string
}

// Registry maps tool names to builders. It is populated once at construction
// and read-only afterwards.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates the registry with every supported tool registered.
func NewRegistry(paths Paths) *Registry {
	b := &builders{paths: paths}
	return &Registry{builders: map[string]Builder{
		"nmap":         b.nmap,
		"masscan":      b.masscan,
		"amass":        b.amass,
		"subfinder":    b.subfinder,
		"theharvester": b.theharvester,
		"recon-ng":     b.reconNG,
		"gobuster":     b.gobuster,
		"dirsearch":    b.dirsearch,
		"whatweb":      b.whatweb,
		"dnsenum":      b.dnsenum,
	}}
}

// Resolve returns the builder for a tool name (case-insensitive).
func (r *Registry) Resolve(tool string) (Builder, error) {
	builder, ok := r.builders[strings.ToLower(tool)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTool, tool)
	}
	return builder, nil
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Binary returns the executable name a tool resolves to on PATH.
func Binary(tool string) string {
	return strings.ToLower(tool)
}
