// Package profile loads named scan profiles from YAML. A profile bundles a
// tool list with preset parameters so callers can request "passive" or "full"
// instead of spelling out every flag.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// Profile is one named tool bundle.
type Profile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tools       []Tool `yaml:"tools"`
}

// Tool is one tool entry in a profile. Parameters use the loose mapping form
// and are normalized when the profile is expanded into a request.
type Tool struct {
	Name       string           `yaml:"name"`
	Parameters []map[string]any `yaml:"parameters"`
}

// File is the on-disk profile document.
type File struct {
	Type     string    `yaml:"type"`
	Profiles []Profile `yaml:"profiles"`
}

// Load parses a profile YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Type != "profiles" {
		return nil, fmt.Errorf("expected type 'profiles', got '%s'", f.Type)
	}
	return &f, nil
}

// Find returns the named profile.
func (f *File) Find(name string) (Profile, error) {
	for _, p := range f.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown profile '%s'", name)
}

// Names lists the profiles in file order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for _, p := range f.Profiles {
		names = append(names, p.Name)
	}
	return names
}

// ToolRequests expands the profile into normalized tool requests.
func (p Profile) ToolRequests() []types.ToolRequest {
	reqs := make([]types.ToolRequest, 0, len(p.Tools))
	for _, tool := range p.Tools {
		req := types.ToolRequest{Name: tool.Name}
		for _, m := range tool.Parameters {
			req.Parameters = append(req.Parameters, types.FromMap(m))
		}
		reqs = append(reqs, req)
	}
	return reqs
}
