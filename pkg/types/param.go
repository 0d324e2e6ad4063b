package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Param is the canonical tool parameter shape. Upstream callers send parameters
// either as structured objects or as loose key/value maps; both are normalized
// into this one representation before any builder sees them.
type Param struct {
	Flag          string `json:"flag"`
	Description   string `json:"description,omitempty"`
	Value         string `json:"value,omitempty"`
	RequiresValue bool   `json:"requiresValue,omitempty"`

	// Set records whether a value was present at all, so builders can tell
	// "no value" apart from an explicit empty string.
	Set bool `json:"-"`
}

// paramWire mirrors the JSON shape, with value accepting string or bool.
type paramWire struct {
	Flag          string `json:"flag"`
	Description   string `json:"description"`
	Value         any    `json:"value"`
	RequiresValue bool   `json:"requiresValue"`
}

// UnmarshalJSON accepts `value` as a string, bool, or number, since the
// upstream request schema is loose about it.
func (p *Param) UnmarshalJSON(data []byte) error {
	var w paramWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = FromMap(map[string]any{
		"flag":          w.Flag,
		"description":   w.Description,
		"value":         w.Value,
		"requiresValue": w.RequiresValue,
	})
	return nil
}

// FromMap normalizes a mapping-form parameter. Missing fields default:
// requiresValue to false, value to absent.
func FromMap(m map[string]any) Param {
	p := Param{}
	if v, ok := m["flag"].(string); ok {
		p.Flag = v
	}
	if v, ok := m["description"].(string); ok {
		p.Description = v
	}
	if v, ok := m["requiresValue"].(bool); ok {
		p.RequiresValue = v
	}
	if v, ok := m["value"]; ok && v != nil {
		p.Set = true
		switch val := v.(type) {
		case string:
			p.Value = val
		case bool:
			if val {
				p.Value = "true"
			} else {
				p.Value = "false"
			}
		default:
			p.Value = fmt.Sprint(val)
		}
	}
	return p
}

// Enabled reports whether the parameter carries a boolean-true value
// ("true", "True", "1" or a JSON true).
func (p Param) Enabled() bool {
	if !p.Set {
		return false
	}
	switch strings.ToLower(p.Value) {
	case "true", "1":
		return true
	}
	return false
}

// HasArg reports whether the parameter carries a concrete argument value,
// as opposed to being absent or a boolean toggle.
func (p Param) HasArg() bool {
	return p.Set && p.Value != "" && !p.Enabled()
}
