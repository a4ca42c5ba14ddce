// Package profile loads generation profiles and decodes their dialect
// options.
//
// A profile file holds one or more named profiles. Each profile selects a
// dialect (mode), the definition to read, the file to write, optional
// naming overrides and the dialect's options. Profiles are read-only once
// loaded.
package profile

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/mark3labs/swagen/internal/naming"
)

// Profile is one generation run.
type Profile struct {
	// Name is the key of the profile in its file.
	Name string `json:"-" yaml:"-" toml:"-"`

	Mode string `json:"mode" yaml:"mode" toml:"mode"`
	// File is the output path.
	File string `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
	// Definition is a normalized definition file (JSON or YAML).
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty" toml:"definition,omitempty"`
	// Input is an OpenAPI 3 or Swagger 2 document, path or URL.
	Input      string              `json:"input,omitempty" yaml:"input,omitempty" toml:"input,omitempty"`
	Transforms map[string][]string `json:"transforms,omitempty" yaml:"transforms,omitempty" toml:"transforms,omitempty"`
	Options    map[string]any      `json:"options" yaml:"options" toml:"options"`
}

// Set is the content of a profile file keyed by profile name.
type Set map[string]*Profile

// Names returns the profile names in lexical order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the named profiles in the order given, or every profile
// in name order when names is empty.
func (s Set) Select(names ...string) ([]*Profile, error) {
	if len(names) == 0 {
		names = s.Names()
	}
	out := make([]*Profile, 0, len(names))
	for _, name := range names {
		p, ok := s[name]
		if !ok {
			return nil, &ConfigError{Field: "profiles", Message: fmt.Sprintf("no profile named %q", name)}
		}
		out = append(out, p)
	}
	return out, nil
}

// NamingTable merges the profile's transforms over defaults.
func (p *Profile) NamingTable(defaults naming.Table) (naming.Table, error) {
	overrides, err := naming.ParseTable(p.Transforms)
	if err != nil {
		field := "transforms"
		var ue *naming.UnknownError
		if errors.As(err, &ue) {
			field += "." + ue.Category
		}
		return nil, &ConfigError{Field: field, Message: err.Error(), Cause: err}
	}
	return defaults.Merge(overrides), nil
}
