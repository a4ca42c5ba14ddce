package profile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the profile file looked up when none is given.
const DefaultFile = "swagen.yaml"

// Load reads a profile file. The format follows the extension: .json,
// .toml, otherwise YAML.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read profiles %s", path)
	}
	set, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "parse profiles %s", path)
	}
	return set, nil
}

// Parse decodes profiles from data. ext selects the format.
func Parse(data []byte, ext string) (Set, error) {
	var set Set
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &set); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, err
		}
	}
	for name, p := range set {
		if p == nil {
			return nil, &ConfigError{Field: name, Message: "profile is empty"}
		}
		p.Name = name
		if p.Options == nil {
			p.Options = map[string]any{}
		}
	}
	return set, nil
}

// Marshal encodes a set in the format selected by ext.
func Marshal(set Set, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		data, err := json.MarshalIndent(set, "", "    ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case ".toml":
		return toml.Marshal(set)
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(set); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
