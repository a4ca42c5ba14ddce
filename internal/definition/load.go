package definition

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a definition file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks a format from a file extension. Unknown extensions fall
// back to JSON when the content starts with '{', YAML otherwise.
func FormatFor(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads and decodes a definition file. The result is not validated.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read definition %s", path)
	}
	def, err := Parse(data, FormatFor(path, data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode definition %s", path)
	}
	return def, nil
}

// Parse decodes a definition from bytes in the given format.
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf("unsupported definition format %q", format)
	}
	def.normalize()
	return &def, nil
}

func (d *Definition) normalize() {
	if d.Services == nil {
		d.Services = map[string]Service{}
	}
	if d.Models == nil {
		d.Models = map[string]*Model{}
	}
	if d.Enums == nil {
		d.Enums = map[string][]string{}
	}
	for name, m := range d.Models {
		if m == nil {
			d.Models[name] = NewModel()
		}
	}
}
