package profile

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeOptions decodes an options map into out, a pointer to a dialect's
// options struct tagged with `mapstructure`. Scalars are converted weakly
// so that "true" or 1 decode into a bool.
func DecodeOptions(options map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ZeroFields:       false,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(options); err != nil {
		return &ConfigError{Field: "options", Message: err.Error(), Cause: err}
	}
	return nil
}

// Lookup walks a dotted path through nested option maps.
func Lookup(options map[string]any, path string) (any, bool) {
	var cur any = options
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// Group returns the option group at path.
func Group(options map[string]any, path string) (map[string]any, bool) {
	v, ok := Lookup(options, path)
	if !ok {
		return nil, false
	}
	return asMap(v)
}

// RequireGroup fails unless path names an option group.
func RequireGroup(options map[string]any, path string) error {
	if _, ok := Group(options, path); !ok {
		return &ConfigError{Field: "options." + path, Message: "option group is required"}
	}
	return nil
}

// RequireString fails unless path names a non-empty string.
func RequireString(options map[string]any, path string) error {
	v, _ := Lookup(options, path)
	if s, ok := v.(string); !ok || strings.TrimSpace(s) == "" {
		return &ConfigError{Field: "options." + path, Message: "a non-empty string is required"}
	}
	return nil
}

// RequireOneOf fails unless path names one of the allowed strings.
func RequireOneOf(options map[string]any, path string, allowed ...string) error {
	v, _ := Lookup(options, path)
	s, _ := v.(string)
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return &ConfigError{
		Field:   "options." + path,
		Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), s),
	}
}
