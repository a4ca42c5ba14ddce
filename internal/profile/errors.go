package profile

import "fmt"

// ConfigError reports a missing or invalid profile setting. Field is the
// dotted path of the offending option group, e.g. "options.namespaces".
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("profile: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Cause }
