package cli

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/ingest"
	"github.com/mark3labs/swagen/internal/profile"
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

// friendly maps typed errors from the pipeline to usage errors. Other
// errors are returned unchanged.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	var le *ingest.LoadError
	if errors.As(err, &le) {
		msg := fmt.Sprintf("input: %s", le.Message)
		if le.Location != "" {
			msg = fmt.Sprintf("%s\nLocation: %s", msg, le.Location)
		}
		if le.JSONPointer != "" {
			msg = fmt.Sprintf("%s\nPointer: %s", msg, le.JSONPointer)
		}
		return newUsageError(msg)
	}
	var ce *profile.ConfigError
	var se *definition.SchemaError
	if errors.As(err, &ce) || errors.As(err, &se) || errors.Is(err, generator.ErrUnknownMode) {
		return newUsageError(Message(err))
	}
	return err
}

// Message renders err with any hints attached along its chain.
func Message(err error) string {
	msg := err.Error()
	if hint := errors.FlattenHints(err); hint != "" {
		msg += "\nHint: " + strings.ReplaceAll(hint, "\n", "\nHint: ")
	}
	return msg
}
