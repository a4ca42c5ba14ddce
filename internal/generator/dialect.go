// Package generator dispatches a definition and a profile to the dialect
// that the profile selects.
//
// Dispatch validates the profile's options before any text is emitted and
// treats generation as all-or-nothing: on error no source is returned.
package generator

import (
	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/prompt"
)

// Dialect is one selectable output target.
type Dialect interface {
	// Name is the canonical mode name, e.g. "ng1-typescript".
	Name() string
	Description() string
	// Language is the output language tag, e.g. "typescript".
	Language() string
	// Extension is the output file extension including the dot.
	Extension() string

	// Prompts lists the questions BuildProfile expects answers for.
	Prompts() []prompt.Question
	// DefaultTransforms are the naming transforms used when a profile
	// does not override a category.
	DefaultTransforms() naming.Table
	WriterOptions() codewriter.Options

	// BuildProfile fills options from collected answers.
	BuildProfile(options map[string]any, answers prompt.Answers) error
	// Validate checks options and names the offending group on failure.
	Validate(options map[string]any) error
	// Generate writes the source for def into w. It must be deterministic.
	Generate(w *codewriter.Writer, def *definition.Definition, p *profile.Profile, names naming.Table) error
}
