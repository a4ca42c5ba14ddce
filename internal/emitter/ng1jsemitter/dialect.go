// Package ng1jsemitter generates AngularJS 1.x services in plain ES5
// JavaScript, with JSDoc typedefs describing the models.
package ng1jsemitter

import (
	"github.com/cockroachdb/errors"

	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/prompt"
)

// Mode is the canonical mode name.
const Mode = "ng1-javascript"

// Options configures the ng1-javascript dialect.
type Options struct {
	Module  string  `mapstructure:"module"`
	BaseURL BaseURL `mapstructure:"baseUrl"`
	// Quotes is "single" or "double".
	Quotes string `mapstructure:"quotes"`
	// TSCheck adds a // @ts-check pragma.
	TSCheck bool `mapstructure:"tsCheck"`
	// JSDocTypeInfo names models in JSDoc types instead of Object.
	JSDocTypeInfo bool `mapstructure:"jsdocTypeInfo"`
}

// BaseURL names the injectable holding the base URL and the member path to
// read from it.
type BaseURL struct {
	Provider string `mapstructure:"provider"`
	Path     string `mapstructure:"path"`
}

func (o *Options) quote() string {
	if o.Quotes == "double" {
		return `"`
	}
	return "'"
}

func (o *Options) baseURLExpr() string {
	if o.BaseURL.Path == "" {
		return o.BaseURL.Provider
	}
	return o.BaseURL.Provider + "." + o.BaseURL.Path
}

// Dialect implements the ng1-javascript mode.
type Dialect struct{}

// New returns the dialect.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Name() string { return Mode }
func (*Dialect) Description() string {
	return "AngularJS 1.x services in ES5 JavaScript with JSDoc types"
}
func (*Dialect) Language() string  { return "javascript" }
func (*Dialect) Extension() string { return ".js" }

func (*Dialect) WriterOptions() codewriter.Options { return codewriter.JavaScript }

func (*Dialect) DefaultTransforms() naming.Table {
	return naming.Table{
		naming.ServiceName:   {naming.CamelCase},
		naming.OperationName: {naming.CamelCase},
		naming.ParameterName: {naming.CamelCase},
		naming.ModelName:     {naming.PascalCase},
		naming.PropertyName:  {naming.CamelCase},
	}
}

func (*Dialect) Prompts() []prompt.Question {
	return []prompt.Question{
		{Kind: prompt.Input, Name: "module", Message: "AngularJS module to register services under", Required: true},
		{Kind: prompt.Input, Name: "baseUrlProvider", Message: "Injectable name of the service used to retrieve the base URL", Required: true},
		{Kind: prompt.Input, Name: "baseUrlPath", Message: "Member name of the base URL value in the service", Default: "baseUrl"},
		{
			Kind: prompt.List, Name: "quotes", Message: "How are literal strings quoted?",
			Choices: []prompt.Choice{{Value: "single", Name: "Single"}, {Value: "double", Name: "Double"}},
			Default: "single",
		},
		{Kind: prompt.Confirm, Name: "tsCheck", Message: "Enable TypeScript checking by adding a @ts-check comment?", Default: false},
		{Kind: prompt.Confirm, Name: "jsdocTypeInfo", Message: "Generate detailed type information for models using JSDoc typedef comments?", Default: true},
	}
}

func (*Dialect) BuildProfile(options map[string]any, answers prompt.Answers) error {
	options["module"] = answers.String("module")
	options["baseUrl"] = map[string]any{
		"provider": answers.String("baseUrlProvider"),
		"path":     answers.String("baseUrlPath"),
	}
	options["quotes"] = answers.String("quotes")
	options["tsCheck"] = answers.Bool("tsCheck")
	options["jsdocTypeInfo"] = answers.Bool("jsdocTypeInfo")
	return nil
}

func (*Dialect) Validate(options map[string]any) error {
	if err := profile.RequireString(options, "module"); err != nil {
		return errors.WithHint(err, "name the AngularJS module the services register with")
	}
	if err := profile.RequireGroup(options, "baseUrl"); err != nil {
		return err
	}
	if err := profile.RequireString(options, "baseUrl.provider"); err != nil {
		return err
	}
	if _, ok := profile.Lookup(options, "quotes"); ok {
		if err := profile.RequireOneOf(options, "quotes", "single", "double"); err != nil {
			return err
		}
	}
	_, err := decodeOptions(options)
	return err
}

func decodeOptions(options map[string]any) (*Options, error) {
	opts := &Options{}
	if err := profile.DecodeOptions(options, opts); err != nil {
		return nil, err
	}
	return opts, nil
}
