// Package ngtsemitter generates Angular clients written in TypeScript.
// Every service becomes an @Injectable class built on HttpClient that
// returns Observables or Promises; models become interfaces and enums
// become string literal unions.
package ngtsemitter

import (
	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/prompt"
)

// Mode is the canonical mode name.
const Mode = "ng-typescript"

// Dialect implements the ng-typescript mode.
type Dialect struct{}

// New returns the dialect.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Name() string        { return Mode }
func (*Dialect) Description() string { return "Angular HttpClient services in TypeScript" }
func (*Dialect) Language() string    { return "typescript" }
func (*Dialect) Extension() string   { return ".ts" }

func (*Dialect) WriterOptions() codewriter.Options { return codewriter.TypeScript }

func (*Dialect) DefaultTransforms() naming.Table {
	return naming.Table{
		naming.ServiceName:   {naming.PascalCase},
		naming.OperationName: {naming.CamelCase},
		naming.ParameterName: {naming.CamelCase},
		naming.ModelName:     {naming.PascalCase},
		naming.PropertyName:  {naming.None},
	}
}

var strategyAnswers = map[string]string{
	"importedVar":   ImportedVar,
	"property":      Property,
	"injectedToken": InjectedToken,
	"swagger":       Swagger,
}

func strategyIs(s string) func(prompt.Answers) bool {
	return func(a prompt.Answers) bool { return a.String("baseUrlStrategy") == s }
}

func (*Dialect) Prompts() []prompt.Question {
	return []prompt.Question{
		{
			Kind: prompt.Checkbox, Name: "generate", Message: "Select code to generate", Required: true,
			Choices: []prompt.Choice{{Value: "impls", Name: "Implementations"}, {Value: "intfs", Name: "Interfaces"}},
			Default: []string{"impls"},
		},
		{
			Kind: prompt.List, Name: "baseUrlStrategy", Message: "How should the base URL value be retrieved?",
			Choices: []prompt.Choice{
				{Value: "importedVar", Name: "Use an imported value"},
				{Value: "property", Name: "Use a read-write property"},
				{Value: "injectedToken", Name: "Use an injected token"},
				{Value: "swagger", Name: "Just use the URL from the definition"},
			},
			Default: "importedVar",
		},
		{
			When: strategyIs("importedVar"), Kind: prompt.Input, Name: "baseUrl_importedVar_from",
			Message: "Module to import the base URL variable from", Default: "environments/environment", Required: true,
		},
		{
			When: strategyIs("importedVar"), Kind: prompt.Input, Name: "baseUrl_importedVar_variable",
			Message: "Name of the base URL variable to import", Default: "environment", Required: true,
		},
		{
			When: strategyIs("importedVar"), Kind: prompt.Input, Name: "baseUrl_importedVar_property",
			Message: "Optional property path in the variable", Default: "baseUrl",
		},
		{
			When: strategyIs("property"), Kind: prompt.Input, Name: "baseUrl_property",
			Message: "Name of the property", Default: "baseUrl", Required: true,
		},
		{Kind: prompt.Confirm, Name: "customizations", Message: "Should the generated code be customizable?", Default: false},
		{
			When: func(a prompt.Answers) bool { return a.Bool("customizations") },
			Kind: prompt.Input, Name: "customizations_from",
			Message: "Module to import the customization variable from", Required: true,
		},
		{
			When: func(a prompt.Answers) bool { return a.Bool("customizations") },
			Kind: prompt.Input, Name: "customizations_variable",
			Message: "Name of the customization variable to import", Required: true,
		},
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func (*Dialect) BuildProfile(options map[string]any, answers prompt.Answers) error {
	generate := answers.Strings("generate")
	options["generation"] = map[string]any{
		"generateInterfaces":      contains(generate, "intfs"),
		"generateImplementations": contains(generate, "impls"),
	}

	strategy := answers.String("baseUrlStrategy")
	baseURL := map[string]any{
		"strategy":    strategyAnswers[strategy],
		"overrideUrl": "",
	}
	switch strategy {
	case "importedVar":
		baseURL["importedVar"] = map[string]any{
			"importFrom":     answers.String("baseUrl_importedVar_from"),
			"importVariable": answers.String("baseUrl_importedVar_variable"),
			"property":       answers.String("baseUrl_importedVar_property"),
		}
	case "property":
		baseURL["property"] = answers.String("baseUrl_property")
	}
	options["baseUrl"] = baseURL

	options["angular"] = map[string]any{
		"tokenType":     "InjectedToken",
		"httpFramework": "HttpClient",
		"futuresType":   "Observables",
	}
	if answers.Bool("customizations") {
		options["customization"] = map[string]any{
			"importFrom":     answers.String("customizations_from"),
			"importVariable": answers.String("customizations_variable"),
		}
	}
	return nil
}

func (*Dialect) Validate(options map[string]any) error {
	return validate(options)
}
