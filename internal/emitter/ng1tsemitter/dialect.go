// Package ng1tsemitter generates AngularJS 1.x clients written in
// TypeScript. Services, their interfaces and models live in TypeScript
// namespaces; services call $http and register with an AngularJS module.
package ng1tsemitter

import (
	"github.com/cockroachdb/errors"

	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/prompt"
)

// Mode is the canonical mode name.
const Mode = "ng1-typescript"

// Dialect implements the ng1-typescript mode.
type Dialect struct{}

// New returns the dialect.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Name() string        { return Mode }
func (*Dialect) Description() string { return "AngularJS 1.x services in TypeScript namespaces" }
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

func (*Dialect) Prompts() []prompt.Question {
	return []prompt.Question{
		{Kind: prompt.Input, Name: "module", Message: "AngularJS module to register services under", Required: true},
		{Kind: prompt.Input, Name: "servicesns", Message: "Services namespace", Required: true},
		{
			Kind: prompt.Input, Name: "modelsns", Message: "Models namespace", Required: true,
			DefaultFunc: func(a prompt.Answers) any { return a.String("servicesns") },
		},
		{Kind: prompt.Input, Name: "baseUrlProvider", Message: "Injectable name of the service used to retrieve the base URL", Required: true},
		{
			Kind: prompt.Input, Name: "baseUrlType", Message: "TypeScript type of the service used to retrieve the base URL", Required: true,
			DefaultFunc: func(a prompt.Answers) any {
				return naming.Apply(naming.Camelize(a.String("baseUrlProvider")), naming.PascalCase)
			},
		},
		{Kind: prompt.Input, Name: "baseUrlPath", Message: "Member name of the base URL value in the service", Default: "baseUrl", Required: true},
		{Kind: prompt.Confirm, Name: "modelFactory", Message: "Generate a ModelFactory for creating empty models?", Default: false},
	}
}

func (*Dialect) BuildProfile(options map[string]any, answers prompt.Answers) error {
	options["moduleName"] = answers.String("module")
	options["baseUrl"] = map[string]any{
		"type":     answers.String("baseUrlType"),
		"provider": answers.String("baseUrlProvider"),
		"path":     splitPath(answers.String("baseUrlPath")),
	}
	options["namespaces"] = map[string]any{
		"services": answers.String("servicesns"),
		"models":   answers.String("modelsns"),
	}
	options["references"] = []string{}
	options["modelFactory"] = answers.Bool("modelFactory")
	return nil
}

func (*Dialect) Validate(options map[string]any) error {
	if err := profile.RequireGroup(options, "namespaces"); err != nil {
		return errors.WithHint(err, "specify an 'options.namespaces' section in your profile")
	}
	for _, key := range []string{"namespaces.services", "namespaces.models"} {
		if err := profile.RequireString(options, key); err != nil {
			return errors.WithHint(err, "specify namespaces for services and models under 'options.namespaces' using keys 'services' and 'models'")
		}
	}
	if err := profile.RequireGroup(options, "baseUrl"); err != nil {
		return err
	}
	if err := profile.RequireString(options, "baseUrl.type"); err != nil {
		return err
	}
	_, err := decodeOptions(options)
	return err
}
