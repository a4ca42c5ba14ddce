package ngtsemitter

import (
	"github.com/cockroachdb/errors"

	"github.com/mark3labs/swagen/internal/profile"
)

// Base URL strategies.
const (
	ImportedVar   = "ImportedVar"
	Property      = "Property"
	InjectedToken = "InjectedToken"
	Swagger       = "Swagger"
)

// Options configures the ng-typescript dialect.
type Options struct {
	Generation    Generation     `mapstructure:"generation"`
	BaseURL       BaseURL        `mapstructure:"baseUrl"`
	Angular       Angular        `mapstructure:"angular"`
	Customization *Customization `mapstructure:"customization"`
}

// Generation selects what is emitted.
type Generation struct {
	GenerateInterfaces      bool `mapstructure:"generateInterfaces"`
	GenerateImplementations bool `mapstructure:"generateImplementations"`
}

// BaseURL selects how a client finds its base URL. OverrideURL replaces
// the URL declared by the definition as the fallback.
type BaseURL struct {
	Strategy    string             `mapstructure:"strategy"`
	OverrideURL string             `mapstructure:"overrideUrl"`
	ImportedVar ImportedVarOptions `mapstructure:"importedVar"`
	Property    string             `mapstructure:"property"`
}

// ImportedVarOptions imports the base URL from a module variable.
type ImportedVarOptions struct {
	ImportFrom     string `mapstructure:"importFrom"`
	ImportVariable string `mapstructure:"importVariable"`
	Property       string `mapstructure:"property"`
}

// Angular holds framework choices.
type Angular struct {
	HTTPFramework string `mapstructure:"httpFramework"`
	TokenType     string `mapstructure:"tokenType"`
	FuturesType   string `mapstructure:"futuresType"`
}

// Customization imports a variable whose httpOptions are merged into every
// request.
type Customization struct {
	ImportFrom     string `mapstructure:"importFrom"`
	ImportVariable string `mapstructure:"importVariable"`
}

func decodeOptions(options map[string]any) (*Options, error) {
	opts := &Options{}
	if err := profile.DecodeOptions(options, opts); err != nil {
		return nil, err
	}
	if opts.Angular.HTTPFramework == "" {
		opts.Angular.HTTPFramework = "HttpClient"
	}
	if opts.Angular.TokenType == "" {
		opts.Angular.TokenType = "InjectedToken"
	}
	if opts.Angular.FuturesType == "" {
		opts.Angular.FuturesType = "Observables"
	}
	if opts.BaseURL.Property == "" {
		opts.BaseURL.Property = "baseUrl"
	}
	return opts, nil
}

func validate(options map[string]any) error {
	if err := profile.RequireGroup(options, "generation"); err != nil {
		return err
	}
	if err := profile.RequireGroup(options, "baseUrl"); err != nil {
		return err
	}
	if err := profile.RequireOneOf(options, "baseUrl.strategy", ImportedVar, Property, InjectedToken, Swagger); err != nil {
		return err
	}

	opts, err := decodeOptions(options)
	if err != nil {
		return err
	}
	if !opts.Generation.GenerateInterfaces && !opts.Generation.GenerateImplementations {
		return errors.WithHint(
			&profile.ConfigError{Field: "options.generation", Message: "nothing to generate"},
			"enable generateInterfaces, generateImplementations or both",
		)
	}

	switch opts.BaseURL.Strategy {
	case ImportedVar:
		for _, key := range []string{"baseUrl.importedVar.importFrom", "baseUrl.importedVar.importVariable"} {
			if err := profile.RequireString(options, key); err != nil {
				return err
			}
		}
	case Property:
		if _, ok := profile.Lookup(options, "baseUrl.property"); ok {
			if err := profile.RequireString(options, "baseUrl.property"); err != nil {
				return err
			}
		}
	}

	if _, ok := profile.Group(options, "angular"); ok {
		checks := []struct {
			path    string
			allowed []string
		}{
			{"angular.httpFramework", []string{"HttpClient"}},
			{"angular.tokenType", []string{"InjectedToken", "OpaqueToken"}},
			{"angular.futuresType", []string{"Observables", "Promises"}},
		}
		for _, c := range checks {
			if _, set := profile.Lookup(options, c.path); !set {
				continue
			}
			if err := profile.RequireOneOf(options, c.path, c.allowed...); err != nil {
				return err
			}
		}
	}

	if _, ok := profile.Lookup(options, "customization"); ok {
		for _, key := range []string{"customization.importFrom", "customization.importVariable"} {
			if err := profile.RequireString(options, key); err != nil {
				return err
			}
		}
	}
	return nil
}
