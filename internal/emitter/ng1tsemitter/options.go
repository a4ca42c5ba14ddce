package ng1tsemitter

import (
	"strings"

	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
)

// Options configures the ng1-typescript dialect.
type Options struct {
	// ModuleName is the AngularJS module the services register with.
	// Registration is skipped when empty.
	ModuleName    string     `mapstructure:"moduleName"`
	ServiceSuffix string     `mapstructure:"serviceSuffix"`
	BaseURL       BaseURL    `mapstructure:"baseUrl"`
	Namespaces    Namespaces `mapstructure:"namespaces"`
	// References are emitted as triple-slash reference paths.
	References         []string `mapstructure:"references"`
	ModelFactory       bool     `mapstructure:"modelFactory"`
	GenerateInterfaces *bool    `mapstructure:"generateInterfaces"`
}

// BaseURL locates the base URL at runtime: an injectable Provider of
// TypeScript type Type, and a member Path on it.
type BaseURL struct {
	Type     string   `mapstructure:"type"`
	Provider string   `mapstructure:"provider"`
	Path     []string `mapstructure:"path"`
}

// Namespaces are the TypeScript namespaces for services and models.
type Namespaces struct {
	Services string `mapstructure:"services"`
	Models   string `mapstructure:"models"`
}

func decodeOptions(options map[string]any) (*Options, error) {
	opts := &Options{}
	if err := profile.DecodeOptions(options, opts); err != nil {
		return nil, err
	}
	if opts.ServiceSuffix == "" {
		opts.ServiceSuffix = "Client"
	}
	var path []string
	for _, p := range opts.BaseURL.Path {
		path = append(path, splitPath(p)...)
	}
	opts.BaseURL.Path = path
	return opts, nil
}

// splitPath splits a dotted member path, dropping empty parts.
func splitPath(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ".") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (o *Options) interfaces() bool {
	return o.GenerateInterfaces == nil || *o.GenerateInterfaces
}

// provider is the injected name of the base URL service. It defaults to
// the camelized type name.
func (o *Options) provider() string {
	if o.BaseURL.Provider != "" {
		return o.BaseURL.Provider
	}
	return naming.Camelize(o.BaseURL.Type)
}

// baseURLExpr reads the base URL from the injected provider.
func (o *Options) baseURLExpr() string {
	return strings.Join(append([]string{o.provider()}, o.BaseURL.Path...), ".")
}
