package generator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/prompt"
)

// ErrUnknownMode is returned, wrapped with the requested mode, when no
// dialect is registered under a name.
var ErrUnknownMode = errors.New("unknown mode")

// Registry maps mode names and aliases to dialects.
type Registry struct {
	mu          sync.RWMutex
	dialects    map[string]Dialect
	aliases     map[string]string
	defaultMode string
}

// NewRegistry returns an empty registry. defaultMode is used when a
// profile names no mode.
func NewRegistry(defaultMode string) *Registry {
	return &Registry{
		dialects:    map[string]Dialect{},
		aliases:     map[string]string{},
		defaultMode: defaultMode,
	}
}

// Register adds d under its name and the given aliases. Registering a name
// twice panics.
func (r *Registry) Register(d Dialect, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range append([]string{d.Name()}, aliases...) {
		if _, dup := r.dialects[name]; dup {
			panic(fmt.Sprintf("generator: mode %q registered twice", name))
		}
		if _, dup := r.aliases[name]; dup {
			panic(fmt.Sprintf("generator: mode %q registered twice", name))
		}
	}
	r.dialects[d.Name()] = d
	for _, a := range aliases {
		r.aliases[a] = d.Name()
	}
}

// DefaultMode returns the mode used when none is requested.
func (r *Registry) DefaultMode() string { return r.defaultMode }

// Lookup resolves a mode name or alias. An empty mode selects the default.
func (r *Registry) Lookup(mode string) (Dialect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if mode == "" {
		mode = r.defaultMode
	}
	if canonical, ok := r.aliases[mode]; ok {
		mode = canonical
	}
	d, ok := r.dialects[mode]
	if !ok {
		return nil, errors.WithHint(
			errors.Wrapf(ErrUnknownMode, "%q", mode),
			"run `swagen modes` to list the available modes",
		)
	}
	return d, nil
}

// Dialects returns the registered dialects ordered by name.
func (r *Registry) Dialects() []Dialect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Dialect, 0, len(r.dialects))
	for _, d := range r.dialects {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Aliases returns the aliases of a canonical mode name in lexical order.
func (r *Registry) Aliases(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for alias, target := range r.aliases {
		if target == name {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// Generate runs the dialect selected by p over def and returns the source.
func (r *Registry) Generate(def *definition.Definition, p *profile.Profile) (string, error) {
	d, err := r.Lookup(p.Mode)
	if err != nil {
		return "", err
	}
	w := codewriter.New(d.WriterOptions())
	if err := r.GenerateTo(w, def, p); err != nil {
		return "", err
	}
	return w.String(), nil
}

// GenerateTo is Generate with a caller-owned writer. Options, transforms
// and the definition are all checked before the first write; on error the
// writer content must be discarded.
func (r *Registry) GenerateTo(w *codewriter.Writer, def *definition.Definition, p *profile.Profile) (err error) {
	d, err := r.Lookup(p.Mode)
	if err != nil {
		return err
	}
	if p.Options == nil {
		return &profile.ConfigError{Field: "options", Message: "specify an options section in the profile"}
	}
	if err := d.Validate(p.Options); err != nil {
		return errors.Wrapf(err, "mode %s", d.Name())
	}
	names, err := p.NamingTable(d.DefaultTransforms())
	if err != nil {
		return err
	}
	if def == nil {
		return &definition.SchemaError{Subject: "definition", Detail: "no definition given"}
	}
	if err := def.Validate(); err != nil {
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			ce, ok := rec.(*codewriter.ContractError)
			if !ok {
				panic(rec)
			}
			err = errors.Wrapf(ce, "mode %s", d.Name())
		}
	}()
	return d.Generate(w, def, p, names)
}

// BuildProfile creates a validated profile for mode from answers.
func (r *Registry) BuildProfile(mode string, answers prompt.Answers) (*profile.Profile, error) {
	d, err := r.Lookup(mode)
	if err != nil {
		return nil, err
	}
	options := map[string]any{}
	if err := d.BuildProfile(options, answers); err != nil {
		return nil, err
	}
	if err := d.Validate(options); err != nil {
		return nil, errors.Wrapf(err, "mode %s", d.Name())
	}
	return &profile.Profile{Mode: d.Name(), Options: options}, nil
}

// OutputPath returns where the source for p is written: p.File when set,
// otherwise the profile name with the dialect's extension.
func OutputPath(p *profile.Profile, d Dialect) string {
	if p.File != "" {
		return p.File
	}
	name := p.Name
	if name == "" {
		name = "client"
	}
	return name + d.Extension()
}
