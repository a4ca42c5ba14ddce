package generator

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/emitter/emittertest"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/prompt"
)

type fakeDialect struct {
	name        string
	validateErr error
	generate    func(w *codewriter.Writer) error
	called      bool
}

func (f *fakeDialect) Name() string                      { return f.name }
func (f *fakeDialect) Description() string               { return "fake" }
func (f *fakeDialect) Language() string                  { return "text" }
func (f *fakeDialect) Extension() string                 { return ".txt" }
func (f *fakeDialect) Prompts() []prompt.Question        { return nil }
func (f *fakeDialect) DefaultTransforms() naming.Table   { return naming.Table{} }
func (f *fakeDialect) WriterOptions() codewriter.Options { return codewriter.TypeScript }

func (f *fakeDialect) BuildProfile(options map[string]any, _ prompt.Answers) error {
	options["ok"] = true
	return nil
}

func (f *fakeDialect) Validate(map[string]any) error { return f.validateErr }

func (f *fakeDialect) Generate(w *codewriter.Writer, _ *definition.Definition, _ *profile.Profile, _ naming.Table) error {
	f.called = true
	if f.generate != nil {
		return f.generate(w)
	}
	w.Line("generated")
	return nil
}

func validOptions() map[string]map[string]any {
	return map[string]map[string]any{
		"ng1-typescript": {
			"namespaces": map[string]any{"services": "Api.Services", "models": "Api.Models"},
			"baseUrl":    map[string]any{"type": "Config", "path": []any{"baseUrl"}},
		},
		"ng1-javascript": {
			"module":  "app",
			"baseUrl": map[string]any{"provider": "config"},
		},
		"ng-typescript": {
			"generation": map[string]any{"generateImplementations": true},
			"baseUrl":    map[string]any{"strategy": "Swagger"},
		},
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	var names []string
	for _, d := range r.Dialects() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"ng-typescript", "ng1-javascript", "ng1-typescript"}, names)
	assert.Equal(t, []string{"ng1-ts"}, r.Aliases("ng1-typescript"))
	assert.Equal(t, []string{"ng-ts"}, r.Aliases("ng-typescript"))
	assert.Equal(t, "ng1-typescript", r.DefaultMode())
}

func TestLookup(t *testing.T) {
	r := DefaultRegistry()

	d, err := r.Lookup("ng-ts")
	require.NoError(t, err)
	assert.Equal(t, "ng-typescript", d.Name())

	d, err = r.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, d.Name())

	_, err = r.Lookup("react")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.Contains(t, err.Error(), `"react"`)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestRegisterTwicePanics(t *testing.T) {
	r := NewRegistry("a")
	r.Register(&fakeDialect{name: "a"}, "x")
	assert.Panics(t, func() { r.Register(&fakeDialect{name: "a"}) })
	assert.Panics(t, func() { r.Register(&fakeDialect{name: "b"}, "x") })
	assert.Panics(t, func() { r.Register(&fakeDialect{name: "x"}) })
}

func TestGenerateToChecksBeforeWriting(t *testing.T) {
	invalid := emittertest.Petstore()
	invalid.Enums["Empty"] = nil

	cases := map[string]struct {
		dialect *fakeDialect
		def     *definition.Definition
		profile *profile.Profile
		target  any
	}{
		"invalid options": {
			dialect: &fakeDialect{name: "fake", validateErr: &profile.ConfigError{Field: "options.x", Message: "missing"}},
			def:     emittertest.Petstore(),
			profile: &profile.Profile{Mode: "fake", Options: map[string]any{}},
			target:  new(*profile.ConfigError),
		},
		"no options": {
			dialect: &fakeDialect{name: "fake"},
			def:     emittertest.Petstore(),
			profile: &profile.Profile{Mode: "fake"},
			target:  new(*profile.ConfigError),
		},
		"bad transform": {
			dialect: &fakeDialect{name: "fake"},
			def:     emittertest.Petstore(),
			profile: &profile.Profile{
				Mode:       "fake",
				Options:    map[string]any{},
				Transforms: map[string][]string{"serviceName": {"shout"}},
			},
			target: new(*profile.ConfigError),
		},
		"invalid definition": {
			dialect: &fakeDialect{name: "fake"},
			def:     invalid,
			profile: &profile.Profile{Mode: "fake", Options: map[string]any{}},
			target:  new(*definition.SchemaError),
		},
		"no definition": {
			dialect: &fakeDialect{name: "fake"},
			profile: &profile.Profile{Mode: "fake", Options: map[string]any{}},
			target:  new(*definition.SchemaError),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewRegistry("fake")
			r.Register(tc.dialect)
			w := codewriter.New(codewriter.TypeScript)

			err := r.GenerateTo(w, tc.def, tc.profile)
			require.Error(t, err)
			assert.True(t, errors.As(err, tc.target), "got %v", err)
			assert.False(t, tc.dialect.called)
			assert.Zero(t, w.Len())
		})
	}
}

func TestBadTransformNamesCategory(t *testing.T) {
	r := NewRegistry("fake")
	r.Register(&fakeDialect{name: "fake"})
	_, err := r.Generate(emittertest.Petstore(), &profile.Profile{
		Mode:       "fake",
		Options:    map[string]any{},
		Transforms: map[string][]string{"modelName": {"shout"}},
	})
	var ce *profile.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "transforms.modelName", ce.Field)
}

func TestContractViolationBecomesError(t *testing.T) {
	r := NewRegistry("fake")
	r.Register(&fakeDialect{name: "fake", generate: func(w *codewriter.Writer) error {
		w.ExitBlock("}")
		return nil
	}})

	out, err := r.Generate(emittertest.Petstore(), &profile.Profile{Mode: "fake", Options: map[string]any{}})
	require.Error(t, err)
	assert.Empty(t, out)
	var ce *codewriter.ContractError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "ExitBlock", ce.Op)
}

func TestGenerateErrorDiscardsOutput(t *testing.T) {
	r := NewRegistry("fake")
	r.Register(&fakeDialect{name: "fake", generate: func(w *codewriter.Writer) error {
		w.Line("partial")
		return errors.New("boom")
	}})

	out, err := r.Generate(emittertest.Petstore(), &profile.Profile{Mode: "fake", Options: map[string]any{}})
	require.EqualError(t, err, "boom")
	assert.Empty(t, out)
}

func TestGenerateBuiltInDialects(t *testing.T) {
	r := DefaultRegistry()
	for mode, options := range validOptions() {
		t.Run(mode, func(t *testing.T) {
			p := &profile.Profile{Mode: mode, Options: options}
			first, err := r.Generate(emittertest.Petstore(), p)
			require.NoError(t, err)
			assert.Contains(t, first, "//     Mode: "+mode+"\n")

			again, err := r.Generate(emittertest.Petstore(), p)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		})
	}
}

func TestGenerateAppliesTransformOverrides(t *testing.T) {
	r := DefaultRegistry()
	p := &profile.Profile{
		Mode:       "ng1-ts",
		Options:    validOptions()["ng1-typescript"],
		Transforms: map[string][]string{"operationName": {"pascal-case"}},
	}
	out, err := r.Generate(emittertest.Petstore(), p)
	require.NoError(t, err)
	assert.Contains(t, out, "public GetPetById(")
	assert.NotContains(t, out, "public getPetById(")
}

func TestBuildProfile(t *testing.T) {
	r := DefaultRegistry()
	answers, err := prompt.Collect(mustLookup(t, r, "ng1-js").Prompts(), prompt.MapAsker{
		"module":          "app",
		"baseUrlProvider": "config",
	})
	require.NoError(t, err)

	p, err := r.BuildProfile("ng1-js", answers)
	require.NoError(t, err)
	assert.Equal(t, "ng1-javascript", p.Mode)
	assert.Equal(t, "app", p.Options["module"])

	_, err = r.BuildProfile("ng1-js", prompt.Answers{})
	var ce *profile.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "options.module", ce.Field)
}

func mustLookup(t *testing.T, r *Registry, mode string) Dialect {
	t.Helper()
	d, err := r.Lookup(mode)
	require.NoError(t, err)
	return d
}

func TestOutputPath(t *testing.T) {
	d := &fakeDialect{name: "fake"}
	assert.Equal(t, "out/api.ts", OutputPath(&profile.Profile{Name: "web", File: "out/api.ts"}, d))
	assert.Equal(t, "web.txt", OutputPath(&profile.Profile{Name: "web"}, d))
	assert.Equal(t, "client.txt", OutputPath(&profile.Profile{}, d))
}
