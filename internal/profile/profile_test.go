package profile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagen/internal/naming"
)

func TestLoadYAML(t *testing.T) {
	set, err := Load(filepath.Join("testdata", "swagen.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy", "petstore"}, set.Names())

	p := set["petstore"]
	assert.Equal(t, "petstore", p.Name)
	assert.Equal(t, "ng1-ts", p.Mode)
	assert.Equal(t, []string{"pascal-case"}, p.Transforms["modelName"])
	require.NoError(t, RequireGroup(p.Options, "namespaces"))
	require.NoError(t, RequireString(p.Options, "namespaces.services"))

	v, ok := Lookup(p.Options, "baseUrl.path")
	require.True(t, ok)
	assert.Equal(t, []any{"api", "url"}, v)
}

func TestLoadTOML(t *testing.T) {
	set, err := Load(filepath.Join("testdata", "swagen.toml"))
	require.NoError(t, err)
	p := set["petstore"]
	require.NotNil(t, p)
	assert.Equal(t, "ng-typescript", p.Mode)
	require.NoError(t, RequireOneOf(p.Options, "baseUrl.strategy", "ImportedVar", "Property", "InjectedToken", "Swagger"))
	v, ok := Lookup(p.Options, "generation.generateInterfaces")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestLoadJSONAndDecodeOptions(t *testing.T) {
	set, err := Load(filepath.Join("testdata", "swagen.json"))
	require.NoError(t, err)

	var opts struct {
		Module  string `mapstructure:"module"`
		BaseURL struct {
			Provider string `mapstructure:"provider"`
			Path     string `mapstructure:"path"`
		} `mapstructure:"baseUrl"`
		TSCheck bool `mapstructure:"tsCheck"`
	}
	require.NoError(t, DecodeOptions(set["petstore"].Options, &opts))
	assert.Equal(t, "app", opts.Module)
	assert.Equal(t, "config", opts.BaseURL.Provider)
	assert.True(t, opts.TSCheck)
}

func TestRequireErrorsNameTheField(t *testing.T) {
	options := map[string]any{"namespaces": map[string]any{"services": ""}, "quotes": "backtick"}

	err := RequireGroup(options, "baseUrl")
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "options.baseUrl", ce.Field)

	err = RequireString(options, "namespaces.services")
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "options.namespaces.services", ce.Field)

	err = RequireOneOf(options, "quotes", "single", "double")
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Error(), `got "backtick"`)
}

func TestSelect(t *testing.T) {
	set := Set{"a": {Name: "a"}, "b": {Name: "b"}}
	all, err := set.Select()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)

	_, err = set.Select("c")
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
}

func TestNamingTable(t *testing.T) {
	defaults := naming.Table{naming.ModelName: {naming.PascalCase}, naming.ServiceName: {naming.CamelCase}}
	p := &Profile{Transforms: map[string][]string{"serviceName": {"none"}}}
	table, err := p.NamingTable(defaults)
	require.NoError(t, err)
	assert.Equal(t, []naming.Transform{naming.None}, table[naming.ServiceName])
	assert.Equal(t, []naming.Transform{naming.PascalCase}, table[naming.ModelName])

	p.Transforms = map[string][]string{"modelName": {"snake-case"}}
	_, err = p.NamingTable(defaults)
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "transforms.modelName", ce.Field)
}

func TestMarshalRoundTrip(t *testing.T) {
	set := Set{"one": {Mode: "ng1-javascript", File: "x.js", Options: map[string]any{"module": "m"}}}
	for _, ext := range []string{".yaml", ".json", ".toml"} {
		data, err := Marshal(set, ext)
		require.NoError(t, err, ext)
		back, err := Parse(data, ext)
		require.NoError(t, err, ext)
		require.Contains(t, back, "one", ext)
		assert.Equal(t, "ng1-javascript", back["one"].Mode, ext)
		assert.Equal(t, "m", back["one"].Options["module"], ext)
	}
}
