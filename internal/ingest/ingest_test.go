package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagen/internal/definition"
)

func loadPetstore(t *testing.T, opts ...BuildOption) *definition.Definition {
	t.Helper()
	doc, err := Load(context.Background(), filepath.Join("testdata", "petstore.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Version)
	def, err := ToDefinition(doc, opts...)
	require.NoError(t, err)
	return def
}

func modelKeys(m *definition.Model) []string {
	var out []string
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func responseKeys(r *definition.Responses) []string {
	var out []string
	for pair := r.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func paramNames(params []*definition.Parameter) []string {
	var out []string
	for _, p := range params {
		out = append(out, string(p.Kind)+":"+p.Name)
	}
	return out
}

func TestToDefinitionMetadataAndServices(t *testing.T) {
	def := loadPetstore(t)

	assert.Equal(t, definition.Metadata{
		Title:       "Petstore",
		Description: "A sample API",
		Version:     "1.0.0",
		BaseURL:     "https://petstore.example.com/v1",
	}, def.Metadata)
	assert.Equal(t, []string{"default", "pet"}, def.ServiceNames())
	assert.Equal(t, []string{"addPet", "findPetsByStatus", "getPetById", "uploadFile"}, def.Services["pet"].OperationNames())
	assert.Equal(t, []string{"getHealth"}, def.Services[DefaultService].OperationNames())
}

func TestToDefinitionOperation(t *testing.T) {
	def := loadPetstore(t)
	op := def.Services["pet"]["getPetById"]

	assert.Equal(t, "/pet/{petId}", op.Path)
	assert.Equal(t, "get", op.Verb)
	assert.Equal(t, "Find pet by ID", op.Description)
	assert.Equal(t, "Returns a single pet", op.Description2)
	assert.Equal(t, []string{"path:petId", "header:X-Request-Id"}, paramNames(op.Parameters))
	assert.True(t, op.Parameters[0].Required)
	assert.Equal(t, "ID of pet", op.Parameters[0].Description)
	assert.Equal(t, "primitive:string(uuid)", op.Parameters[1].DataType.String())

	assert.Equal(t, []string{"404", "200"}, responseKeys(op.Responses))
	ok, _ := op.Responses.Get("200")
	require.NotNil(t, ok.DataType)
	assert.Equal(t, "complex:Pet", ok.DataType.String())
	missing, _ := op.Responses.Get("404")
	assert.Nil(t, missing.DataType)
	assert.Equal(t, "Pet not found", missing.Description)
}

func TestToDefinitionBodies(t *testing.T) {
	def := loadPetstore(t)

	add := def.Services["pet"]["addPet"]
	require.Len(t, add.Parameters, 1)
	body := add.Body()
	require.NotNil(t, body)
	assert.Equal(t, "body", body.Name)
	assert.True(t, body.Required)
	assert.Equal(t, "complex:Pet", body.DataType.String())

	upload := def.Services["pet"]["uploadFile"]
	assert.Equal(t, []string{"path:petId", "formData:metadata", "formData:file"}, paramNames(upload.Parameters))
	assert.Equal(t, "Additional data", upload.Parameters[1].Description)
	assert.Equal(t, "primitive:file", upload.Parameters[2].DataType.String())
}

func TestToDefinitionModels(t *testing.T) {
	def := loadPetstore(t)

	assert.Equal(t, []string{"Category", "Pet", "Tag"}, def.ModelNames())
	pet := def.Models["Pet"]
	assert.Equal(t, []string{"name", "id", "status", "category", "tags", "kind", "code", "born"}, modelKeys(pet))

	name, _ := pet.Get("name")
	assert.True(t, name.Required)
	status, _ := pet.Get("status")
	assert.Equal(t, "enum:StatusPet", status.String())
	tags, _ := pet.Get("tags")
	assert.Equal(t, "complex:Tag[]", tags.String())
	kind, _ := pet.Get("kind")
	assert.Equal(t, "enum:Kind", kind.String())
	code, _ := pet.Get("code")
	assert.Equal(t, "primitive:string(uuid)", code.String())
	born, _ := pet.Get("born")
	assert.Equal(t, "primitive:string(date-time)", born.String())

	assert.Equal(t, []string{"id", "name", "color"}, modelKeys(def.Models["Tag"]))

	assert.Equal(t, []string{"Kind", "StatusFindPetsByStatus", "StatusPet"}, def.EnumNames())
	assert.Equal(t, []string{"available", "pending", "sold"}, def.Enums["StatusPet"])

	status2 := def.Services["pet"]["findPetsByStatus"].Parameters[0]
	assert.Equal(t, "enum:StatusFindPetsByStatus[]", status2.DataType.String())
}

func TestToDefinitionTagFilters(t *testing.T) {
	def := loadPetstore(t, WithExcludeTags([]string{"admin"}))
	assert.NotContains(t, def.Services["pet"], "addPet")

	def = loadPetstore(t, WithIncludeTags([]string{"pet", " "}))
	assert.Equal(t, []string{"pet"}, def.ServiceNames())
}

func TestSwagger2IsConverted(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "store.v2.json"))
	require.NoError(t, err)
	doc, err := LoadData(context.Background(), raw, "")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Version)

	def, err := ToDefinition(doc)
	require.NoError(t, err)
	assert.Equal(t, "https://store.example.com/api", def.Metadata.BaseURL)
	assert.Equal(t, []string{"store"}, def.ServiceNames())
	assert.Equal(t, []string{"quantity", "id", "shipDate", "state"}, modelKeys(def.Models["Order"]))

	get := def.Services["store"]["getOrder"]
	assert.Equal(t, []string{"200", "404"}, responseKeys(get.Responses))

	place := def.Services["store"]["placeOrder"]
	body := place.Body()
	require.NotNil(t, body)
	assert.True(t, body.Required)
	assert.Equal(t, "complex:Order", body.DataType.String())
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	cases := map[string]struct {
		input string
		code  ErrorCode
	}{
		"empty":              {"  ", InputError},
		"file url":           {"file:///etc/hosts", InputError},
		"unsupported scheme": {"ftp://example.com/spec.yaml", InputError},
		"missing file":       {filepath.Join("testdata", "missing.yaml"), InputError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(ctx, tc.input)
			var le *LoadError
			require.True(t, errors.As(err, &le), "got %v", err)
			assert.Equal(t, tc.code, le.Code)
		})
	}
}

func TestLoadDataRejectsUnknownVersion(t *testing.T) {
	_, err := LoadData(context.Background(), []byte("title: not an api\n"), "inline")
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ParseError, le.Code)
	assert.Equal(t, "inline", le.Location)
}

func TestLoadRetriesTransientFailures(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "petstore.yaml"))
	require.NoError(t, err)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), srv.URL+"/openapi.yaml", WithBackoffBase(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "Petstore", doc.Info.Title)
}

func TestLoadDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL+"/openapi.yaml", WithBackoffBase(time.Millisecond))
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, NetworkError, le.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestKeyOrder(t *testing.T) {
	order := readKeyOrder([]byte("paths:\n  /a/b:\n    get:\n      responses:\n        '500': {}\n        '200': {}\n"))
	got := order.sorted([]string{"200", "default", "500"}, "paths", "/a/b", "get", "responses")
	assert.Equal(t, []string{"500", "200", "default"}, got)
	assert.Equal(t, []string{"x", "y"}, keyOrder(nil).sorted([]string{"y", "x"}, "nothing"))
}
