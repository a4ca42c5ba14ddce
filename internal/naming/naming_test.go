package naming

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	assert.Equal(t, "PetStore", Apply("petStore", PascalCase))
	assert.Equal(t, "petStore", Apply("PetStore", CamelCase))
	assert.Equal(t, "pet_store", Apply("pet_store", None))
	assert.Equal(t, "Éclair", Apply("éclair", PascalCase))
	assert.Equal(t, "", Apply("", PascalCase))
}

func TestApplyIsIdempotent(t *testing.T) {
	ids := []string{"a", "A", "getPetById", "GetPetById", "_private", "1st", "x-y", "ÅngstromUnit"}
	for _, id := range ids {
		for _, tr := range []Transform{PascalCase, CamelCase, None} {
			once := Apply(id, tr)
			assert.Equal(t, once, Apply(once, tr), "%s(%s)", tr, id)
		}
	}
}

func TestTableMergeAndApply(t *testing.T) {
	defaults := Table{
		ServiceName: {CamelCase},
		ModelName:   {PascalCase},
	}
	merged := defaults.Merge(Table{ServiceName: {PascalCase}})
	assert.Equal(t, "PetStore", merged.Apply(ServiceName, "petStore"))
	assert.Equal(t, "Pet", merged.Apply(ModelName, "pet"))
	assert.Equal(t, "raw_name", merged.Apply(PropertyName, "raw_name"))
	assert.Equal(t, []Transform{CamelCase}, defaults[ServiceName], "merge must not mutate the receiver")
}

func TestParseTable(t *testing.T) {
	table, err := ParseTable(map[string][]string{
		"modelName":    {"pascal-case"},
		"propertyName": {"none", "camel-case"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Transform{None, CamelCase}, table[PropertyName])

	_, err = ParseTable(map[string][]string{"modelName": {"kebab-case"}})
	var ue *UnknownError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "modelName", ue.Category)
	assert.Equal(t, "kebab-case", ue.Name)

	_, err = ParseTable(map[string][]string{"fieldName": {"none"}})
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "", ue.Name)
}

func TestCamelize(t *testing.T) {
	assert.Equal(t, "petStoreApi", Camelize("pet-store api"))
	assert.Equal(t, "myModule", Camelize("MyModule"))
	assert.Equal(t, "apiBaseUrl", Camelize("api.baseUrl"))
	assert.Equal(t, "", Camelize("--"))
}
