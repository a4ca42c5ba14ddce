// Package emittertest provides definitions shared by the dialect tests.
package emittertest

import "github.com/mark3labs/swagen/internal/definition"

// Petstore returns a small definition exercising every parameter kind,
// arrays, enums, model references and declared response order.
func Petstore() *definition.Definition {
	pet := definition.NewModel()
	pet.Set("id", definition.PrimitiveOf(definition.Integer, ""))
	pet.Set("name", definition.PrimitiveOf(definition.String, "").AsRequired())
	pet.Set("status", definition.EnumOf("PetStatus"))
	pet.Set("tags", definition.ComplexOf("Tag").AsArray())
	pet.Set("owner", definition.ComplexOf("Owner"))
	pet.Set("born", definition.PrimitiveOf(definition.String, definition.SubTypeDateTime))
	pet.Set("vaccinated", definition.PrimitiveOf(definition.Boolean, ""))

	tag := definition.NewModel()
	tag.Set("id", definition.PrimitiveOf(definition.Integer, ""))
	tag.Set("label", definition.PrimitiveOf(definition.String, ""))

	owner := definition.NewModel()
	owner.Set("name", definition.PrimitiveOf(definition.String, "").AsRequired())
	owner.Set("pets", definition.ComplexOf("Pet").AsArray())

	getPet := definition.NewResponses()
	getPet.Set("200", &definition.Response{DataType: definition.ComplexOf("Pet"), Description: "successful operation"})
	getPet.Set("404", &definition.Response{Description: "Pet not found"})

	findPets := definition.NewResponses()
	findPets.Set("200", &definition.Response{DataType: definition.ComplexOf("Pet").AsArray()})

	addPet := definition.NewResponses()
	addPet.Set("405", &definition.Response{Description: "Invalid input"})

	upload := definition.NewResponses()
	upload.Set("200", &definition.Response{DataType: definition.PrimitiveOf(definition.Object, "")})

	return &definition.Definition{
		Metadata: definition.Metadata{
			Title:   "Petstore",
			Version: "1.0.0",
			BaseURL: "https://petstore.example.com/v1",
		},
		Services: map[string]definition.Service{
			"pet": {
				"getPetById": {
					Path:        "/pet/{petId}",
					Verb:        "get",
					Description: "Find pet by ID",
					Parameters: []*definition.Parameter{
						{Name: "petId", Kind: definition.InPath, Required: true, DataType: definition.PrimitiveOf(definition.Integer, ""), Description: "ID of pet to return"},
						{Name: "X-Request-Id", Kind: definition.InHeader, DataType: definition.PrimitiveOf(definition.String, definition.SubTypeUUID)},
					},
					Responses: getPet,
				},
				"findPetsByStatus": {
					Path: "/pet/findByStatus",
					Verb: "get",
					Parameters: []*definition.Parameter{
						{Name: "status", Kind: definition.InQuery, DataType: definition.EnumOf("PetStatus")},
						{Name: "limit", Kind: definition.InQuery, DataType: definition.PrimitiveOf(definition.Integer, "")},
					},
					Responses: findPets,
				},
				"addPet": {
					Path: "/pet",
					Verb: "post",
					Parameters: []*definition.Parameter{
						{Name: "body", Kind: definition.InBody, Required: true, DataType: definition.ComplexOf("Pet")},
					},
					Responses: addPet,
				},
				"uploadFile": {
					Path: "/pet/{petId}/uploadImage",
					Verb: "post",
					Parameters: []*definition.Parameter{
						{Name: "petId", Kind: definition.InPath, Required: true, DataType: definition.PrimitiveOf(definition.Integer, "")},
						{Name: "file", Kind: definition.InFormData, DataType: definition.PrimitiveOf(definition.File, "")},
					},
					Responses: upload,
				},
			},
			"store": {
				"getInventory": {
					Path:         "/store/inventory",
					Verb:         "get",
					Description:  "Returns pet inventories by status",
					Description2: "Returns a map of status codes to quantities",
				},
			},
		},
		Models: map[string]*definition.Model{
			"Pet":   pet,
			"Tag":   tag,
			"Owner": owner,
		},
		Enums: map[string][]string{
			"PetStatus": {"available", "pending", "sold"},
		},
	}
}

// Quirky extends Petstore with a path, wire names and enum literals that
// need escaping inside string literals.
func Quirky() *definition.Definition {
	def := Petstore()
	def.Enums["Mood"] = []string{"it's", `a\b`}
	def.Models["Pet"].Set("mood", definition.EnumOf("Mood"))
	def.Services["quirk"] = definition.Service{
		"getQuirk": {
			Path: "/a'b/{id}",
			Verb: "post",
			Parameters: []*definition.Parameter{
				{Name: "id", Kind: definition.InPath, Required: true, DataType: definition.PrimitiveOf(definition.String, "")},
				{Name: "x-it's", Kind: definition.InHeader, DataType: definition.PrimitiveOf(definition.String, "")},
				{Name: `f\eld`, Kind: definition.InFormData, DataType: definition.PrimitiveOf(definition.String, "")},
			},
			Responses: definition.NewResponses(),
		},
	}
	return def
}
