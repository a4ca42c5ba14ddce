package definition

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PrimitiveKind names a built-in scalar type.
type PrimitiveKind string

const (
	Integer PrimitiveKind = "integer"
	Number  PrimitiveKind = "number"
	String  PrimitiveKind = "string"
	Boolean PrimitiveKind = "boolean"
	File    PrimitiveKind = "file"
	Object  PrimitiveKind = "object"
)

// Known string sub types.
const (
	SubTypeDateTime = "date-time"
	SubTypeUUID     = "uuid"
	SubTypeByte     = "byte"
)

// Type is the populated variant of a Descriptor. It is sealed: the only
// implementations are Primitive, ModelRef and EnumRef.
type Type interface {
	isType()
}

// Primitive is a scalar type, optionally refined by SubType.
type Primitive struct {
	Kind    PrimitiveKind
	SubType string
}

// ModelRef references an entry of Definition.Models.
type ModelRef struct {
	Name string
}

// EnumRef references an entry of Definition.Enums.
type EnumRef struct {
	Name string
}

func (Primitive) isType() {}
func (ModelRef) isType()  {}
func (EnumRef) isType()   {}

// Descriptor describes the type of a property, parameter or response.
type Descriptor struct {
	Type     Type
	IsArray  bool
	Required bool
}

// PrimitiveOf returns a descriptor for a primitive kind.
func PrimitiveOf(kind PrimitiveKind, subType string) *Descriptor {
	return &Descriptor{Type: Primitive{Kind: kind, SubType: subType}}
}

// ComplexOf returns a descriptor referencing a model.
func ComplexOf(model string) *Descriptor {
	return &Descriptor{Type: ModelRef{Name: model}}
}

// EnumOf returns a descriptor referencing an enum.
func EnumOf(name string) *Descriptor {
	return &Descriptor{Type: EnumRef{Name: name}}
}

// AsArray marks the descriptor as an array and returns it.
func (d *Descriptor) AsArray() *Descriptor {
	d.IsArray = true
	return d
}

// AsRequired marks the descriptor as required and returns it.
func (d *Descriptor) AsRequired() *Descriptor {
	d.Required = true
	return d
}

func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	var b strings.Builder
	switch t := d.Type.(type) {
	case Primitive:
		b.WriteString("primitive:")
		b.WriteString(string(t.Kind))
		if t.SubType != "" {
			b.WriteString("(" + t.SubType + ")")
		}
	case ModelRef:
		b.WriteString("complex:" + t.Name)
	case EnumRef:
		b.WriteString("enum:" + t.Name)
	default:
		b.WriteString("untyped")
	}
	if d.IsArray {
		b.WriteString("[]")
	}
	return b.String()
}

// rawDescriptor is the wire shape: a loose object where exactly one of
// primitive, complex or enum must be set.
type rawDescriptor struct {
	Primitive string `json:"primitive" yaml:"primitive"`
	SubType   string `json:"subType" yaml:"subType"`
	Complex   string `json:"complex" yaml:"complex"`
	Enum      string `json:"enum" yaml:"enum"`
	IsArray   bool   `json:"isArray" yaml:"isArray"`
	Required  bool   `json:"required" yaml:"required"`
}

func (r rawDescriptor) build() (*Descriptor, error) {
	var set []string
	if r.Primitive != "" {
		set = append(set, "primitive")
	}
	if r.Complex != "" {
		set = append(set, "complex")
	}
	if r.Enum != "" {
		set = append(set, "enum")
	}
	if len(set) != 1 {
		detail := "descriptor must set exactly one of primitive, complex or enum"
		if len(set) > 1 {
			detail = fmt.Sprintf("%s (got %s)", detail, strings.Join(set, ", "))
		}
		return nil, &SchemaError{Subject: "descriptor", Detail: fmt.Sprintf("%s: %+v", detail, r)}
	}

	d := &Descriptor{IsArray: r.IsArray, Required: r.Required}
	switch set[0] {
	case "primitive":
		d.Type = Primitive{Kind: PrimitiveKind(r.Primitive), SubType: r.SubType}
	case "complex":
		d.Type = ModelRef{Name: r.Complex}
	case "enum":
		d.Type = EnumRef{Name: r.Enum}
	}
	return d, nil
}

// UnmarshalJSON rejects descriptors with zero or several variants set.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw rawDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	built, err := raw.build()
	if err != nil {
		return err
	}
	*d = *built
	return nil
}

// UnmarshalYAML rejects descriptors with zero or several variants set.
func (d *Descriptor) UnmarshalYAML(value *yaml.Node) error {
	var raw rawDescriptor
	if err := value.Decode(&raw); err != nil {
		return err
	}
	built, err := raw.build()
	if err != nil {
		if se, ok := err.(*SchemaError); ok {
			se.Subject = fmt.Sprintf("descriptor at line %d", value.Line)
		}
		return err
	}
	*d = *built
	return nil
}
