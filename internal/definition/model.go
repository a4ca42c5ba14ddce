// Package definition holds the normalized, schema-agnostic API description
// that every dialect generator consumes.
//
// A Definition is produced by an ingestion step (see internal/ingest) or read
// directly from a JSON/YAML file. Generators treat it as read-only.
package definition

import (
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParameterKind is where an operation parameter travels in the request.
type ParameterKind string

const (
	InPath     ParameterKind = "path"
	InQuery    ParameterKind = "query"
	InBody     ParameterKind = "body"
	InFormData ParameterKind = "formData"
	InHeader   ParameterKind = "header"
)

func (k ParameterKind) valid() bool {
	switch k {
	case InPath, InQuery, InBody, InFormData, InHeader:
		return true
	}
	return false
}

// Definition is the normalized API description.
type Definition struct {
	Metadata Metadata            `json:"metadata" yaml:"metadata"`
	Services map[string]Service  `json:"services" yaml:"services"`
	Models   map[string]*Model   `json:"models" yaml:"models"`
	Enums    map[string][]string `json:"enums" yaml:"enums"`
}

// Metadata describes the API as a whole.
type Metadata struct {
	Title       string `json:"title,omitempty" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Version     string `json:"version,omitempty" yaml:"version"`
	BaseURL     string `json:"baseUrl,omitempty" yaml:"baseUrl"`
}

// Service maps operation names to operations.
type Service map[string]*Operation

// Model maps property names to descriptors in declared order.
type Model = orderedmap.OrderedMap[string, *Descriptor]

// Responses maps status codes to responses in declared order.
type Responses = orderedmap.OrderedMap[string, *Response]

// NewModel returns an empty, ordered model.
func NewModel() *Model { return orderedmap.New[string, *Descriptor]() }

// NewResponses returns an empty, ordered response table.
func NewResponses() *Responses { return orderedmap.New[string, *Response]() }

// Operation is a single callable endpoint.
type Operation struct {
	Path         string       `json:"path" yaml:"path"`
	Verb         string       `json:"verb" yaml:"verb"`
	Parameters   []*Parameter `json:"parameters,omitempty" yaml:"parameters"`
	Responses    *Responses   `json:"responses,omitempty" yaml:"responses"`
	Description  string       `json:"description,omitempty" yaml:"description"`
	Description2 string       `json:"description2,omitempty" yaml:"description2"`
}

// Parameter is one input of an operation.
type Parameter struct {
	Name        string        `json:"name" yaml:"name"`
	Kind        ParameterKind `json:"type" yaml:"type"`
	Required    bool          `json:"required,omitempty" yaml:"required"`
	DataType    *Descriptor   `json:"dataType" yaml:"dataType"`
	Description string        `json:"description,omitempty" yaml:"description"`
}

// Response is the payload declared for one status code. DataType is nil when
// the status carries no body.
type Response struct {
	DataType    *Descriptor `json:"dataType,omitempty" yaml:"dataType"`
	Description string      `json:"description,omitempty" yaml:"description"`
}

// ServiceNames returns service names in lexical order.
func (d *Definition) ServiceNames() []string {
	names := make([]string, 0, len(d.Services))
	for name := range d.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModelNames returns model names ordered case-insensitively.
func (d *Definition) ModelNames() []string {
	names := make([]string, 0, len(d.Models))
	for name := range d.Models {
		names = append(names, name)
	}
	sortFold(names)
	return names
}

// EnumNames returns enum names ordered case-insensitively.
func (d *Definition) EnumNames() []string {
	names := make([]string, 0, len(d.Enums))
	for name := range d.Enums {
		names = append(names, name)
	}
	sortFold(names)
	return names
}

// OperationNames returns the operation names of a service in lexical order.
func (s Service) OperationNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortFold(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}

// ParamsIn returns the parameters of the given kind in declared order.
func (o *Operation) ParamsIn(kind ParameterKind) []*Parameter {
	var out []*Parameter
	for _, p := range o.Parameters {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Body returns the body parameter, or nil.
func (o *Operation) Body() *Parameter {
	for _, p := range o.Parameters {
		if p.Kind == InBody {
			return p
		}
	}
	return nil
}

// RequiredParams returns the required parameters in declared order.
func (o *Operation) RequiredParams() []*Parameter {
	var out []*Parameter
	for _, p := range o.Parameters {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}

// OrderedParams returns required parameters first, then optional ones, each
// group keeping declared order. Generated signatures use this order.
func (o *Operation) OrderedParams() []*Parameter {
	out := make([]*Parameter, 0, len(o.Parameters))
	out = append(out, o.RequiredParams()...)
	for _, p := range o.Parameters {
		if !p.Required {
			out = append(out, p)
		}
	}
	return out
}

// UpperVerb returns the HTTP method token in upper case.
func (o *Operation) UpperVerb() string {
	return strings.ToUpper(o.Verb)
}
