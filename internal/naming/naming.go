// Package naming applies casing transforms to identifiers taken from a
// definition.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Transform is a casing rule.
type Transform string

const (
	PascalCase Transform = "pascal-case"
	CamelCase  Transform = "camel-case"
	None       Transform = "none"
)

// Category is a kind of identifier that can carry its own transforms.
type Category string

const (
	ServiceName   Category = "serviceName"
	OperationName Category = "operationName"
	ParameterName Category = "parameterName"
	ModelName     Category = "modelName"
	PropertyName  Category = "propertyName"
)

// Categories lists every category in a fixed order.
var Categories = []Category{ServiceName, OperationName, ParameterName, ModelName, PropertyName}

// Parse returns the transform called name.
func Parse(name string) (Transform, bool) {
	switch t := Transform(strings.TrimSpace(name)); t {
	case PascalCase, CamelCase, None:
		return t, true
	}
	return "", false
}

// ParseCategory returns the category called name.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// Apply transforms id. Unknown transforms leave id unchanged.
func Apply(id string, t Transform) string {
	if id == "" {
		return id
	}
	switch t {
	case PascalCase:
		return mapFirst(id, unicode.ToUpper)
	case CamelCase:
		return mapFirst(id, unicode.ToLower)
	}
	return id
}

func mapFirst(s string, f func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(f(r)) + s[size:]
}

// Table maps categories to transforms applied in order.
type Table map[Category][]Transform

// Apply runs the transforms configured for c over id.
func (t Table) Apply(c Category, id string) string {
	for _, tr := range t[c] {
		id = Apply(id, tr)
	}
	return id
}

// Merge returns a new table where each category present in overrides
// replaces the one in t.
func (t Table) Merge(overrides Table) Table {
	out := make(Table, len(t)+len(overrides))
	for c, trs := range t {
		out[c] = trs
	}
	for c, trs := range overrides {
		out[c] = trs
	}
	return out
}

// UnknownError reports a transform or category name that does not exist.
type UnknownError struct {
	Category string
	Name     string
}

func (e *UnknownError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("unknown naming category %q", e.Category)
	}
	return fmt.Sprintf("unknown transform %q for %s", e.Name, e.Category)
}

// ParseTable builds a table from raw names, as read from a profile.
func ParseTable(raw map[string][]string) (Table, error) {
	table := make(Table, len(raw))
	for cat, names := range raw {
		c, ok := ParseCategory(cat)
		if !ok {
			return nil, &UnknownError{Category: cat}
		}
		trs := make([]Transform, 0, len(names))
		for _, name := range names {
			tr, ok := Parse(name)
			if !ok {
				return nil, &UnknownError{Category: cat, Name: name}
			}
			trs = append(trs, tr)
		}
		table[c] = trs
	}
	return table, nil
}

// Camelize joins the alphanumeric words of s in camelCase, e.g.
// "pet-store api" becomes "petStoreApi".
func Camelize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(Apply(w, CamelCase))
			continue
		}
		b.WriteString(Apply(w, PascalCase))
	}
	return b.String()
}
