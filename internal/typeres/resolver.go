// Package typeres maps definition descriptors to type names and default
// value expressions in a target dialect.
package typeres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/definition"
)

// Syntax holds the dialect-specific spelling of types and values.
type Syntax struct {
	Number  string
	String  string
	Boolean string
	Date    string
	Object  string
	// Void is the return type used when an operation declares no success
	// payload.
	Void string
	// Erased replaces model names when the resolver is not detailed.
	Erased string

	// Quote delimits enum literals in union types.
	Quote     string
	UnionSep  string
	UnionWrap bool
	// NamedEnums resolves enum references to the enum name instead of a
	// literal union. Dialects that declare enum aliases use it.
	NamedEnums bool
	// ArraySuffix is appended to array element types.
	ArraySuffix string

	Absent      string
	EmptyString string
	EmptyArray  string
	False       string
	// Factory is a format string taking the model name, e.g.
	// "ModelFactory.createEmpty%s()".
	Factory string
}

// TypeScript is the syntax of the TypeScript dialects.
var TypeScript = Syntax{
	Number:      "number",
	String:      "string",
	Boolean:     "boolean",
	Date:        "Date",
	Object:      "any",
	Void:        "any",
	Erased:      "any",
	Quote:       "'",
	UnionSep:    " | ",
	UnionWrap:   true,
	ArraySuffix: "[]",
	Absent:      "undefined",
	EmptyString: "''",
	EmptyArray:  "[]",
	False:       "false",
	Factory:     "ModelFactory.createEmpty%s()",
}

// JSDoc is the syntax of JSDoc type annotations.
var JSDoc = Syntax{
	Number:      "Number",
	String:      "String",
	Boolean:     "Boolean",
	Date:        "Date",
	Object:      "Object",
	Void:        "void",
	Erased:      "Object",
	Quote:       "'",
	UnionSep:    "|",
	UnionWrap:   true,
	ArraySuffix: "[]",
	Absent:      "undefined",
	EmptyString: "''",
	EmptyArray:  "[]",
	False:       "false",
	Factory:     "createEmpty%s()",
}

// Resolver resolves descriptors against one definition. It is read-only
// after construction and may be shared by goroutines.
type Resolver struct {
	def      *definition.Definition
	syntax   Syntax
	detailed bool
	prefix   string
	rename   func(string) string
}

// New returns a resolver. In detailed mode model references resolve to the
// model name; otherwise to Syntax.Erased.
func New(def *definition.Definition, syntax Syntax, detailed bool) *Resolver {
	return &Resolver{def: def, syntax: syntax, detailed: detailed, rename: identity}
}

func identity(s string) string { return s }

// WithNames returns a copy that passes model and named enum references
// through rename, so references match the transformed declarations.
func (r *Resolver) WithNames(rename func(string) string) *Resolver {
	cp := *r
	cp.rename = rename
	return &cp
}

// WithPrefix returns a copy that qualifies model and named enum references
// with prefix, e.g. "__models.".
func (r *Resolver) WithPrefix(prefix string) *Resolver {
	cp := *r
	cp.prefix = prefix
	return &cp
}

// Syntax returns the resolver's syntax.
func (r *Resolver) Syntax() Syntax { return r.syntax }

// Resolve returns the type name for d.
func (r *Resolver) Resolve(d *definition.Descriptor) (string, error) {
	name, err := r.resolveName(d)
	if err != nil {
		return "", err
	}
	if d.IsArray {
		name += r.syntax.ArraySuffix
	}
	return name, nil
}

func (r *Resolver) resolveName(d *definition.Descriptor) (string, error) {
	if d == nil {
		return "", &definition.SchemaError{Subject: "descriptor", Detail: "cannot resolve a missing descriptor"}
	}
	switch t := d.Type.(type) {
	case definition.Primitive:
		return r.primitive(d, t)
	case definition.ModelRef:
		if _, ok := r.def.Models[t.Name]; !ok {
			return "", &definition.SchemaError{Subject: "complex", Detail: fmt.Sprintf("unknown model %q", t.Name), Descriptor: d}
		}
		if !r.detailed {
			return r.syntax.Erased, nil
		}
		return r.prefix + r.rename(t.Name), nil
	case definition.EnumRef:
		values, ok := r.def.Enums[t.Name]
		if !ok {
			return "", &definition.SchemaError{Subject: "enum", Detail: fmt.Sprintf("unknown enum %q", t.Name), Descriptor: d}
		}
		if r.syntax.NamedEnums {
			return r.prefix + r.rename(t.Name), nil
		}
		return r.union(values, r.syntax.UnionWrap), nil
	}
	return "", &definition.SchemaError{Subject: "descriptor", Detail: "cannot resolve type", Descriptor: d}
}

func (r *Resolver) primitive(d *definition.Descriptor, p definition.Primitive) (string, error) {
	switch p.Kind {
	case definition.Integer, definition.Number:
		return r.syntax.Number, nil
	case definition.String:
		switch p.SubType {
		case definition.SubTypeDateTime:
			return r.syntax.Date, nil
		case definition.SubTypeByte:
			return r.syntax.Number, nil
		default:
			return r.syntax.String, nil
		}
	case definition.Boolean:
		return r.syntax.Boolean, nil
	case definition.File, definition.Object:
		return r.syntax.Object, nil
	}
	return "", &definition.SchemaError{Subject: "primitive", Detail: fmt.Sprintf("cannot resolve primitive %q", p.Kind), Descriptor: d}
}

// union joins quoted literals with the union separator.
func (r *Resolver) union(values []string, wrap bool) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = codewriter.Quote(v, r.syntax.Quote)
	}
	s := strings.Join(quoted, r.syntax.UnionSep)
	if wrap {
		s = "(" + s + ")"
	}
	return s
}

// EnumUnion returns the literal union for a named enum, never wrapped in
// parentheses. Dialects use it to declare enum aliases.
func (r *Resolver) EnumUnion(name string) (string, error) {
	values, ok := r.def.Enums[name]
	if !ok {
		return "", &definition.SchemaError{Subject: "enum", Detail: fmt.Sprintf("unknown enum %q", name)}
	}
	return r.union(values, false), nil
}

// SuccessResponse returns the first response, in declared order, whose
// status code is in [200,300) and which carries a data type.
func SuccessResponse(op *definition.Operation) (string, *definition.Response) {
	if op == nil || op.Responses == nil {
		return "", nil
	}
	for pair := op.Responses.Oldest(); pair != nil; pair = pair.Next() {
		code, err := strconv.Atoi(strings.TrimSpace(pair.Key))
		if err != nil || code < 200 || code >= 300 {
			continue
		}
		if pair.Value != nil && pair.Value.DataType != nil {
			return pair.Key, pair.Value
		}
	}
	return "", nil
}

// ReturnType resolves the success payload of op, or Syntax.Void.
func (r *Resolver) ReturnType(op *definition.Operation) (string, error) {
	_, resp := SuccessResponse(op)
	if resp == nil {
		return r.syntax.Void, nil
	}
	return r.Resolve(resp.DataType)
}

// DefaultValue returns the initializer expression for d, as used by model
// factories.
func (r *Resolver) DefaultValue(d *definition.Descriptor) (string, error) {
	if d == nil {
		return "", &definition.SchemaError{Subject: "descriptor", Detail: "cannot resolve a missing descriptor"}
	}
	if d.IsArray {
		// Still validate the element type.
		if _, err := r.resolveName(d); err != nil {
			return "", err
		}
		return r.syntax.EmptyArray, nil
	}
	switch t := d.Type.(type) {
	case definition.ModelRef:
		if _, ok := r.def.Models[t.Name]; !ok {
			return "", &definition.SchemaError{Subject: "complex", Detail: fmt.Sprintf("unknown model %q", t.Name), Descriptor: d}
		}
		return fmt.Sprintf(r.syntax.Factory, r.rename(t.Name)), nil
	case definition.EnumRef:
		if _, ok := r.def.Enums[t.Name]; !ok {
			return "", &definition.SchemaError{Subject: "enum", Detail: fmt.Sprintf("unknown enum %q", t.Name), Descriptor: d}
		}
		return r.syntax.Absent, nil
	case definition.Primitive:
		switch t.Kind {
		case definition.Boolean:
			return r.syntax.False, nil
		case definition.Integer, definition.Number, definition.File, definition.Object:
			return r.syntax.Absent, nil
		case definition.String:
			switch t.SubType {
			case definition.SubTypeDateTime, definition.SubTypeUUID, definition.SubTypeByte:
				return r.syntax.Absent, nil
			}
			return r.syntax.EmptyString, nil
		}
		return "", &definition.SchemaError{Subject: "primitive", Detail: fmt.Sprintf("cannot resolve primitive %q", t.Kind), Descriptor: d}
	}
	return "", &definition.SchemaError{Subject: "descriptor", Detail: "cannot resolve type", Descriptor: d}
}
