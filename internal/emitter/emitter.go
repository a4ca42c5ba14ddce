// Package emitter holds the pieces shared by the dialect emitters: the
// generated-file banner, ordered views over a definition with naming
// transforms applied, and the runtime checks emitted for required
// parameters.
package emitter

import (
	"strings"
	"unicode"

	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/typeres"
)

// Header writes the auto-generated banner followed by the API metadata.
func Header(w *codewriter.Writer, mode string, def *definition.Definition) {
	w.Line(
		"//------------------------------",
		"// <auto-generated>",
		"//     Generated using the Swagen tool",
		"//     Generator: angular",
		"//     Mode: "+mode,
		"// </auto-generated>",
		"//------------------------------",
	)
	md := def.Metadata
	if md.Title != "" {
		w.Line("// " + md.Title)
	}
	if md.Description != "" {
		for _, line := range strings.Split(md.Description, "\n") {
			w.Line(strings.TrimRight("// "+line, " "))
		}
	}
	if md.BaseURL != "" {
		w.Line("// Base URL: " + md.BaseURL)
	}
}

// Operation is an operation with its transformed identifier.
type Operation struct {
	Name string
	ID   string
	*definition.Operation
}

// Service is a service with its transformed identifier and operations in
// lexical order.
type Service struct {
	Name       string
	ID         string
	Operations []Operation
}

// Services returns the services of def in lexical order with naming
// transforms applied.
func Services(def *definition.Definition, names naming.Table) []Service {
	out := make([]Service, 0, len(def.Services))
	for _, svcName := range def.ServiceNames() {
		svc := def.Services[svcName]
		s := Service{Name: svcName, ID: Identifier(names.Apply(naming.ServiceName, svcName))}
		for _, opName := range svc.OperationNames() {
			s.Operations = append(s.Operations, Operation{
				Name:      opName,
				ID:        Identifier(names.Apply(naming.OperationName, opName)),
				Operation: svc[opName],
			})
		}
		out = append(out, s)
	}
	return out
}

// Property is a model property with its transformed identifier.
type Property struct {
	Name string
	ID   string
	*definition.Descriptor
}

// Properties returns the properties of a model in declared order.
func Properties(model *definition.Model, names naming.Table) []Property {
	var out []Property
	if model == nil {
		return out
	}
	for pair := model.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Property{
			Name:       pair.Key,
			ID:         PropertyKey(names.Apply(naming.PropertyName, pair.Key)),
			Descriptor: pair.Value,
		})
	}
	return out
}

// ModelID returns the transformed model name.
func ModelID(names naming.Table, model string) string {
	return Identifier(names.Apply(naming.ModelName, model))
}

// ParamID returns the variable name used for a parameter.
func ParamID(names naming.Table, p *definition.Parameter) string {
	return Identifier(names.Apply(naming.ParameterName, p.Name))
}

// Identifier returns s when it is a valid JavaScript identifier and its
// camelized form otherwise.
func Identifier(s string) string {
	if isIdentifier(s) {
		return s
	}
	id := naming.Camelize(s)
	if id == "" || unicode.IsDigit([]rune(id)[0]) {
		id = "_" + id
	}
	return id
}

// PropertyKey returns s, quoted when it is not a valid identifier.
func PropertyKey(s string) string {
	if isIdentifier(s) {
		return s
	}
	return Quote(s)
}

// Quote renders s as a single-quoted string literal.
func Quote(s string) string {
	return codewriter.Quote(s, "'")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// RequiredChecks writes a runtime guard for every required parameter.
// throw renders the statement raised for a missing parameter.
func RequiredChecks(w *codewriter.Writer, op *definition.Operation, names naming.Table, throw func(param string) string) {
	required := op.RequiredParams()
	codewriter.ForEach(w, required, func(w *codewriter.Writer, p *definition.Parameter, _ int, _ []*definition.Parameter) {
		id := ParamID(names, p)
		w.Block("if ("+id+" == undefined || "+id+" == null) {", "}", func(w *codewriter.Writer) {
			w.Line(throw(p.Name))
		})
	})
	w.BlankIf(len(required) > 0)
}

// Signature renders "a: T, b?: U" in the parameter order of op, required
// parameters first.
func Signature(op *definition.Operation, names naming.Table, r *typeres.Resolver, typed bool) (string, error) {
	parts := make([]string, 0, len(op.Parameters))
	for _, p := range op.OrderedParams() {
		id := ParamID(names, p)
		if !typed {
			parts = append(parts, id)
			continue
		}
		t, err := r.Resolve(p.DataType)
		if err != nil {
			return "", err
		}
		opt := ""
		if !p.Required {
			opt = "?"
		}
		parts = append(parts, id+opt+": "+t)
	}
	return strings.Join(parts, ", "), nil
}

// OperationDocs returns the documentation lines of an operation. When
// jsdoc is set, @param lines for described parameters and a @returns line
// wrapping the return type with returns are added.
func OperationDocs(op *definition.Operation, names naming.Table, r *typeres.Resolver, jsdoc bool, returns string) ([]string, error) {
	var docs []string
	if op.Description != "" {
		docs = append(docs, op.Description)
	}
	if op.Description2 != "" {
		docs = append(docs, op.Description2)
	}
	if !jsdoc {
		return docs, nil
	}
	for _, p := range op.Parameters {
		if p.Description == "" {
			continue
		}
		t, err := r.Resolve(p.DataType)
		if err != nil {
			return nil, err
		}
		docs = append(docs, "@param {"+t+"} "+ParamID(names, p)+" - "+p.Description)
	}
	rt, err := r.ReturnType(op)
	if err != nil {
		return nil, err
	}
	docs = append(docs, "@returns {"+strings.Replace(returns, "%s", rt, 1)+"}")
	return docs, nil
}

// Entries writes one entry per line, each followed by a comma except the
// last.
func Entries(w *codewriter.Writer, entries []string) {
	codewriter.ForEach(w, entries, func(w *codewriter.Writer, e string, i int, all []string) {
		w.Inline(e).InlineIf(i < len(all)-1, ",").Done()
	})
}

// ParamEntries returns "key: variable" entries for params. Keys keep the
// raw parameter name so they match the wire name.
func ParamEntries(names naming.Table, params []*definition.Parameter) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, PropertyKey(p.Name)+": "+ParamID(names, p))
	}
	return out
}
