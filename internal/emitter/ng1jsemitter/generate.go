package ng1jsemitter

import (
	"fmt"

	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/emitter"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/typeres"
	"github.com/mark3labs/swagen/internal/urlbuild"
)

type generator struct {
	w     *codewriter.Writer
	def   *definition.Definition
	opts  *Options
	names naming.Table
	types *typeres.Resolver
	err   error
}

// Generate implements the dialect.
func (*Dialect) Generate(w *codewriter.Writer, def *definition.Definition, p *profile.Profile, names naming.Table) error {
	opts, err := decodeOptions(p.Options)
	if err != nil {
		return err
	}
	syntax := typeres.JSDoc
	syntax.Quote = opts.quote()
	g := &generator{
		w:     w,
		def:   def,
		opts:  opts,
		names: names,
		types: typeres.New(def, syntax, opts.JSDocTypeInfo).WithNames(func(s string) string {
			return emitter.ModelID(names, s)
		}),
	}
	g.initial()
	w.Blank()
	g.services()
	w.Blank()
	urlbuild.WriteHelper(w, urlbuild.HelperOptions{Quote: opts.quote()})
	w.Blank()
	g.models()
	return g.err
}

func (g *generator) fail(err error) {
	if err != nil && g.err == nil {
		g.err = err
	}
}

// q quotes s with the configured quote character.
func (g *generator) q(s string) string {
	return codewriter.Quote(s, g.opts.quote())
}

func (g *generator) initial() {
	w := g.w
	w.Line("/* eslint-disable no-var,quotes,no-undef */")
	w.Blank()
	w.When(g.opts.TSCheck)
	w.Line("// @ts-check")
	w.Blank()
	w.EndWhen()
	w.Line(g.q("use strict") + ";")
}

func (g *generator) services() {
	w := g.w
	provider := emitter.Identifier(g.opts.BaseURL.Provider)
	codewriter.ForEach(w, emitter.Services(g.def, g.names), func(w *codewriter.Writer, s emitter.Service, i int, _ []emitter.Service) {
		w.BlankIf(i > 0)
		w.Line(fmt.Sprintf("angular.module(%s).service(%s,", g.q(g.opts.Module), g.q(s.ID)))
		w.Indent()
		w.Block(fmt.Sprintf("[%s, %s, function($http, %s) {", g.q("$http"), g.q(g.opts.BaseURL.Provider), provider), "}]", func(w *codewriter.Writer) {
			codewriter.ForEach(w, s.Operations, func(w *codewriter.Writer, op emitter.Operation, j int, _ []emitter.Operation) {
				w.BlankIf(j > 0)
				g.operation(op)
			})
		})
		w.ExitBlock(");")
	})
}

func (g *generator) operation(op emitter.Operation) {
	w := g.w
	o := op.Operation
	pathParams := o.ParamsIn(definition.InPath)
	queryParams := o.ParamsIn(definition.InQuery)
	formParams := o.ParamsIn(definition.InFormData)
	headerParams := o.ParamsIn(definition.InHeader)
	body := o.Body()

	docs, err := emitter.OperationDocs(o, g.names, g.types, true, "Promise<%s>")
	g.fail(err)
	params, err := emitter.Signature(o, g.names, g.types, false)
	g.fail(err)

	w.DocComment(docs...)
	w.Block(fmt.Sprintf("this.%s = function(%s) {", op.ID, params), "};", func(w *codewriter.Writer) {
		emitter.RequiredChecks(w, o, g.names, func(name string) string {
			return "throw new Error(" + g.q("The parameter "+name+" must be defined.") + ");"
		})

		w.When(len(pathParams) > 0)
		w.Block("var pathParams = {", "};", func(w *codewriter.Writer) {
			emitter.Entries(w, emitter.ParamEntries(g.names, pathParams))
		})
		w.Blank()
		w.EndWhen()

		w.When(len(queryParams) > 0)
		w.Block("var queryParams = {", "};", func(w *codewriter.Writer) {
			emitter.Entries(w, emitter.ParamEntries(g.names, queryParams))
		})
		w.Blank()
		w.EndWhen()

		w.When(len(formParams) > 0)
		w.Line("var formData = new FormData();")
		codewriter.ForEach(w, formParams, func(w *codewriter.Writer, p *definition.Parameter, _ int, _ []*definition.Parameter) {
			id := emitter.ParamID(g.names, p)
			w.Block(fmt.Sprintf("if (%s != null && %s != undefined) {", id, id), "}", func(w *codewriter.Writer) {
				w.Line(fmt.Sprintf("formData.append(%s, %s);", g.q(p.Name), id))
			})
		})
		w.Blank()
		w.EndWhen()

		var headers []string
		if len(formParams) > 0 {
			headers = append(headers, g.q("Content-Type")+": undefined")
		}
		for _, p := range headerParams {
			headers = append(headers, g.q(p.Name)+": "+emitter.ParamID(g.names, p))
		}

		w.EnterBlock("return $http({")
		w.Line(fmt.Sprintf("method: %s,", g.q(o.UpperVerb())))
		switch {
		case body != nil:
			w.Line("data: " + emitter.ParamID(g.names, body) + ",")
		case len(formParams) > 0:
			w.Line("data: formData,", "transformRequest: angular.identity,")
		}
		w.When(len(headers) > 0)
		w.Block("headers: {", "},", func(w *codewriter.Writer) {
			emitter.Entries(w, headers)
		})
		w.EndWhen()
		w.Inline(fmt.Sprintf("url: buildServiceUrl(%s, %s", g.opts.baseURLExpr(), g.q(o.Path))).
			InlineIf(len(pathParams) == 0, ", undefined").
			InlineIf(len(pathParams) > 0, ", pathParams").
			InlineIf(len(queryParams) == 0, ", undefined").
			InlineIf(len(queryParams) > 0, ", queryParams").
			Inline(")").
			Done()
		w.ExitBlock("});")
	})
}

func (g *generator) models() {
	w := g.w
	codewriter.ForEach(w, g.def.ModelNames(), func(w *codewriter.Writer, name string, i int, _ []string) {
		docs := []string{"@typedef {Object} " + emitter.ModelID(g.names, name)}
		for _, prop := range emitter.Properties(g.def.Models[name], g.names) {
			t, err := g.types.Resolve(prop.Descriptor)
			g.fail(err)
			field := prop.ID
			if !prop.Required {
				field = "[" + field + "]"
			}
			docs = append(docs, "@property {"+t+"} "+field)
		}
		w.BlankIf(i > 0)
		w.DocComment(docs...)
	})
}
