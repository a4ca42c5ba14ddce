package ngtsemitter

import (
	"fmt"
	"strings"

	"github.com/mark3labs/swagen/internal/codewriter"
	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/emitter"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/typeres"
	"github.com/mark3labs/swagen/internal/urlbuild"
)

const (
	tokenName  = "API_BASE_URL"
	errorClass = "WebApiClientError"
	headerDict = "{[key: string]: string[]}"
)

type generator struct {
	w     *codewriter.Writer
	def   *definition.Definition
	opts  *Options
	names naming.Table
	types *typeres.Resolver

	err error
}

// Generate implements the dialect.
func (*Dialect) Generate(w *codewriter.Writer, def *definition.Definition, p *profile.Profile, names naming.Table) error {
	opts, err := decodeOptions(p.Options)
	if err != nil {
		return err
	}
	syntax := typeres.TypeScript
	syntax.NamedEnums = true
	g := &generator{
		w:     w,
		def:   def,
		opts:  opts,
		names: names,
		types: typeres.New(def, syntax, true).WithNames(func(s string) string {
			return emitter.ModelID(names, s)
		}),
	}
	return g.run()
}

func (g *generator) fail(err error) {
	if err != nil && g.err == nil {
		g.err = err
	}
}

func (g *generator) impls() bool { return g.opts.Generation.GenerateImplementations }
func (g *generator) intfs() bool { return g.opts.Generation.GenerateInterfaces }

func (g *generator) promises() bool { return g.opts.Angular.FuturesType == "Promises" }

func (g *generator) future(t string) string {
	if g.promises() {
		return "Promise<" + t + ">"
	}
	return "Observable<" + t + ">"
}

func (g *generator) returnType(op *definition.Operation) string {
	t, err := g.types.ReturnType(op)
	g.fail(err)
	return t
}

func (g *generator) signature(op emitter.Operation) string {
	params, err := emitter.Signature(op.Operation, g.names, g.types, true)
	g.fail(err)
	return fmt.Sprintf("%s(%s): %s", op.ID, params, g.future(g.returnType(op.Operation)))
}

func (g *generator) docs(op emitter.Operation) []string {
	docs, err := emitter.OperationDocs(op.Operation, g.names, g.types, false, "")
	g.fail(err)
	return docs
}

func (g *generator) run() error {
	w := g.w
	emitter.Header(w, Mode, g.def)
	w.Blank()
	g.imports()
	w.Blank()

	w.When(g.impls() && g.opts.BaseURL.Strategy == InjectedToken)
	if g.opts.Angular.TokenType == "OpaqueToken" {
		w.Line(fmt.Sprintf("export const %s = new OpaqueToken('%s');", tokenName, tokenName))
	} else {
		w.Line(fmt.Sprintf("export const %s = new InjectionToken<string>('%s');", tokenName, tokenName))
	}
	w.Blank()
	w.EndWhen()

	services := emitter.Services(g.def, g.names)
	codewriter.ForEach(w, services, func(w *codewriter.Writer, s emitter.Service, i int, _ []emitter.Service) {
		w.BlankIf(i > 0)
		w.When(g.intfs())
		g.contract(s)
		w.BlankIf(g.impls())
		w.EndWhen()
		w.When(g.impls())
		g.client(s)
		w.EndWhen()
	})

	w.When(g.impls())
	w.Blank()
	w.Block("export class "+errorClass+" extends Error {", "}", func(w *codewriter.Writer) {
		w.Block("constructor(message: string, public readonly status: number, public readonly headers: "+headerDict+", public readonly body?: any) {", "}", func(w *codewriter.Writer) {
			w.Line("super(message);")
		})
	})
	w.EndWhen()

	g.models()
	return g.err
}

func (g *generator) imports() {
	w := g.w
	w.When(g.impls())
	core := []string{"Injectable"}
	if g.opts.BaseURL.Strategy == InjectedToken {
		token := "InjectionToken"
		if g.opts.Angular.TokenType == "OpaqueToken" {
			token = "OpaqueToken"
		}
		core = append(core, "Inject", token, "Optional")
	}
	w.Line("import { " + strings.Join(core, ", ") + " } from '@angular/core';")
	w.Line("import { HttpClient, HttpErrorResponse, HttpHeaders } from '@angular/common/http';")
	w.EndWhen()

	var rx []string
	if !g.promises() {
		rx = append(rx, "Observable")
	}
	if g.impls() {
		rx = append(rx, "throwError")
	}
	w.When(len(rx) > 0)
	w.Line("import { " + strings.Join(rx, ", ") + " } from 'rxjs';")
	w.EndWhen()
	w.When(g.impls())
	w.Line("import { catchError } from 'rxjs/operators';")
	w.EndWhen()

	iv := g.opts.BaseURL.ImportedVar
	w.When(g.impls() && g.opts.BaseURL.Strategy == ImportedVar)
	w.Blank()
	w.Line(fmt.Sprintf("import { %s } from %s;", iv.ImportVariable, emitter.Quote(iv.ImportFrom)))
	w.EndWhen()

	c := g.opts.Customization
	w.When(g.impls() && c != nil)
	if c != nil {
		w.BlankIf(g.opts.BaseURL.Strategy != ImportedVar)
		w.Line(fmt.Sprintf("import { %s } from %s;", c.ImportVariable, emitter.Quote(c.ImportFrom)))
	}
	w.EndWhen()
}

func (g *generator) className(s emitter.Service) string { return s.ID + "Client" }

func (g *generator) contract(s emitter.Service) {
	g.w.Block("export interface I"+g.className(s)+" {", "}", func(w *codewriter.Writer) {
		codewriter.ForEach(w, s.Operations, func(w *codewriter.Writer, op emitter.Operation, i int, _ []emitter.Operation) {
			w.BlankIf(i > 0)
			w.DocComment(g.docs(op)...)
			w.Line(g.signature(op) + ";")
		})
	})
}

// fallbackURL is the base URL used when no other source supplies one.
func (g *generator) fallbackURL() string {
	if g.opts.BaseURL.OverrideURL != "" {
		return g.opts.BaseURL.OverrideURL
	}
	return g.def.Metadata.BaseURL
}

func (g *generator) orFallback(expr string) string {
	if u := g.fallbackURL(); u != "" {
		return expr + " || " + emitter.Quote(u)
	}
	return expr
}

func (g *generator) baseURLExpr() string {
	if g.opts.BaseURL.Strategy == Property {
		return "this." + g.opts.BaseURL.Property
	}
	return "this._baseUrl"
}

func (g *generator) client(s emitter.Service) {
	class := g.className(s)
	header := "export class " + class
	if g.intfs() {
		header += " implements I" + class
	}
	opts := g.opts.BaseURL

	w := g.w
	w.Line("@Injectable()")
	w.Block(header+" {", "}", func(w *codewriter.Writer) {
		ctor := "constructor(private readonly _http: HttpClient) {"
		var init string
		switch opts.Strategy {
		case Property:
			w.Line(fmt.Sprintf("public %s: string = %s;", opts.Property, emitter.Quote(g.fallbackURL())))
		case InjectedToken:
			w.Line("private readonly _baseUrl: string;")
			ctor = fmt.Sprintf("constructor(private readonly _http: HttpClient, @Optional() @Inject(%s) baseUrl?: string) {", tokenName)
			init = g.orFallback("baseUrl")
		case ImportedVar:
			w.Line("private readonly _baseUrl: string;")
			expr := opts.ImportedVar.ImportVariable
			if opts.ImportedVar.Property != "" {
				expr += "." + opts.ImportedVar.Property
			}
			init = g.orFallback(expr)
		default:
			w.Line("private readonly _baseUrl: string;")
			init = emitter.Quote(g.fallbackURL())
		}
		w.Blank()
		w.Block(ctor, "}", func(w *codewriter.Writer) {
			w.When(init != "")
			w.Line("this._baseUrl = " + init + ";")
			w.EndWhen()
		})

		codewriter.ForEach(w, s.Operations, func(w *codewriter.Writer, op emitter.Operation, _ int, _ []emitter.Operation) {
			w.Blank()
			g.operation(op)
		})

		w.Blank()
		urlbuild.WriteHelper(w, urlbuild.HelperOptions{Typed: true, Quote: "'", Method: true, BaseURLExpr: g.baseURLExpr()})
		w.Blank()
		w.Block("private createError(err: HttpErrorResponse): "+errorClass+" {", "}", func(w *codewriter.Writer) {
			w.Line("const headers: " + headerDict + " = {};")
			w.Block("if (err.headers) {", "}", func(w *codewriter.Writer) {
				w.Block("for (const key of err.headers.keys()) {", "}", func(w *codewriter.Writer) {
					w.Line("headers[key] = err.headers.getAll(key) || [];")
				})
			})
			w.Line("return new " + errorClass + "(err.message, err.status, headers, err.error);")
		})
	})
}

func (g *generator) operation(op emitter.Operation) {
	o := op.Operation
	pathParams := o.ParamsIn(definition.InPath)
	queryParams := o.ParamsIn(definition.InQuery)
	formParams := o.ParamsIn(definition.InFormData)
	headerParams := o.ParamsIn(definition.InHeader)
	body := o.Body()
	returnType := g.returnType(o)

	w := g.w
	w.DocComment(g.docs(op)...)
	w.Block("public "+g.signature(op)+" {", "}", func(w *codewriter.Writer) {
		emitter.RequiredChecks(w, o, g.names, func(name string) string {
			return "throw new Error(" + codewriter.Quote("The parameter '"+name+"' must be defined.", "`") + ");"
		})

		w.Line("const resourceUrl: string = " + emitter.Quote(o.Path) + ";")
		w.When(len(pathParams) > 0)
		w.Block("const pathParams: {[key: string]: any} = {", "};", func(w *codewriter.Writer) {
			emitter.Entries(w, emitter.ParamEntries(g.names, pathParams))
		})
		w.EndWhen()
		w.When(len(queryParams) > 0)
		w.Block("const queryParams: {[key: string]: any} = {", "};", func(w *codewriter.Writer) {
			emitter.Entries(w, emitter.ParamEntries(g.names, queryParams))
		})
		w.EndWhen()
		w.Inline("const url: string = this.buildServiceUrl(resourceUrl").
			InlineIf(len(pathParams) > 0, ", pathParams").
			InlineIf(len(pathParams) == 0 && len(queryParams) > 0, ", undefined").
			InlineIf(len(queryParams) > 0, ", queryParams").
			Inline(");").
			Done()
		w.Blank()

		w.When(len(formParams) > 0)
		w.Line("const fd: FormData = new FormData();")
		codewriter.ForEach(w, formParams, func(w *codewriter.Writer, p *definition.Parameter, _ int, _ []*definition.Parameter) {
			id := emitter.ParamID(g.names, p)
			w.Block(fmt.Sprintf("if (%s != undefined && %s != null) {", id, id), "}", func(w *codewriter.Writer) {
				w.Line(fmt.Sprintf("fd.append(%s, %s);", emitter.Quote(p.Name), id))
			})
		})
		w.Blank()
		w.EndWhen()

		headers := []string{"'Accept': 'application/json'"}
		if body != nil {
			headers = append(headers, "'Content-Type': 'application/json'")
		}
		keyword := "const"
		if len(headerParams) > 0 {
			keyword = "let"
		}
		w.Block(keyword+" headers: HttpHeaders = new HttpHeaders({", "});", func(w *codewriter.Writer) {
			emitter.Entries(w, headers)
		})
		codewriter.ForEach(w, headerParams, func(w *codewriter.Writer, p *definition.Parameter, _ int, _ []*definition.Parameter) {
			id := emitter.ParamID(g.names, p)
			w.Block(fmt.Sprintf("if (%s != undefined && %s != null) {", id, id), "}", func(w *codewriter.Writer) {
				w.Line(fmt.Sprintf("headers = headers.set(%s, '' + %s);", emitter.Quote(p.Name), id))
			})
		})
		w.Blank()

		var options []string
		switch {
		case body != nil:
			options = append(options, "body: "+emitter.ParamID(g.names, body))
		case len(formParams) > 0:
			options = append(options, "body: fd")
		}
		options = append(options, "headers: headers")
		if c := g.opts.Customization; c != nil {
			options = append(options, "..."+c.ImportVariable+".httpOptions")
		}
		w.Block("const options = {", "};", func(w *codewriter.Writer) {
			emitter.Entries(w, options)
		})

		w.EnterBlock(fmt.Sprintf("return this._http.request<%s>(%s, url, options).pipe(", returnType, emitter.Quote(o.UpperVerb())))
		w.Line("catchError((err: HttpErrorResponse) => throwError(this.createError(err)))")
		if g.promises() {
			w.ExitBlock(").toPromise();")
		} else {
			w.ExitBlock(");")
		}
	})
}

func (g *generator) models() {
	w := g.w
	modelNames := g.def.ModelNames()
	enumNames := g.def.EnumNames()

	codewriter.ForEach(w, modelNames, func(w *codewriter.Writer, name string, _ int, _ []string) {
		w.Blank()
		w.Block("export interface "+emitter.ModelID(g.names, name)+" {", "}", func(w *codewriter.Writer) {
			for _, prop := range emitter.Properties(g.def.Models[name], g.names) {
				t, err := g.types.Resolve(prop.Descriptor)
				g.fail(err)
				w.Inline(prop.ID).
					InlineIf(!prop.Required, "?").
					Inline(": ", t, ";").
					Done()
			}
		})
	})

	codewriter.ForEach(w, enumNames, func(w *codewriter.Writer, name string, _ int, _ []string) {
		union, err := g.types.EnumUnion(name)
		g.fail(err)
		w.Blank()
		w.Line(fmt.Sprintf("export type %s = %s;", emitter.ModelID(g.names, name), union))
	})
}
