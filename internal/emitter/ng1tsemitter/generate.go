package ng1tsemitter

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

	// services resolves types as seen from the services namespace.
	services *typeres.Resolver
	models   *typeres.Resolver

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
	models := typeres.New(def, syntax, true).WithNames(func(s string) string {
		return emitter.ModelID(names, s)
	})
	g := &generator{
		w:        w,
		def:      def,
		opts:     opts,
		names:    names,
		services: models.WithPrefix("__models."),
		models:   models,
	}
	return g.run()
}

func (g *generator) fail(err error) {
	if err != nil && g.err == nil {
		g.err = err
	}
}

func (g *generator) resolve(r *typeres.Resolver, d *definition.Descriptor) string {
	t, err := r.Resolve(d)
	g.fail(err)
	return t
}

func (g *generator) returnType(op *definition.Operation) string {
	t, err := g.services.ReturnType(op)
	g.fail(err)
	return t
}

func (g *generator) run() error {
	w := g.w
	emitter.Header(w, Mode, g.def)
	w.Blank()
	codewriter.ForEach(w, g.opts.References, func(w *codewriter.Writer, ref string, _ int, _ []string) {
		w.Line(fmt.Sprintf("/// <reference path=%q />", ref))
	})
	w.Blank()

	services := emitter.Services(g.def, g.names)
	w.When(g.opts.interfaces())
	g.interfaces(services)
	w.Blank()
	w.EndWhen()

	g.implementations(services)
	w.Blank()
	g.modelsNamespace()
	return g.err
}

func (g *generator) className(s emitter.Service) string {
	return s.ID + g.opts.ServiceSuffix
}

func (g *generator) signature(op emitter.Operation) string {
	params, err := emitter.Signature(op.Operation, g.names, g.services, true)
	g.fail(err)
	return fmt.Sprintf("%s(%s): ng.IPromise<%s>", op.ID, params, g.returnType(op.Operation))
}

func (g *generator) docs(op emitter.Operation) []string {
	docs, err := emitter.OperationDocs(op.Operation, g.names, g.services, false, "")
	g.fail(err)
	return docs
}

func (g *generator) namespaceHeader() {
	g.w.EnterBlock("namespace " + g.opts.Namespaces.Services + " {")
	g.w.Line("import __models = " + g.opts.Namespaces.Models + ";")
	g.w.Blank()
}

func (g *generator) interfaces(services []emitter.Service) {
	w := g.w
	g.namespaceHeader()
	codewriter.ForEach(w, services, func(w *codewriter.Writer, s emitter.Service, i int, _ []emitter.Service) {
		w.BlankIf(i > 0)
		w.Block("export interface I"+g.className(s)+" {", "}", func(w *codewriter.Writer) {
			codewriter.ForEach(w, s.Operations, func(w *codewriter.Writer, op emitter.Operation, j int, _ []emitter.Operation) {
				w.BlankIf(j > 0)
				w.DocComment(g.docs(op)...)
				w.Line(g.signature(op) + ";")
			})
		})
	})
	w.ExitBlock("}")
}

func (g *generator) implementations(services []emitter.Service) {
	w := g.w
	provider := emitter.Identifier(g.opts.provider())
	g.namespaceHeader()
	codewriter.ForEach(w, services, func(w *codewriter.Writer, s emitter.Service, i int, _ []emitter.Service) {
		class := g.className(s)
		header := "export class " + class
		if g.opts.interfaces() {
			header += " implements I" + class
		}
		w.BlankIf(i > 0)
		w.Block(header+" {", "}", func(w *codewriter.Writer) {
			w.Line("private baseUrl: string;")
			w.Blank()
			w.Line(fmt.Sprintf("public static $inject: string[] = ['$http', %s];", emitter.Quote(g.opts.provider())))
			w.Block(fmt.Sprintf("constructor(private $http: ng.IHttpService, %s: %s) {", provider, g.opts.BaseURL.Type), "}", func(w *codewriter.Writer) {
				w.Line("this.baseUrl = " + emitter.Identifier(g.opts.provider()) + suffixPath(g.opts.BaseURL.Path) + ";")
			})
			codewriter.ForEach(w, s.Operations, func(w *codewriter.Writer, op emitter.Operation, _ int, _ []emitter.Operation) {
				w.Blank()
				g.operation(op)
			})
		})
		w.When(g.opts.ModuleName != "")
		w.Blank()
		w.Line(fmt.Sprintf("angular.module(%s).service(%s, %s);", emitter.Quote(g.opts.ModuleName), emitter.Quote(naming.Camelize(class)), class))
		w.EndWhen()
	})
	w.Blank()
	urlbuild.WriteHelper(w, urlbuild.HelperOptions{Typed: true, Quote: "'"})
	w.ExitBlock("}")
}

func suffixPath(path []string) string {
	out := ""
	for _, p := range path {
		out += "." + p
	}
	return out
}

func (g *generator) operation(op emitter.Operation) {
	w := g.w
	o := op.Operation
	pathParams := o.ParamsIn(definition.InPath)
	queryParams := o.ParamsIn(definition.InQuery)
	formParams := o.ParamsIn(definition.InFormData)
	headerParams := o.ParamsIn(definition.InHeader)
	body := o.Body()
	returnType := g.returnType(o)

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
		w.When(len(formParams) > 0)
		w.Line("const fd: FormData = new FormData();")
		codewriter.ForEach(w, formParams, func(w *codewriter.Writer, p *definition.Parameter, _ int, _ []*definition.Parameter) {
			id := emitter.ParamID(g.names, p)
			w.Block(fmt.Sprintf("if (%s != undefined && %s != null) {", id, id), "}", func(w *codewriter.Writer) {
				w.Line(fmt.Sprintf("fd.append(%s, %s);", emitter.Quote(p.Name), id))
			})
		})
		w.EndWhen()
		w.Blank()

		var headers []string
		if len(formParams) > 0 {
			headers = append(headers, "'Content-Type': undefined")
		}
		for _, p := range headerParams {
			headers = append(headers, emitter.Quote(p.Name)+": "+emitter.ParamID(g.names, p))
		}

		w.EnterBlock(fmt.Sprintf("return this.$http<%s>({", returnType))
		w.Line("method: " + emitter.Quote(o.UpperVerb()) + ",")
		switch {
		case body != nil:
			w.Line("data: " + emitter.ParamID(g.names, body) + ",")
		case len(formParams) > 0:
			w.Line("data: fd,", "transformRequest: angular.identity,")
		}
		w.When(len(headers) > 0)
		w.Block("headers: {", "},", func(w *codewriter.Writer) {
			emitter.Entries(w, headers)
		})
		w.EndWhen()
		w.Inline("url: buildServiceUrl(this.baseUrl, resourceUrl").
			InlineIf(len(pathParams) > 0, ", pathParams").
			InlineIf(len(pathParams) == 0 && len(queryParams) > 0, ", undefined").
			InlineIf(len(queryParams) > 0, ", queryParams").
			Inline(")").
			Done()
		w.ExitBlock(fmt.Sprintf("}).then((response: ng.IHttpPromiseCallbackArg<%s>) => response.data);", returnType))
	})
}

func (g *generator) modelsNamespace() {
	w := g.w
	modelNames := g.def.ModelNames()
	enumNames := g.def.EnumNames()

	w.Block("namespace "+g.opts.Namespaces.Models+" {", "}", func(w *codewriter.Writer) {
		codewriter.ForEach(w, modelNames, func(w *codewriter.Writer, name string, i int, _ []string) {
			w.BlankIf(i > 0)
			w.Block("export interface "+emitter.ModelID(g.names, name)+" {", "}", func(w *codewriter.Writer) {
				for _, prop := range emitter.Properties(g.def.Models[name], g.names) {
					w.Inline(prop.ID).
						InlineIf(!prop.Required, "?").
						Inline(": ", g.resolve(g.models, prop.Descriptor), ";").
						Done()
				}
			})
		})

		codewriter.ForEach(w, enumNames, func(w *codewriter.Writer, name string, i int, _ []string) {
			union, err := g.models.EnumUnion(name)
			g.fail(err)
			w.BlankIf(len(modelNames) > 0 || i > 0)
			w.Line(fmt.Sprintf("export type %s = %s;", emitter.ModelID(g.names, name), union))
		})

		w.When(g.opts.ModelFactory)
		g.modelFactory(modelNames)
		w.EndWhen()
	})
}

func (g *generator) modelFactory(modelNames []string) {
	w := g.w
	w.BlankIf(len(modelNames) > 0 || len(g.def.Enums) > 0)
	w.Line("export type Initializer<TModel> = (model: TModel) => void;")
	w.Blank()
	w.Block("export class ModelFactory {", "}", func(w *codewriter.Writer) {
		codewriter.ForEach(w, modelNames, func(w *codewriter.Writer, name string, i int, _ []string) {
			id := emitter.ModelID(g.names, name)
			w.BlankIf(i > 0)
			w.Block(fmt.Sprintf("public static createEmpty%s(initializer?: Initializer<%s>): %s {", id, id, id), "}", func(w *codewriter.Writer) {
				w.Block(fmt.Sprintf("const model: %s = {", id), "};", func(w *codewriter.Writer) {
					var entries []string
					for _, prop := range emitter.Properties(g.def.Models[name], g.names) {
						v, err := g.models.DefaultValue(prop.Descriptor)
						g.fail(err)
						if ref, ok := prop.Type.(definition.ModelRef); ok && !prop.IsArray && g.reaches(ref.Name, name, map[string]bool{}) {
							v = g.models.Syntax().Absent
						}
						entries = append(entries, prop.ID+": "+v)
					}
					emitter.Entries(w, entries)
				})
				w.Block("if (!!initializer) {", "}", func(w *codewriter.Writer) {
					w.Line("initializer(model);")
				})
				w.Line("return model;")
			})
		})
	})
}

// reaches reports whether creating an empty from model would call the
// factory of target, following non-array model references.
func (g *generator) reaches(from, target string, seen map[string]bool) bool {
	if from == target {
		return true
	}
	if seen[from] {
		return false
	}
	seen[from] = true
	model, ok := g.def.Models[from]
	if !ok {
		return false
	}
	for pair := model.Oldest(); pair != nil; pair = pair.Next() {
		if ref, ok := pair.Value.Type.(definition.ModelRef); ok && !pair.Value.IsArray && g.reaches(ref.Name, target, seen) {
			return true
		}
	}
	return false
}
