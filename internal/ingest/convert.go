package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/logging"
	"github.com/mark3labs/swagen/internal/naming"
)

// DefaultService holds operations that carry no tag.
const DefaultService = "default"

// BuildOption configures ToDefinition.
type BuildOption func(*buildConfig)

type buildConfig struct {
	includeTags map[string]struct{}
	excludeTags map[string]struct{}
}

// WithIncludeTags keeps only operations that have at least one of the given
// tags.
func WithIncludeTags(tags []string) BuildOption {
	return func(c *buildConfig) {
		c.includeTags = addTags(c.includeTags, tags)
	}
}

// WithExcludeTags removes operations that have any of the given tags.
func WithExcludeTags(tags []string) BuildOption {
	return func(c *buildConfig) {
		c.excludeTags = addTags(c.excludeTags, tags)
	}
}

func addTags(set map[string]struct{}, tags []string) map[string]struct{} {
	for _, t := range tags {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if set == nil {
			set = map[string]struct{}{}
		}
		set[t] = struct{}{}
	}
	return set
}

func (c *buildConfig) allow(tags []string) bool {
	if len(c.includeTags) > 0 {
		ok := false
		for _, t := range tags {
			if _, yes := c.includeTags[t]; yes {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, t := range tags {
		if _, blocked := c.excludeTags[t]; blocked {
			return false
		}
	}
	return true
}

var methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

type converter struct {
	doc *Document
	def *definition.Definition
	cfg *buildConfig
}

// ToDefinition converts doc into a Definition. Operations are grouped into
// services by their first tag, or DefaultService when untagged, and named
// by operationId, or by verb and path when it is missing. The result has
// been validated.
func ToDefinition(doc *Document, opts ...BuildOption) (*definition.Definition, error) {
	if doc == nil || doc.T == nil {
		return nil, errors.New("ingest: nil document")
	}
	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	c := &converter{
		doc: doc,
		def: &definition.Definition{
			Services: map[string]definition.Service{},
			Models:   map[string]*definition.Model{},
			Enums:    map[string][]string{},
		},
		cfg: cfg,
	}
	c.metadata()
	c.schemas()
	if err := c.paths(); err != nil {
		return nil, err
	}
	if err := c.def.Validate(); err != nil {
		return nil, errors.Wrapf(err, "convert %s", doc.Location)
	}
	logging.Logger.Infow("converted document",
		"location", doc.Location,
		"services", len(c.def.Services),
		"models", len(c.def.Models),
		"enums", len(c.def.Enums))
	return c.def, nil
}

func (c *converter) metadata() {
	md := &c.def.Metadata
	if info := c.doc.Info; info != nil {
		md.Title = strings.TrimSpace(info.Title)
		md.Description = strings.TrimSpace(info.Description)
		md.Version = strings.TrimSpace(info.Version)
	}
	for _, s := range c.doc.Servers {
		if s != nil && s.URL != "" {
			md.BaseURL = s.URL
			break
		}
	}
}

// schemaTokens is the pointer to a named schema in the source document.
func (c *converter) schemaTokens(name string) []string {
	if c.doc.Version == 2 {
		return []string{"definitions", name}
	}
	return []string{"components", "schemas", name}
}

func (c *converter) schemas() {
	if c.doc.Components == nil {
		return
	}
	names := make([]string, 0, len(c.doc.Components.Schemas))
	for name := range c.doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := c.doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		s := ref.Value
		switch {
		case isStringEnum(s):
			c.def.Enums[name] = enumValues(s)
		case isObject(s):
			c.def.Models[name] = c.model(name, s)
		default:
			logging.Logger.Debugw("skipping non-object schema", "schema", name, "type", s.Type)
		}
	}
}

func isStringEnum(s *openapi3.Schema) bool {
	return len(s.Enum) > 0 && (s.Type == "string" || s.Type == "")
}

func isObject(s *openapi3.Schema) bool {
	return s.Type == "object" || len(s.Properties) > 0 || len(s.AllOf) > 0
}

func enumValues(s *openapi3.Schema) []string {
	out := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// model flattens allOf members into one property list. Members come first,
// in declared order, then the schema's own properties.
func (c *converter) model(name string, s *openapi3.Schema) *definition.Model {
	m := definition.NewModel()
	for _, member := range s.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		tokens := c.schemaTokens(name)
		if member.Ref != "" {
			tokens = c.schemaTokens(refName(member.Ref))
		}
		c.properties(m, name, member.Value, tokens)
	}
	c.properties(m, name, s, c.schemaTokens(name))
	return m
}

func (c *converter) properties(m *definition.Model, owner string, s *openapi3.Schema, tokens []string) {
	required := map[string]bool{}
	for _, r := range s.Required {
		required[r] = true
	}
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	for _, prop := range c.doc.order.sorted(keys, append(tokens, "properties")...) {
		d := c.descriptor(s.Properties[prop], owner, prop)
		d.Required = required[prop]
		m.Set(prop, d)
	}
}

func refName(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}

// descriptor maps a schema onto a descriptor. owner and prop name the
// enum synthesized for an inline string enum.
func (c *converter) descriptor(ref *openapi3.SchemaRef, owner, prop string) *definition.Descriptor {
	if ref == nil {
		return definition.PrimitiveOf(definition.Object, "")
	}
	if ref.Ref != "" {
		name := refName(ref.Ref)
		switch v := ref.Value; {
		case v == nil || isObject(v):
			return definition.ComplexOf(name)
		case isStringEnum(v):
			return definition.EnumOf(name)
		}
		return c.descriptor(&openapi3.SchemaRef{Value: ref.Value}, owner, prop)
	}
	s := ref.Value
	if s == nil {
		return definition.PrimitiveOf(definition.Object, "")
	}
	if s.Type == "array" {
		item := c.descriptor(s.Items, owner, prop)
		if item.IsArray {
			return definition.PrimitiveOf(definition.Object, "").AsArray()
		}
		return item.AsArray()
	}
	if isStringEnum(s) {
		return definition.EnumOf(c.inlineEnum(owner, prop, enumValues(s)))
	}
	switch s.Type {
	case "integer":
		return definition.PrimitiveOf(definition.Integer, "")
	case "number":
		return definition.PrimitiveOf(definition.Number, "")
	case "boolean":
		return definition.PrimitiveOf(definition.Boolean, "")
	case "file":
		return definition.PrimitiveOf(definition.File, "")
	case "string":
		switch s.Format {
		case "date-time", "date":
			return definition.PrimitiveOf(definition.String, definition.SubTypeDateTime)
		case "uuid":
			return definition.PrimitiveOf(definition.String, definition.SubTypeUUID)
		case "byte":
			return definition.PrimitiveOf(definition.String, definition.SubTypeByte)
		case "binary":
			return definition.PrimitiveOf(definition.File, "")
		}
		return definition.PrimitiveOf(definition.String, "")
	}
	return definition.PrimitiveOf(definition.Object, "")
}

// inlineEnum registers an anonymous enum as <Prop><Owner>. A name already
// taken by different values gets a numeric suffix.
func (c *converter) inlineEnum(owner, prop string, values []string) string {
	base := naming.Apply(naming.Camelize(prop), naming.PascalCase) + naming.Apply(naming.Camelize(owner), naming.PascalCase)
	name := base
	for i := 2; ; i++ {
		existing, taken := c.def.Enums[name]
		if !taken {
			c.def.Enums[name] = values
			return name
		}
		if equalStrings(existing, values) {
			return name
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *converter) paths() error {
	paths := make([]string, 0, len(c.doc.Paths))
	for p := range c.doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		item := c.doc.Paths[p]
		if item == nil {
			continue
		}
		for _, verb := range methods {
			op := item.GetOperation(strings.ToUpper(verb))
			if op == nil {
				continue
			}
			tags := trimTags(op.Tags)
			if !c.cfg.allow(tags) {
				continue
			}
			service := DefaultService
			if len(tags) > 0 {
				service = tags[0]
			}
			if err := c.operation(service, p, verb, item, op); err != nil {
				return err
			}
		}
	}
	return nil
}

func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (c *converter) operation(service, path, verb string, item *openapi3.PathItem, op *openapi3.Operation) error {
	svc := c.def.Services[service]
	if svc == nil {
		svc = definition.Service{}
		c.def.Services[service] = svc
	}

	name := strings.TrimSpace(op.OperationID)
	if name == "" {
		name = naming.Camelize(verb + " " + strings.NewReplacer("{", "", "}", "").Replace(path))
	}
	base := name
	for i := 2; svc[name] != nil; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}

	o := &definition.Operation{
		Path:      path,
		Verb:      verb,
		Responses: definition.NewResponses(),
	}
	summary, desc := strings.TrimSpace(op.Summary), strings.TrimSpace(op.Description)
	switch {
	case summary != "":
		o.Description = summary
		if desc != summary {
			o.Description2 = desc
		}
	default:
		o.Description = desc
	}

	o.Parameters = c.parameters(name, item.Parameters, op.Parameters)
	body, err := c.requestBody(name, path, verb, op.RequestBody)
	if err != nil {
		return err
	}
	o.Parameters = append(o.Parameters, body...)
	c.responses(o, name, path, verb, op.Responses)

	svc[name] = o
	return nil
}

// parameters merges path-level and operation-level parameters. An
// operation parameter replaces a path parameter with the same name and
// location in place.
func (c *converter) parameters(opName string, shared, own openapi3.Parameters) []*definition.Parameter {
	var out []*definition.Parameter
	index := map[string]int{}
	for _, group := range []openapi3.Parameters{shared, own} {
		for _, ref := range group {
			if ref == nil || ref.Value == nil {
				continue
			}
			p := ref.Value
			kind := definition.ParameterKind(p.In)
			switch kind {
			case definition.InPath, definition.InQuery, definition.InHeader:
			default:
				logging.Logger.Warnw("skipping unsupported parameter", "operation", opName, "name", p.Name, "in", p.In)
				continue
			}
			param := &definition.Parameter{
				Name:        p.Name,
				Kind:        kind,
				Required:    p.Required || kind == definition.InPath,
				DataType:    c.descriptor(p.Schema, opName, p.Name),
				Description: strings.TrimSpace(p.Description),
			}
			param.DataType.Required = param.Required
			key := p.In + ":" + p.Name
			if i, ok := index[key]; ok {
				out[i] = param
				continue
			}
			index[key] = len(out)
			out = append(out, param)
		}
	}
	return out
}

var formMedia = []string{"multipart/form-data", "application/x-www-form-urlencoded"}

// requestBody maps a request body onto a body parameter or, for form
// encodings, onto one formData parameter per property.
func (c *converter) requestBody(opName, path, verb string, ref *openapi3.RequestBodyRef) ([]*definition.Parameter, error) {
	if ref == nil || ref.Value == nil || len(ref.Value.Content) == 0 {
		return nil, nil
	}
	rb := ref.Value

	for _, mime := range formMedia {
		mt := rb.Content[mime]
		if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
			continue
		}
		s := mt.Schema.Value
		required := map[string]bool{}
		for _, r := range s.Required {
			required[r] = true
		}
		keys := make([]string, 0, len(s.Properties))
		for k := range s.Properties {
			keys = append(keys, k)
		}
		var out []*definition.Parameter
		for _, k := range c.doc.order.sorted(keys, "paths", path, verb, "requestBody", "content", mime, "schema", "properties") {
			prop := s.Properties[k]
			d := c.descriptor(prop, opName, k)
			d.Required = required[k]
			p := &definition.Parameter{
				Name:     k,
				Kind:     definition.InFormData,
				Required: required[k],
				DataType: d,
			}
			if prop != nil && prop.Value != nil {
				p.Description = strings.TrimSpace(prop.Value.Description)
			}
			out = append(out, p)
		}
		return out, nil
	}

	mt := preferredMedia(rb.Content)
	if mt == nil {
		return nil, nil
	}
	name := "body"
	if v, ok := rb.Extensions["x-originalParamName"].(string); ok && v != "" {
		name = v
	}
	d := c.descriptor(mt.Schema, opName, name)
	d.Required = rb.Required
	return []*definition.Parameter{{
		Name:        name,
		Kind:        definition.InBody,
		Required:    rb.Required,
		DataType:    d,
		Description: strings.TrimSpace(rb.Description),
	}}, nil
}

// preferredMedia picks application/json, then any JSON media type, then
// the first media type in lexical order.
func preferredMedia(content openapi3.Content) *openapi3.MediaType {
	if mt := content["application/json"]; mt != nil {
		return mt
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, "json") && content[k] != nil {
			return content[k]
		}
	}
	for _, k := range keys {
		if content[k] != nil {
			return content[k]
		}
	}
	return nil
}

func (c *converter) responses(o *definition.Operation, opName, path, verb string, responses openapi3.Responses) {
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	for _, code := range c.doc.order.sorted(codes, "paths", path, verb, "responses") {
		ref := responses[code]
		if ref == nil || ref.Value == nil {
			continue
		}
		r := &definition.Response{}
		if ref.Value.Description != nil {
			r.Description = strings.TrimSpace(*ref.Value.Description)
		}
		if mt := preferredMedia(ref.Value.Content); mt != nil && mt.Schema != nil {
			r.DataType = c.descriptor(mt.Schema, opName, "response")
		}
		o.Responses.Set(code, r)
	}
}
