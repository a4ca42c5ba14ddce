// Package urlbuild composes request URLs from a base URL, a resource
// template and parameters. Build is the reference behavior; WriteHelper
// emits the same algorithm into generated clients.
package urlbuild

import (
	"net/url"
	"regexp"
	"strings"
)

// Param is one query string entry.
type Param struct {
	Key   string
	Value string
}

var placeholderRE = regexp.MustCompile(`\{([^{}]+)\}`)

// Placeholders returns the placeholder names of template in order of
// appearance.
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholderRE.FindAllStringSubmatch(template, -1) {
		names = append(names, m[1])
	}
	return names
}

// unescaped restores the characters encodeURIComponent leaves alone.
var unescaped = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// Escape percent-encodes s for use in a path segment or query value, the
// same way encodeURIComponent does in the generated helper.
func Escape(s string) string {
	return unescaped.Replace(url.QueryEscape(s))
}

// Build substitutes path parameters into resource, joins it to base with
// exactly one slash and appends the non-empty query parameters in order.
// Placeholders without a value are left as they are. A nil query appends
// nothing; a query whose entries are all empty appends nothing either.
func Build(base, resource string, pathParams map[string]string, query []Param) string {
	resource = placeholderRE.ReplaceAllStringFunc(resource, func(m string) string {
		v, ok := pathParams[m[1:len(m)-1]]
		if !ok {
			return m
		}
		return Escape(v)
	})

	baseSlash := strings.HasSuffix(base, "/")
	resourceSlash := strings.HasPrefix(resource, "/")
	u := base
	switch {
	case !baseSlash && !resourceSlash:
		u += "/"
	case baseSlash && resourceSlash:
		u = u[:len(u)-1]
	}
	u += resource

	if query == nil {
		return u
	}
	var b strings.Builder
	for _, p := range query {
		if p.Value == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(Escape(p.Value))
	}
	return u + b.String()
}
