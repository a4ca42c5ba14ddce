package urlbuild

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mark3labs/swagen/internal/codewriter"
)

func TestBuild(t *testing.T) {
	cases := []struct {
		name       string
		base, path string
		pathParams map[string]string
		query      []Param
		want       string
	}{
		{"both slashes", "http://x/", "/a/b", nil, nil, "http://x/a/b"},
		{"no slashes", "http://x", "a/b", nil, nil, "http://x/a/b"},
		{"one slash", "http://x/", "a", nil, nil, "http://x/a"},
		{"empty query value dropped", "http://x/", "a", map[string]string{}, []Param{{"q", "1"}, {"z", ""}}, "http://x/a?q=1"},
		{"path param", "http://x", "/items/{id}", map[string]string{"id": "7"}, nil, "http://x/items/7"},
		{"all query dropped", "http://x", "/a", nil, []Param{{"z", ""}}, "http://x/a"},
		{"empty query slice", "http://x", "/a", nil, []Param{}, "http://x/a"},
		{"query order kept", "http://x", "/a", nil, []Param{{"b", "2"}, {"a", "1"}}, "http://x/a?b=2&a=1"},
		{"escaping", "http://x", "/f/{name}", map[string]string{"name": "a b/c"}, []Param{{"q", "x&y=z"}}, "http://x/f/a%20b%2Fc?q=x%26y%3Dz"},
		{"reserved marks kept", "http://x", "/f/{name}", map[string]string{"name": "a(b)"}, []Param{{"q", "it's"}, {"r", "x*y!~"}}, "http://x/f/a(b)?q=it's&r=x*y!~"},
		{"unresolved placeholder", "http://x", "/a/{id}/{rest}", map[string]string{"id": "1"}, nil, "http://x/a/1/{rest}"},
		{"repeated placeholder", "http://x", "/{id}/{id}", map[string]string{"id": "1"}, nil, "http://x/1/1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Build(tc.base, tc.path, tc.pathParams, tc.query))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"petId", "tagId"}, Placeholders("/pet/{petId}/tags/{tagId}"))
	assert.Nil(t, Placeholders("/pet"))
}

func TestWriteHelperJavaScript(t *testing.T) {
	w := codewriter.New(codewriter.JavaScript)
	WriteHelper(w, HelperOptions{Quote: "\""})
	out := w.String()

	assert.True(t, strings.HasPrefix(out, "function buildServiceUrl(baseUrl, resourceUrl, pathParams, queryParams) {\n"))
	assert.Contains(t, out, "    var url = baseUrl;\n")
	assert.Contains(t, out, `resourceUrl = resourceUrl.split("{" + pp + "}").join(encodeURIComponent("" + pathParams[pp]));`)
	assert.Contains(t, out, "    } else if (baseUrlSlash && resourceUrlSlash) {\n        url = url.substr(0, url.length - 1);\n    }\n")
	assert.NotContains(t, out, "'")
	assert.Equal(t, 0, w.Depth())
}

func TestWriteHelperTypedMethod(t *testing.T) {
	w := codewriter.New(codewriter.TypeScript)
	w.Indent()
	WriteHelper(w, HelperOptions{Typed: true, Quote: "'", Method: true, BaseURLExpr: "this.baseUrl"})
	w.Unindent()
	lines := w.Lines()

	assert.Equal(t, "    private buildServiceUrl(resourceUrl: string, pathParams?: {[key: string]: any}, queryParams?: {[key: string]: any}): string {", lines[0])
	assert.Equal(t, "        let url: string = this.baseUrl;", lines[1])
	assert.Equal(t, "    }", lines[len(lines)-1])
	assert.Contains(t, w.String(), "const baseUrlSlash: boolean = url[url.length - 1] === '/';")
}

func TestEscapeMatchesEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"a(b)":  "a(b)",
		"it's":  "it's",
		"x*y!~": "x*y!~",
		"a b":   "a%20b",
		"a+b":   "a%2Bb",
		"%21":   "%2521",
		"é/?#&": "%C3%A9%2F%3F%23%26",
	}
	for in, want := range cases {
		assert.Equal(t, want, Escape(in), in)
	}
}
