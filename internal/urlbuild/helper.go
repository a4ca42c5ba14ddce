package urlbuild

import (
	"github.com/mark3labs/swagen/internal/codewriter"
)

// HelperOptions selects the flavor of the emitted buildServiceUrl helper.
type HelperOptions struct {
	// Typed adds TypeScript annotations and uses let/const.
	Typed bool
	// Quote is the string delimiter, "'" or "\"".
	Quote string
	// Method emits a private class method that reads the base URL from
	// BaseURLExpr instead of taking it as a parameter.
	Method      bool
	BaseURLExpr string
}

func (o HelperOptions) lit(s string) string {
	q := o.Quote
	if q == "" {
		q = "'"
	}
	return q + s + q
}

// WriteHelper emits buildServiceUrl(baseUrl, resourceUrl, pathParams,
// queryParams) in the target language. The emitted function follows Build:
// placeholders are replaced with encoded values, base and resource are
// joined with one slash and falsy query values are skipped.
func WriteHelper(w *codewriter.Writer, o HelperOptions) {
	decl, mut := "var ", "var "
	dict, str, boolean := "", "", ""
	if o.Typed {
		decl, mut = "const ", "let "
		dict = ": {[key: string]: any}"
		str = ": string"
		boolean = ": boolean"
	}
	optional := ""
	if o.Typed {
		optional = "?"
	}

	params := "resourceUrl" + str + ", pathParams" + optional + dict + ", queryParams" + optional + dict
	header := "function buildServiceUrl(baseUrl" + str + ", " + params + ")" + str + " {"
	base := "baseUrl"
	if o.Method {
		header = "private buildServiceUrl(" + params + ")" + str + " {"
		base = o.BaseURLExpr
	}
	loopVar := "var "
	if o.Typed {
		loopVar = "const "
	}

	w.Block(header, "}", func(w *codewriter.Writer) {
		w.Line(mut + "url" + str + " = " + base + ";")
		w.Block("if (pathParams) {", "}", func(w *codewriter.Writer) {
			w.Block("for ("+loopVar+"pp in pathParams) {", "}", func(w *codewriter.Writer) {
				w.Block("if (pathParams.hasOwnProperty(pp)) {", "}", func(w *codewriter.Writer) {
					w.Line("resourceUrl = resourceUrl.split(" + o.lit("{") + " + pp + " + o.lit("}") +
						").join(encodeURIComponent(" + o.lit("") + " + pathParams[pp]));")
				})
			})
		})
		w.Line(decl + "baseUrlSlash" + boolean + " = url[url.length - 1] === " + o.lit("/") + ";")
		w.Line(decl + "resourceUrlSlash" + boolean + " = resourceUrl[0] === " + o.lit("/") + ";")
		w.EnterBlock("if (!baseUrlSlash && !resourceUrlSlash) {")
		w.Line("url += " + o.lit("/") + ";")
		w.Reopen("} else if (baseUrlSlash && resourceUrlSlash) {")
		w.Line("url = url.substr(0, url.length - 1);")
		w.ExitBlock("}")
		w.Line("url += resourceUrl;")
		w.Blank()
		w.Block("if (!queryParams) {", "}", func(w *codewriter.Writer) {
			w.Line("return url;")
		})
		w.Blank()
		w.Line(mut + "queryString" + str + " = " + o.lit("") + ";")
		w.Block("for ("+loopVar+"qp in queryParams) {", "}", func(w *codewriter.Writer) {
			w.Block("if (queryParams.hasOwnProperty(qp) && queryParams[qp]) {", "}", func(w *codewriter.Writer) {
				w.Line("queryString += (queryString ? " + o.lit("&") + " : " + o.lit("") + ") + qp + " +
					o.lit("=") + " + encodeURIComponent(" + o.lit("") + " + queryParams[qp]);")
			})
		})
		w.Line("return queryString ? url + " + o.lit("?") + " + queryString : url;")
	})
}
