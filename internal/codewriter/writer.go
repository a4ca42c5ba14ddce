// Package codewriter is an indentation-aware text builder used by every
// dialect emitter.
//
// A Writer keeps finalized lines plus a cursor: indentation depth, a pending
// inline fragment and a stack of When regions. Blank lines collapse, so call
// sites may request separation freely. A Writer is owned by one generation
// run and is not safe for concurrent use.
package codewriter

import (
	"fmt"
	"strings"
)

// Options controls indentation and documentation comment markers.
type Options struct {
	Indent   string
	DocStart string
	DocLine  string
	DocEnd   string
	NewLine  string
}

// TypeScript is the preset used by the TypeScript dialects.
var TypeScript = Options{
	Indent:   "    ",
	DocStart: "/**",
	DocLine:  " * ",
	DocEnd:   " */",
	NewLine:  "\n",
}

// JavaScript shares the TypeScript layout; JSDoc uses the same markers.
var JavaScript = TypeScript

// ContractError is raised, by panic, when a call sequence is malformed:
// exiting a block at depth zero or closing a When region that was never
// opened.
type ContractError struct {
	Op      string
	Message string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("codewriter: %s: %s", e.Op, e.Message)
}

// Writer builds source text line by line.
type Writer struct {
	opts Options

	lines     []string
	lastBlank bool
	depth     int
	pending   strings.Builder
	hasInline bool

	// whens records, per open When region, whether it was false.
	whens      []bool
	suppressed int
}

// New returns an empty Writer.
func New(opts Options) *Writer {
	if opts.NewLine == "" {
		opts.NewLine = "\n"
	}
	return &Writer{opts: opts}
}

func (w *Writer) off() bool { return w.suppressed > 0 }

func (w *Writer) put(text string) {
	prefix := strings.Repeat(w.opts.Indent, w.depth)
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			if len(w.lines) > 0 && !w.lastBlank {
				w.lines = append(w.lines, "")
				w.lastBlank = true
			}
			continue
		}
		w.lines = append(w.lines, prefix+part)
		w.lastBlank = false
	}
}

// Line writes each string as a line at the current depth. An empty string
// is treated as a blank-line request.
func (w *Writer) Line(texts ...string) *Writer {
	if w.off() {
		return w
	}
	for _, text := range texts {
		if text == "" {
			w.Blank()
			continue
		}
		w.put(text)
	}
	return w
}

// Linef formats and writes one line.
func (w *Writer) Linef(format string, args ...any) *Writer {
	return w.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line unless the buffer is empty or already ends
// with one.
func (w *Writer) Blank() *Writer {
	if w.off() || len(w.lines) == 0 || w.lastBlank {
		return w
	}
	w.lines = append(w.lines, "")
	w.lastBlank = true
	return w
}

// BlankIf calls Blank when cond holds.
func (w *Writer) BlankIf(cond bool) *Writer {
	if cond {
		w.Blank()
	}
	return w
}

// EnterBlock writes header, when non-empty, and increases the depth.
func (w *Writer) EnterBlock(header string) *Writer {
	if w.off() {
		return w
	}
	if header != "" {
		w.put(header)
	}
	w.depth++
	return w
}

// ExitBlock decreases the depth and writes trailer, when non-empty, at the
// new depth. It panics with *ContractError at depth zero.
func (w *Writer) ExitBlock(trailer string) *Writer {
	if w.off() {
		return w
	}
	if w.depth == 0 {
		panic(&ContractError{Op: "ExitBlock", Message: "depth underflow"})
	}
	w.depth--
	if trailer != "" {
		w.put(trailer)
	}
	return w
}

// Reopen closes the current block with text and opens a new one at the same
// depth, as in "} else {".
func (w *Writer) Reopen(text string) *Writer {
	if w.off() {
		return w
	}
	w.ExitBlock(text)
	w.depth++
	return w
}

// Block writes header, runs fn one level deeper and writes trailer. The
// block is closed even when fn panics or returns early. It panics with
// *ContractError when fn leaves a When region open or closes one it did
// not open.
func (w *Writer) Block(header, trailer string, fn func(w *Writer)) *Writer {
	if w.off() {
		return w
	}
	w.EnterBlock(header)
	open := len(w.whens)
	defer func() {
		for len(w.whens) > open {
			w.EndWhen()
		}
		w.ExitBlock(trailer)
	}()
	fn(w)
	if len(w.whens) != open {
		panic(&ContractError{Op: "Block", Message: "unbalanced When region"})
	}
	return w
}

// Indent increases the depth without writing anything.
func (w *Writer) Indent() *Writer { return w.EnterBlock("") }

// Unindent decreases the depth without writing anything.
func (w *Writer) Unindent() *Writer { return w.ExitBlock("") }

// Inline appends fragments to the pending line.
func (w *Writer) Inline(fragments ...string) *Writer {
	if w.off() {
		return w
	}
	for _, f := range fragments {
		w.pending.WriteString(f)
	}
	w.hasInline = true
	return w
}

// InlineIf appends fragment to the pending line when cond holds.
func (w *Writer) InlineIf(cond bool, fragment string) *Writer {
	if cond {
		w.Inline(fragment)
	}
	return w
}

// Done flushes the pending line at the current depth. It is a no-op when
// nothing is pending.
func (w *Writer) Done() *Writer {
	if w.off() || !w.hasInline {
		return w
	}
	text := w.pending.String()
	w.pending.Reset()
	w.hasInline = false
	if text == "" {
		return w
	}
	w.put(text)
	return w
}

// When opens a region that is emitted only if cond holds. Regions nest and
// are closed by EndWhen.
func (w *Writer) When(cond bool) *Writer {
	w.whens = append(w.whens, cond)
	if !cond {
		w.suppressed++
	}
	return w
}

// EndWhen closes the innermost When region.
func (w *Writer) EndWhen() *Writer {
	n := len(w.whens)
	if n == 0 {
		panic(&ContractError{Op: "EndWhen", Message: "no open When region"})
	}
	if !w.whens[n-1] {
		w.suppressed--
	}
	w.whens = w.whens[:n-1]
	return w
}

// ForEach calls fn for every item in order. It does not touch indentation
// and is skipped entirely inside a false When region.
func ForEach[T any](w *Writer, items []T, fn func(w *Writer, item T, i int, all []T)) *Writer {
	if w.off() {
		return w
	}
	for i, item := range items {
		fn(w, item, i, items)
	}
	return w
}

// DocComment writes a documentation block. Empty strings are dropped and
// nothing is written when no text remains.
func (w *Writer) DocComment(texts ...string) *Writer {
	if w.off() {
		return w
	}
	var body []string
	for _, text := range texts {
		for _, part := range strings.Split(text, "\n") {
			if part = strings.TrimRight(part, " \t\r"); part != "" {
				body = append(body, part)
			}
		}
	}
	if len(body) == 0 {
		return w
	}
	w.put(w.opts.DocStart)
	for _, part := range body {
		w.put(w.opts.DocLine + part)
	}
	w.put(w.opts.DocEnd)
	return w
}

// Depth reports the current indentation depth.
func (w *Writer) Depth() int { return w.depth }

// Len reports the number of finalized lines.
func (w *Writer) Len() int { return len(w.lines) }

// Lines returns a copy of the finalized lines.
func (w *Writer) Lines() []string {
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}

// String renders the buffer. A pending inline fragment is included as a
// final line; trailing blank lines are dropped and the text ends with one
// newline. An empty buffer renders as "".
func (w *Writer) String() string {
	lines := w.Lines()
	if w.hasInline && w.pending.Len() > 0 {
		lines = append(lines, strings.Repeat(w.opts.Indent, w.depth)+w.pending.String())
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, w.opts.NewLine) + w.opts.NewLine
}
