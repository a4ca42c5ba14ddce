package codewriter

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesAndBlocks(t *testing.T) {
	w := New(TypeScript)
	w.Line("namespace api {").Indent()
	w.EnterBlock("export class PetClient {")
	w.Line("private base: string;")
	w.Blank().Blank()
	w.Block("constructor() {", "}", func(w *Writer) {
		w.Line("this.base = '';")
	})
	w.ExitBlock("}")
	w.Unindent().Line("}")

	want := strings.Join([]string{
		"namespace api {",
		"    export class PetClient {",
		"        private base: string;",
		"",
		"        constructor() {",
		"            this.base = '';",
		"        }",
		"    }",
		"}",
	}, "\n") + "\n"
	assert.Equal(t, want, w.String())
	assert.Equal(t, 0, w.Depth())
}

func TestBlankHygiene(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 200; run++ {
		w := New(TypeScript)
		for step := 0; step < 40; step++ {
			switch rng.Intn(5) {
			case 0, 1:
				w.Blank()
			case 2:
				w.Line("x")
			case 3:
				w.Line("")
			case 4:
				w.Line("a\n\n\nb")
			}
		}
		lines := w.Lines()
		if len(lines) > 0 {
			require.NotEqual(t, "", lines[0], "run %d starts with a blank line", run)
		}
		for i := 1; i < len(lines); i++ {
			require.False(t, lines[i] == "" && lines[i-1] == "", "run %d has consecutive blank lines at %d", run, i)
		}
	}
}

func TestBlockBalance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for run := 0; run < 100; run++ {
		w := New(TypeScript)
		w.Indent()
		start := w.Depth()
		open := 0
		for step := 0; step < 50; step++ {
			if open > 0 && rng.Intn(2) == 0 {
				w.ExitBlock("}")
				open--
				continue
			}
			w.EnterBlock("{")
			open++
		}
		for ; open > 0; open-- {
			w.ExitBlock("}")
		}
		require.Equal(t, start, w.Depth())
	}
}

func TestExitBlockUnderflowPanics(t *testing.T) {
	w := New(TypeScript)
	w.EnterBlock("{").ExitBlock("}")

	defer func() {
		r := recover()
		require.NotNil(t, r)
		ce, ok := r.(*ContractError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, "ExitBlock", ce.Op)
	}()
	w.ExitBlock("}")
}

func TestEndWhenWithoutWhenPanics(t *testing.T) {
	assert.PanicsWithError(t, "codewriter: EndWhen: no open When region", func() {
		New(TypeScript).EndWhen()
	})
}

func TestWhenSuppressesNestedRegions(t *testing.T) {
	w := New(TypeScript)
	w.Line("keep")
	w.When(false)
	w.Line("drop1")
	w.When(true)
	w.Line("drop2").EnterBlock("drop3 {").Inline("drop4").Done()
	ForEach(w, []string{"a", "b"}, func(w *Writer, s string, _ int, _ []string) {
		t.Fatalf("ForEach ran inside a false region with %q", s)
	})
	w.EndWhen()
	w.DocComment("drop5")
	w.ExitBlock("}")
	w.EndWhen()
	w.Line("kept")

	assert.Equal(t, []string{"keep", "kept"}, w.Lines())
	assert.Equal(t, 0, w.Depth())
}

func TestWhenTrueEmits(t *testing.T) {
	w := New(TypeScript)
	w.When(true).Line("yes").When(false).Line("no").EndWhen().Line("again").EndWhen()
	assert.Equal(t, []string{"yes", "again"}, w.Lines())
}

func TestInline(t *testing.T) {
	w := New(TypeScript)
	items := []string{"a", "b", "c"}
	w.EnterBlock("[")
	ForEach(w, items, func(w *Writer, s string, i int, all []string) {
		w.Inline("'", s, "'").InlineIf(i < len(all)-1, ",").Done()
	})
	w.ExitBlock("]")
	assert.Equal(t, []string{"[", "    'a',", "    'b',", "    'c'", "]"}, w.Lines())

	// Done without a pending fragment adds nothing.
	before := w.Len()
	w.Done()
	assert.Equal(t, before, w.Len())
}

func TestStringFlushesPendingInline(t *testing.T) {
	w := New(TypeScript)
	w.Line("a").Inline("b")
	assert.Equal(t, "a\nb\n", w.String())
	assert.Equal(t, 1, w.Len())
}

func TestDocComment(t *testing.T) {
	w := New(TypeScript)
	w.DocComment()
	w.DocComment("", "")
	assert.Equal(t, 0, w.Len())

	w.EnterBlock("class A {")
	w.DocComment("First line", "", "second\nthird")
	w.ExitBlock("}")
	assert.Equal(t, []string{
		"class A {",
		"    /**",
		"     * First line",
		"     * second",
		"     * third",
		"     */",
		"}",
	}, w.Lines())
}

func TestReopen(t *testing.T) {
	w := New(TypeScript)
	w.EnterBlock("if (a) {").Line("x();").Reopen("} else {").Line("y();").ExitBlock("}")
	assert.Equal(t, []string{"if (a) {", "    x();", "} else {", "    y();", "}"}, w.Lines())
}

func TestBlockClosesOnPanic(t *testing.T) {
	w := New(TypeScript)
	func() {
		defer func() { _ = recover() }()
		w.Block("{", "}", func(w *Writer) {
			w.Line("inside")
			panic("boom")
		})
	}()
	assert.Equal(t, 0, w.Depth())
	assert.Equal(t, []string{"{", "    inside", "}"}, w.Lines())
}

func TestBlockRejectsUnbalancedWhen(t *testing.T) {
	w := New(TypeScript)
	assert.PanicsWithError(t, "codewriter: Block: unbalanced When region", func() {
		w.Block("{", "}", func(w *Writer) {
			w.Line("inside")
			w.When(false).Line("hidden")
		})
	})
	assert.Equal(t, 0, w.Depth())
	w.Line("after")
	assert.Equal(t, []string{"{", "    inside", "}", "after"}, w.Lines())
}

func TestEmptyString(t *testing.T) {
	w := New(TypeScript)
	w.Blank()
	assert.Equal(t, "", w.String())
}

func TestQuote(t *testing.T) {
	cases := []struct {
		in, delim, want string
	}{
		{"plain", "'", "'plain'"},
		{"it's", "'", `'it\'s'`},
		{`a\b`, "'", `'a\\b'`},
		{`say "hi"`, `"`, `"say \"hi\""`},
		{"it's", `"`, `"it's"`},
		{"two\nlines", "'", `'two\nlines'`},
		{"cost ${x} `y`", "`", "`cost \\${x} \\`y\\``"},
		{"raw", "", "raw"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Quote(tc.in, tc.delim), tc.in)
	}
}
