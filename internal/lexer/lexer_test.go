package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xmkbuild/xmk/internal/buffer"
	"github.com/xmkbuild/xmk/internal/token"
)

// fakeContext is a minimal, test-controlled Context: a define table plus
// an optional current target and its deps, set directly by each test.
type fakeContext struct {
	defines map[string]string
	target  string
	hasTgt  bool
	deps    []string
}

func (f *fakeContext) CurrentTarget() (string, bool) { return f.target, f.hasTgt }
func (f *fakeContext) TargetDeps(name string) ([]string, bool) {
	if !f.hasTgt || name != f.target {
		return nil, false
	}
	return f.deps, true
}
func (f *fakeContext) LookupDefine(name string) (string, bool) {
	v, ok := f.defines[name]
	return v, ok
}
func (f *fakeContext) DefineNames() []string {
	names := make([]string, 0, len(f.defines))
	for n := range f.defines {
		names = append(names, n)
	}
	return names
}

func tokenize(t *testing.T, src string, ctx *fakeContext) []token.Token {
	t.Helper()
	if ctx == nil {
		ctx = &fakeContext{defines: map[string]string{}}
	}
	l := New(buffer.New([]byte(src)), ctx)
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func words(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, tk := range toks {
		if tk.Kind == token.Word {
			out = append(out, tk.Text)
		}
	}
	return out
}

func TestLexUnquotedWords(t *testing.T) {
	toks := tokenize(t, "build all", nil)
	require.Equal(t, []string{"build", "all"}, words(toks))
}

func TestLexBracesAndNewlines(t *testing.T) {
	toks := tokenize(t, "target all {\n}\n", nil)
	kinds := make([]token.Kind, len(toks))
	for i, tk := range toks {
		kinds[i] = tk.Kind
	}
	require.Equal(t, []token.Kind{
		token.Word, token.Word, token.OpenBrace, token.Newline, token.CloseBrace, token.Newline,
	}, kinds)
}

func TestLexCommentsAreSkipped(t *testing.T) {
	toks := tokenize(t, "build all # trailing comment\n", nil)
	require.Equal(t, []string{"build", "all"}, words(toks))
}

func TestLexQuotedWordPreservesWhitespace(t *testing.T) {
	toks := tokenize(t, `created using { "echo hello world" }`, nil)
	require.Equal(t, []string{"created", "using", "echo hello world"}, words(toks))
}

func TestLexDefineExpansion(t *testing.T) {
	ctx := &fakeContext{defines: map[string]string{"CC": "gcc"}}
	toks := tokenize(t, "created using { $CC -c main.c }", ctx)
	require.Equal(t, []string{"created", "using", "gcc", "-c", "main.c"}, words(toks))
}

func TestLexNestedDefineExpansion(t *testing.T) {
	ctx := &fakeContext{defines: map[string]string{
		"CC":    "$COMPILER",
		"COMPILER": "clang",
	}}
	toks := tokenize(t, "$CC", ctx)
	require.Equal(t, []string{"clang"}, words(toks))
}

func TestLexUndefinedSymbolErrors(t *testing.T) {
	ctx := &fakeContext{defines: map[string]string{"CFLAGS": "-O2"}}
	l := New(buffer.New([]byte("$CFLAG")), ctx)
	_, err := l.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "undefined symbol")
	require.Contains(t, err.Error(), "CFLAGS")
}

func TestLexDollarEscape(t *testing.T) {
	toks := tokenize(t, "$$literal", nil)
	require.Equal(t, []string{"$literal"}, words(toks))
}

func TestLexLoneDollarErrors(t *testing.T) {
	l := New(buffer.New([]byte("$")), &fakeContext{defines: map[string]string{}})
	_, err := l.Next()
	require.Error(t, err)
}

func TestLexTargetMacro(t *testing.T) {
	ctx := &fakeContext{target: "main.o", hasTgt: true}
	toks := tokenize(t, "$(target) $(target_name) $(target_ext)", ctx)
	require.Equal(t, []string{"main.o", "main", "o"}, words(toks))
}

func TestLexTargetMacroOutsideScopeErrors(t *testing.T) {
	l := New(buffer.New([]byte("$(target)")), &fakeContext{})
	_, err := l.Next()
	require.Error(t, err)
}

func TestLexDepIndexMacro(t *testing.T) {
	ctx := &fakeContext{target: "main.o", hasTgt: true, deps: []string{"main.c", "main.h"}}
	toks := tokenize(t, "$(dep[0]) $(dep[1])", ctx)
	require.Equal(t, []string{"main.c", "main.h"}, words(toks))
}

func TestLexDepIndexOutOfRangeErrors(t *testing.T) {
	ctx := &fakeContext{target: "main.o", hasTgt: true, deps: []string{"main.c"}}
	l := New(buffer.New([]byte("$(dep[5])")), ctx)
	_, err := l.Next()
	require.Error(t, err)
}

func TestLexMalformedParenMacroErrors(t *testing.T) {
	l := New(buffer.New([]byte("$(bogus)")), &fakeContext{target: "x", hasTgt: true})
	_, err := l.Next()
	require.Error(t, err)
}

func TestLexWordLengthLimit(t *testing.T) {
	long := make([]byte, maxWordBytes+10)
	for i := range long {
		long[i] = 'a'
	}
	l := New(buffer.New(long), &fakeContext{})
	_, err := l.Next()
	require.Error(t, err)
}

func TestLexUnterminatedQuoteErrors(t *testing.T) {
	l := New(buffer.New([]byte(`"never closed`)), &fakeContext{})
	_, err := l.Next()
	require.Error(t, err)
}
