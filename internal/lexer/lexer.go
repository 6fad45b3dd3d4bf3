// Package lexer tokenizes an xmk build file: words, brace delimiters, and
// newline markers, with $(...) and $NAME macro substitution performed
// inline as each word is scanned. Expansion is achieved by splicing a
// define's value into the source buffer at the point of reference and
// resuming the scan from the splice origin, so nested macro references
// are naturally rescanned.
package lexer

import (
	"strconv"
	"strings"

	"github.com/xmkbuild/xmk/internal/buffer"
	"github.com/xmkbuild/xmk/internal/diagnostic"
	"github.com/xmkbuild/xmk/internal/token"
)

// maxWordBytes bounds a single raw word as read from the source, before
// any macro expansion. Spec fixes this at 254 bytes.
const maxWordBytes = 254

// Lexer produces a token at a time from a Buffer, expanding macros as it
// goes. It holds the only scanning position for the buffer; the Buffer
// itself is mutated in place by Splice as defines are expanded.
type Lexer struct {
	buf  *buffer.Buffer
	pos  int
	line int
	ctx  Context
}

func New(buf *buffer.Buffer, ctx Context) *Lexer {
	return &Lexer{buf: buf, pos: 0, line: 1, ctx: ctx}
}

// Line reports the current 1-based line counter, for diagnostics raised
// by callers (e.g. the parser) that don't have a token's own Line handy.
func (l *Lexer) Line() int { return l.line }

// Next returns the next token, performing macro expansion transparently.
// At end of buffer it returns a token.EOF token with a nil error.
func (l *Lexer) Next() (token.Token, error) {
	for {
		tok, rescan, err := l.next()
		if err != nil {
			return token.Token{}, err
		}
		if rescan {
			continue
		}
		return tok, nil
	}
}

func (l *Lexer) next() (token.Token, bool, error) {
	for l.pos < l.buf.Len() {
		ch := l.buf.At(l.pos)
		switch ch {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.pos++
			line := l.line
			l.line++
			return token.Token{Kind: token.Newline, Line: line}, false, nil
		case '#':
			l.skipComment()
		case '{':
			l.pos++
			return token.Token{Kind: token.OpenBrace, Line: l.line}, false, nil
		case '}':
			l.pos++
			return token.Token{Kind: token.CloseBrace, Line: l.line}, false, nil
		default:
			return l.readWord()
		}
	}
	return token.Token{Kind: token.EOF, Line: l.line}, false, nil
}

// readWord reads one quoted or unquoted word and, for unquoted words
// beginning with '$', expands it as a macro.
func (l *Lexer) readWord() (token.Token, bool, error) {
	wordStart := l.pos
	startLine := l.line
	quoted := l.buf.At(l.pos) == '"'

	var text string
	var err error
	if quoted {
		text, err = l.readQuoted()
	} else {
		text, err = l.readUnquoted()
	}
	if err != nil {
		return token.Token{}, false, err
	}

	if !quoted && len(text) > 1 && text[0] == '$' {
		expanded, didSplice, err := l.expandMacro(text, wordStart, startLine)
		if err != nil {
			return token.Token{}, false, err
		}
		if didSplice {
			l.pos = wordStart
			return token.Token{}, true, nil
		}
		text = expanded
	} else if !quoted && text == "$" {
		return token.Token{}, false, diagnostic.LexicalErrorf(startLine, "expected symbol after escaped $ symbol")
	}

	return token.Token{Kind: token.Word, Text: text, Line: startLine}, false, nil
}

func (l *Lexer) skipComment() {
	for l.pos < l.buf.Len() && l.buf.At(l.pos) != '\n' {
		l.pos++
	}
	// leave the '\n' itself for the main loop to turn into a Newline token
}

// readUnquoted reads a whitespace-delimited word starting at l.pos.
func (l *Lexer) readUnquoted() (string, error) {
	start := l.pos
	for l.pos < l.buf.Len() {
		ch := l.buf.At(l.pos)
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '{' || ch == '}' {
			break
		}
		if l.pos-start >= maxWordBytes {
			return "", diagnostic.LexicalErrorf(l.line, "word exceeds %d bytes", maxWordBytes)
		}
		l.pos++
	}
	return l.buf.Slice(start, l.pos), nil
}

// readQuoted reads a "..." word starting at the opening quote; the
// returned text excludes the quotes and preserves interior whitespace.
func (l *Lexer) readQuoted() (string, error) {
	openLine := l.line
	l.pos++ // consume opening quote
	start := l.pos
	for l.pos < l.buf.Len() {
		ch := l.buf.At(l.pos)
		if ch == '"' {
			text := l.buf.Slice(start, l.pos)
			l.pos++ // consume closing quote
			return text, nil
		}
		if ch == '\n' {
			l.line++
		}
		if l.pos-start >= maxWordBytes {
			return "", diagnostic.LexicalErrorf(l.line, "word exceeds %d bytes", maxWordBytes)
		}
		l.pos++
	}
	return "", diagnostic.LexicalErrorf(openLine, "unterminated quoted word")
}

// expandMacro interprets a raw unquoted word beginning with '$'. It
// returns either the literal replacement text (didSplice=false, used
// directly as the token's text) or, for a user $NAME define, splices the
// buffer and asks the caller to rescan from wordStart (didSplice=true).
func (l *Lexer) expandMacro(raw string, wordStart, line int) (result string, didSplice bool, err error) {
	switch {
	case raw[1] == '$':
		// $$... escape: strip exactly one leading '$'.
		return raw[1:], false, nil

	case strings.HasPrefix(raw, "$("):
		return l.expandParenMacro(raw, line)

	default:
		name := raw[1:]
		value, ok := l.ctx.LookupDefine(name)
		if !ok {
			msg := diagnostic.WithSuggestion(
				"undefined symbol $"+name, name, l.ctx.DefineNames())
			return "", false, diagnostic.LexicalErrorf(line, "%s", msg)
		}
		l.buf.Splice(wordStart, wordStart+len(raw), value)
		return "", true, nil
	}
}

func (l *Lexer) expandParenMacro(raw string, line int) (string, bool, error) {
	switch raw {
	case "$(target)":
		name, ok := l.ctx.CurrentTarget()
		if !ok {
			return "", false, diagnostic.LexicalErrorf(line, "$(target) must be used inside a target scope")
		}
		return name, false, nil

	case "$(target_name)":
		name, ok := l.ctx.CurrentTarget()
		if !ok {
			return "", false, diagnostic.LexicalErrorf(line, "$(target_name) must be used inside a target scope")
		}
		if i := strings.IndexByte(name, '.'); i >= 0 {
			return name[:i], false, nil
		}
		return name, false, nil

	case "$(target_ext)":
		name, ok := l.ctx.CurrentTarget()
		if !ok {
			return "", false, diagnostic.LexicalErrorf(line, "$(target_ext) must be used inside a target scope")
		}
		if i := strings.IndexByte(name, '.'); i >= 0 {
			return name[i+1:], false, nil
		}
		return "", false, nil
	}

	if strings.HasPrefix(raw, "$(dep[") && strings.HasSuffix(raw, "])") {
		return l.expandDepIndex(raw, line)
	}

	return "", false, diagnostic.LexicalErrorf(line, "malformed macro reference %q", raw)
}

func (l *Lexer) expandDepIndex(raw string, line int) (string, bool, error) {
	inner := raw[len("$(dep[") : len(raw)-len("])")]
	n, err := strconv.ParseInt(inner, 0, 64)
	if err != nil {
		return "", false, diagnostic.LexicalErrorf(line, "malformed %q: %v", raw, err)
	}
	name, ok := l.ctx.CurrentTarget()
	if !ok {
		return "", false, diagnostic.LexicalErrorf(line, "%s must be used inside a target scope", raw)
	}
	deps, ok := l.ctx.TargetDeps(name)
	if !ok || len(deps) == 0 {
		return "", false, diagnostic.LexicalErrorf(line, "%s: target %q has no deps", raw, name)
	}
	if n < 0 || int(n) >= len(deps) {
		return "", false, diagnostic.LexicalErrorf(line, "%s: index out of range (target %q has %d dep(s))", raw, name, len(deps))
	}
	return deps[n], false, nil
}
