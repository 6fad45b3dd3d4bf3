// Package parser implements xmk's table-driven recognizer: five small
// statement rules (build, target, define, depends on, created using),
// each a fixed recipe of keyword/symbol/list/nested-scope steps, matched
// against a token stream produced by internal/lexer.
//
// The parser also implements lexer.Context: it owns the symbol table and
// target store the lexer consults to resolve $(target...) and $(dep[N])
// macros, so there is exactly one piece of process-wide state for both
// passes to share, per spec's "bundle into a single engine value" design
// note.
package parser

import (
	"strings"

	"github.com/xmkbuild/xmk/internal/buffer"
	"github.com/xmkbuild/xmk/internal/diagnostic"
	"github.com/xmkbuild/xmk/internal/lexer"
	"github.com/xmkbuild/xmk/internal/symtab"
	"github.com/xmkbuild/xmk/internal/target"
	"github.com/xmkbuild/xmk/internal/token"
)

// Parser recognizes the xmk DSL described in spec §4.2 and populates a
// symbol table, a target store, and a build root as it goes.
type Parser struct {
	ts *stream

	defines *symtab.Table
	store   *target.Store

	scope        string // current target scope name; "" if none open
	buildRoot    string
	buildRootSet bool
}

// New creates a parser over src. The parser is itself the lexer.Context
// macros are resolved against, so lexing and parsing share one set of
// defines/targets/scope.
func New(src []byte) *Parser {
	p := &Parser{
		defines: symtab.New(),
		store:   target.NewStore(),
	}
	buf := buffer.New(src)
	p.ts = newStream(lexer.New(buf, p))
	return p
}

// --- lexer.Context ---

func (p *Parser) CurrentTarget() (string, bool) {
	if p.scope == "" {
		return "", false
	}
	return p.scope, true
}

func (p *Parser) TargetDeps(name string) ([]string, bool) {
	return p.store.Deps(name)
}

func (p *Parser) LookupDefine(name string) (string, bool) {
	return p.defines.Lookup(name)
}

func (p *Parser) DefineNames() []string {
	return p.defines.Names()
}

// --- results ---

func (p *Parser) Store() *target.Store { return p.store }

func (p *Parser) Defines() *symtab.Table { return p.defines }

// BuildRoot returns the declared build target, and whether one was set.
func (p *Parser) BuildRoot() (string, bool) {
	return p.buildRoot, p.buildRootSet
}

// OnToken registers a callback invoked once for every token freshly read
// from the lexer (not for pushed-back tokens re-delivered from the
// one-token buffer), in source order. Preprocess-only mode (-E) uses
// this to reconstruct the fully macro-expanded source without needing a
// second, separate lexing pass.
func (p *Parser) OnToken(fn func(t token.Token)) {
	p.ts.onToken = fn
}

// Parse recognizes the whole token stream, dispatching top-level
// statements (build / target / define) until EOF. It is a ParseError
// (fatal, per spec) to reach EOF without a build directive.
func (p *Parser) Parse() error {
	if err := p.drain(); err != nil {
		return err
	}
	if !p.buildRootSet {
		return diagnostic.ParseErrorf(p.ts.Line(), "No build target")
	}
	return nil
}

// Scan tokenizes and recognizes the whole stream exactly like Parse, but
// does not require a build directive to have been declared. Preprocess
// mode (-E) uses this: it performs lexing and macro expansion (and, as a
// side effect of recognizing "target" blocks, correct $(target...) scope
// tracking) without caring whether the file is a buildable program.
func (p *Parser) Scan() error {
	return p.drain()
}

func (p *Parser) drain() error {
	for {
		tok, err := p.ts.Next()
		if err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			return nil
		}
		if tok.Kind != token.Word {
			continue // SEARCHING: unmatched token is silently ignored
		}
		switch tok.Text {
		case "build":
			if err := p.parseBuild(); err != nil {
				return err
			}
		case "target":
			if err := p.parseTarget(); err != nil {
				return err
			}
		case "define":
			if err := p.parseDefine(); err != nil {
				return err
			}
		}
	}
}

// parseBuild recognizes "build SYMBOL" (the "build" keyword is already
// consumed). Recipe: KEYWORD SYMBOL END.
func (p *Parser) parseBuild() error {
	tok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if tok.Kind != token.Word {
		p.ts.Unread(tok)
		return nil
	}
	if p.buildRootSet {
		return diagnostic.SemanticErrorf(tok.Line, "build target already set (multiple build directives)")
	}
	p.buildRoot = tok.Text
	p.buildRootSet = true
	return nil
}

// parseDefine recognizes either "define SYMBOL as SYMBOL" or
// "define { word ... } as SYMBOL" (the "define" keyword already
// consumed). The joined-list form binds the space-joined entries as the
// name.
func (p *Parser) parseDefine() error {
	first, err := p.ts.Next()
	if err != nil {
		return err
	}

	var name string
	switch first.Kind {
	case token.OpenBrace:
		entries, err := p.readList()
		if err != nil {
			return err
		}
		name = strings.Join(entries, " ")
	case token.Word:
		name = first.Text
	default:
		p.ts.Unread(first)
		return nil
	}

	asTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if asTok.Kind != token.Word || asTok.Text != "as" {
		p.ts.Unread(asTok)
		return nil
	}

	valueTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if valueTok.Kind != token.Word {
		p.ts.Unread(valueTok)
		return nil
	}

	p.defines.Add(name, valueTok.Text)
	return nil
}

// parseTarget recognizes "target SYMBOL { <body> }" (the "target"
// keyword already consumed). Recipe: KEYWORD SYMBOL NESTED_RULE END.
func (p *Parser) parseTarget() error {
	nameTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if nameTok.Kind != token.Word {
		p.ts.Unread(nameTok)
		return nil
	}

	braceTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if braceTok.Kind != token.OpenBrace {
		p.ts.Unread(braceTok)
		return nil
	}

	if _, err := p.store.AddTarget(nameTok.Text); err != nil {
		return diagnostic.SemanticErrorf(nameTok.Line, "duplicate target %q", nameTok.Text)
	}

	p.scope = nameTok.Text // on_scope_open hook: CurrentScope := NAME
	err = p.parseTargetBody()
	p.scope = ""
	return err
}

// parseTargetBody recognizes the statements permitted inside a target
// block ("depends on", "created using") until the closing '}'. This is
// the nested rule-matching the NESTED_RULE step re-enters SEARCHING for;
// because it only recognizes these two rules (not "target" itself), the
// grammar's depth-2 cap falls out structurally rather than from an
// explicit counter.
func (p *Parser) parseTargetBody() error {
	for {
		tok, err := p.ts.Next()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case token.CloseBrace:
			return nil
		case token.EOF:
			return diagnostic.ParseErrorf(tok.Line, "unterminated target %q block", p.scope)
		case token.Word:
			switch tok.Text {
			case "depends":
				if err := p.parseDependsOn(); err != nil {
					return err
				}
			case "created":
				if err := p.parseCreatedUsing(); err != nil {
					return err
				}
			}
		}
	}
}

// parseDependsOn recognizes "depends on { word ... }" (the "depends"
// keyword already consumed). Recipe: KEYWORD KEYWORD LIST END.
func (p *Parser) parseDependsOn() error {
	onTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if onTok.Kind != token.Word || onTok.Text != "on" {
		p.ts.Unread(onTok)
		return nil
	}

	braceTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if braceTok.Kind != token.OpenBrace {
		p.ts.Unread(braceTok)
		return nil
	}

	entries, err := p.readList()
	if err != nil {
		return err
	}
	for _, dep := range entries {
		_ = p.store.AppendDep(p.scope, dep)
	}
	return nil
}

// parseCreatedUsing recognizes "created using { word ... }" (the
// "created" keyword already consumed). Recipe: KEYWORD KEYWORD LIST END.
func (p *Parser) parseCreatedUsing() error {
	usingTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if usingTok.Kind != token.Word || usingTok.Text != "using" {
		p.ts.Unread(usingTok)
		return nil
	}

	braceTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	if braceTok.Kind != token.OpenBrace {
		p.ts.Unread(braceTok)
		return nil
	}

	entries, err := p.readList()
	if err != nil {
		return err
	}
	for _, cmd := range entries {
		_ = p.store.AppendCommand(p.scope, cmd)
	}
	return nil
}

// readList reads words until the matching '}' (the opening '{' has
// already been consumed). Segmentation is line-sensitive: words on the
// same logical line join into one entry separated by single spaces; a
// Newline token starts a new entry. '{'/'}' nested inside are tracked as
// scope delimiters, not words, purely to find the true matching close.
func (p *Parser) readList() ([]string, error) {
	depth := 1
	var entries []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			entries = append(entries, strings.Join(current, " "))
			current = nil
		}
	}

	for {
		tok, err := p.ts.NextRaw()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.EOF:
			return nil, diagnostic.ParseErrorf(tok.Line, "unterminated list")
		case token.OpenBrace:
			depth++
		case token.CloseBrace:
			depth--
			if depth == 0 {
				flush()
				return entries, nil
			}
		case token.Newline:
			flush()
		case token.Word:
			current = append(current, tok.Text)
		}
	}
}
