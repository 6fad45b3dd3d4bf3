package engine

import (
	"strings"

	"github.com/xmkbuild/xmk/internal/parser"
	"github.com/xmkbuild/xmk/internal/token"
)

// Preprocess performs lexing and macro expansion only (-E) and returns
// the fully expanded source text, reconstructed from the token stream.
// It recognizes the full grammar (so "target NAME { ... }" blocks still
// set the scope $(target...) macros resolve against) but, unlike Parse,
// tolerates a missing build directive: -E's contract is to dump expanded
// source and exit 0, not to validate buildability.
func Preprocess(src []byte) (string, error) {
	p := parser.New(src)

	var out strings.Builder
	needSpace := false
	p.OnToken(func(t token.Token) {
		switch t.Kind {
		case token.Newline:
			out.WriteByte('\n')
			needSpace = false
		case token.OpenBrace:
			if needSpace {
				out.WriteByte(' ')
			}
			out.WriteString("{")
			needSpace = true
		case token.CloseBrace:
			if needSpace {
				out.WriteByte(' ')
			}
			out.WriteString("}")
			needSpace = true
		case token.Word:
			if needSpace {
				out.WriteByte(' ')
			}
			out.WriteString(t.Text)
			needSpace = true
		}
	})

	if err := p.Scan(); err != nil {
		return "", err
	}
	return out.String(), nil
}
