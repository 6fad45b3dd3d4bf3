package engine

import (
	"os"

	"github.com/xmkbuild/xmk/internal/diagnostic"
	"github.com/xmkbuild/xmk/internal/parser"
	"github.com/xmkbuild/xmk/internal/target"
)

// Program is the result of successfully parsing a build file: a
// populated target store and its declared build root. The source buffer
// itself is not retained past this point (it's freed once parsing is
// done, per spec's lifecycle note), except in Preprocess mode.
type Program struct {
	Store     *target.Store
	BuildRoot string
}

// Load reads path, lexes, and parses it into a Program. Any lexical,
// parse, or semantic failure is returned as a *diagnostic.Error.
func Load(path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostic.Wrap(err, "reading "+path)
	}

	p := parser.New(src)
	if err := p.Parse(); err != nil {
		return nil, err
	}

	root, _ := p.BuildRoot() // Parse() guarantees this is set on success
	return &Program{Store: p.Store(), BuildRoot: root}, nil
}
