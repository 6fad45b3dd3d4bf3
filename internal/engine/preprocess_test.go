package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessExpandsDefines(t *testing.T) {
	src := `
define CC as gcc
build all
target all {
	created using { $CC -o all main.c }
}
`
	out, err := Preprocess([]byte(src))
	require.NoError(t, err)
	assert.Contains(t, out, "gcc -o all main.c")
	assert.NotContains(t, out, "$CC")
}

func TestPreprocessToleratesMissingBuildDirective(t *testing.T) {
	src := `
target all {
	created using { touch all }
}
`
	_, err := Preprocess([]byte(src))
	require.NoError(t, err)
}

func TestPreprocessResolvesTargetScopedMacros(t *testing.T) {
	src := `
build all.bin
target all.bin {
	depends on { main.o }
	created using { cc -o $(target_name) $(dep[0]) }
}
`
	out, err := Preprocess([]byte(src))
	require.NoError(t, err)
	assert.Contains(t, out, "cc -o all main.o")
}

func TestPreprocessPropagatesLexicalError(t *testing.T) {
	src := `build $UNDEFINED`
	_, err := Preprocess([]byte(src))
	require.Error(t, err)
}
