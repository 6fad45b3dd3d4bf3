package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesSource(t *testing.T) {
	src := []byte("hello")
	b := New(src)
	src[0] = 'H'

	require.Equal(t, 5, b.Len())
	assert.Equal(t, "hello", b.Slice(0, 5))
}

func TestSpliceShrinks(t *testing.T) {
	b := New([]byte("foo $X bar"))
	b.Splice(4, 6, "")

	assert.Equal(t, "foo  bar", b.Slice(0, b.Len()))
}

func TestSpliceGrows(t *testing.T) {
	b := New([]byte("a $X b"))
	b.Splice(2, 4, "expanded")

	assert.Equal(t, "a expanded b", b.Slice(0, b.Len()))
}

func TestSpliceAtStart(t *testing.T) {
	b := New([]byte("$X rest"))
	b.Splice(0, 2, "value")

	assert.Equal(t, "value rest", b.Slice(0, b.Len()))
}

func TestSpliceAtEnd(t *testing.T) {
	b := New([]byte("head $X"))
	b.Splice(5, 7, "tail")

	assert.Equal(t, "head tail", b.Slice(0, b.Len()))
}

func TestAt(t *testing.T) {
	b := New([]byte("abc"))
	assert.Equal(t, byte('a'), b.At(0))
	assert.Equal(t, byte('c'), b.At(2))
}
