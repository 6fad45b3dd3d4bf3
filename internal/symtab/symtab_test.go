package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupMissing(t *testing.T) {
	tab := New()
	_, ok := tab.Lookup("CC")
	assert.False(t, ok)
}

func TestAddAndLookup(t *testing.T) {
	tab := New()
	tab.Add("CC", "gcc")

	v, ok := tab.Lookup("CC")
	require := assert.New(t)
	require.True(ok)
	require.Equal("gcc", v)
}

func TestFirstDeclarationWins(t *testing.T) {
	tab := New()
	tab.Add("CC", "gcc")
	tab.Add("CC", "clang")

	v, ok := tab.Lookup("CC")
	assert.True(t, ok)
	assert.Equal(t, "gcc", v, "redefinition must not shadow the first binding")
}

func TestNamesDeduplicatedInDeclarationOrder(t *testing.T) {
	tab := New()
	tab.Add("CC", "gcc")
	tab.Add("CFLAGS", "-O2")
	tab.Add("CC", "clang")

	assert.Equal(t, []string{"CC", "CFLAGS"}, tab.Names())
}

func TestNamesEmpty(t *testing.T) {
	tab := New()
	assert.Empty(t, tab.Names())
}
