package module

import (
	"testing"
	"testing/fstest"

	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/functions"
	"github.com/stretchr/testify/require"
)

func TestLoadResolvesPlainStylesheet(t *testing.T) {
	fsys := fstest.MapFS{
		"theme.sss": {Data: []byte(`$accent: #2ecc71; .theme { color: $accent; }`)},
	}
	l := New(fsys, expression.DefaultFormat(), functions.New())

	sc, err := l.Load("theme")
	require.NoError(t, err)
	require.False(t, expression.IsNull(sc.Get("accent")))
	require.Contains(t, l.CSS(), ".theme")
}

func TestLoadPrefersPartialFile(t *testing.T) {
	fsys := fstest.MapFS{
		"_theme.sss": {Data: []byte(`$accent: red;`)},
	}
	l := New(fsys, expression.DefaultFormat(), functions.New())

	_, err := l.Load("theme")
	require.NoError(t, err)
}

func TestLoadCachesByCanonicalPath(t *testing.T) {
	fsys := fstest.MapFS{
		"theme.sss": {Data: []byte(`$accent: blue;`)},
	}
	l := New(fsys, expression.DefaultFormat(), functions.New())

	first, err := l.Load("theme")
	require.NoError(t, err)
	second, err := l.Load("theme")
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestLoadMissingModuleErrors(t *testing.T) {
	l := New(fstest.MapFS{}, expression.DefaultFormat(), functions.New())
	_, err := l.Load("nope")
	require.Error(t, err)
}

func TestLoadDetectsCycle(t *testing.T) {
	fsys := fstest.MapFS{
		"a.sss": {Data: []byte(`@use "b";`)},
		"b.sss": {Data: []byte(`@use "a";`)},
	}
	l := New(fsys, expression.DefaultFormat(), functions.New())

	_, err := l.Load("a")
	require.Error(t, err, "a loop between two @use'd modules must be rejected")
}

func TestLoadBuiltinNamespaceIsEmptyScope(t *testing.T) {
	l := New(fstest.MapFS{}, expression.DefaultFormat(), functions.New())
	sc, err := l.Load("sass:math")
	require.NoError(t, err)
	require.True(t, expression.IsNull(sc.Get("pi")), "the builtin namespace scope carries no bindings of its own")
}

func TestTakeLastCSSClearsAfterRead(t *testing.T) {
	fsys := fstest.MapFS{
		"theme.sss": {Data: []byte(`.theme { color: red; }`)},
	}
	l := New(fsys, expression.DefaultFormat(), functions.New())
	_, err := l.Load("theme")
	require.NoError(t, err)

	require.NotEmpty(t, l.TakeLastCSS())
	require.Empty(t, l.TakeLastCSS())
}
