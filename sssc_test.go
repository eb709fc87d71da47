package sssc

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sssc-dev/sssc/expression"
)

func compileSource(t *testing.T, src string) string {
	t.Helper()
	css, err := CompileString(fstest.MapFS{}, src, expression.DefaultFormat())
	require.NoError(t, err)
	return css
}

func TestCompileVariablesAndNesting(t *testing.T) {
	css := compileSource(t, `
$primary: #336699;

.card {
  color: $primary;

  .title {
    font-weight: bold;
  }
}
`)
	require.Contains(t, css, "#336699")
	require.Contains(t, css, ".card .title")
}

func TestCompileMixinsAndArguments(t *testing.T) {
	css := compileSource(t, `
@mixin button($color, $padding: 10px) {
  background: $color;
  padding: $padding;
}

.btn {
  @include button(red);
}
`)
	require.Contains(t, css, "background: red")
	require.Contains(t, css, "padding: 10px")
}

func TestCompileIfElseControlFlow(t *testing.T) {
	css := compileSource(t, `
$theme: dark;

.box {
  @if $theme == dark {
    background: black;
  } @else {
    background: white;
  }
}
`)
	require.Contains(t, css, "background: black")
	require.NotContains(t, css, "background: white")
}

func TestCompileEachOverList(t *testing.T) {
	css := compileSource(t, `
@each $name in a, b, c {
  .icon-#{$name} {
    content: "#{$name}";
  }
}
`)
	require.Contains(t, css, ".icon-a")
	require.Contains(t, css, ".icon-b")
	require.Contains(t, css, ".icon-c")
}

func TestCompileMathBuiltins(t *testing.T) {
	css := compileSource(t, `
@use "sass:math";

.box {
  width: math.round(10.6px);
  height: math.abs(-5px);
}
`)
	require.Contains(t, css, "11px")
	require.Contains(t, css, "5px")
}

func TestCompileColorBuiltins(t *testing.T) {
	css := compileSource(t, `
@use "sass:color";

.box {
  color: color.lighten(#000000, 20%);
}
`)
	require.Contains(t, css, "color: #333333;")
}

// TestCompileHslExactMatchEmitsNamedColor covers the case where an hsl()
// call lands exactly on a named color: the named form must win over the
// hsl(...) round-trip formatting.
func TestCompileHslExactMatchEmitsNamedColor(t *testing.T) {
	css := compileSource(t, `
a {
  b: hsl(0, 100%, 50%);
}
`)
	require.Contains(t, css, "b: red;")
}

// TestCompileRgbaTwoArgOverrideAlpha covers the rgba($color, $alpha)
// overload feeding color.fade-in's alpha adjustment.
func TestCompileRgbaTwoArgOverrideAlpha(t *testing.T) {
	css := compileSource(t, `
@use "sass:color";

a {
  b: color.fade-in(rgba(red, 0.5), 0.14);
}
`)
	require.Contains(t, css, "b: rgba(255, 0, 0, 0.64);")
}

func TestCompileUseWithModuleCSS(t *testing.T) {
	fsys := fstest.MapFS{
		"main.sss": &fstest.MapFile{Data: []byte(`
@use "theme";

.page {
  color: theme.$accent;
}
`)},
		"theme.sss": &fstest.MapFile{Data: []byte(`
$accent: #ff6600;

body {
  margin: 0;
}
`)},
	}
	css, err := Compile(fsys, "main.sss", expression.DefaultFormat())
	require.NoError(t, err)
	require.Contains(t, css, "margin: 0")
	require.Contains(t, css, "#ff6600")
}

func TestCompileForwardReexportsMembers(t *testing.T) {
	fsys := fstest.MapFS{
		"main.sss": &fstest.MapFile{Data: []byte(`
@use "lib";

.a {
  width: lib.$size;
}
`)},
		"lib.sss": &fstest.MapFile{Data: []byte(`
@forward "sizes";
`)},
		"sizes.sss": &fstest.MapFile{Data: []byte(`
$size: 42px;
`)},
	}
	css, err := Compile(fsys, "main.sss", expression.DefaultFormat())
	require.NoError(t, err)
	require.Contains(t, css, "42px")
}

func TestCompileModuleCycleDetected(t *testing.T) {
	fsys := fstest.MapFS{
		"a.sss": &fstest.MapFile{Data: []byte(`@use "b";`)},
		"b.sss": &fstest.MapFile{Data: []byte(`@use "a";`)},
	}
	_, err := Compile(fsys, "a.sss", expression.DefaultFormat())
	require.Error(t, err)
}

func TestCompileFunctionDefinitionAndReturn(t *testing.T) {
	css := compileSource(t, `
@function double($n) {
  @return $n * 2;
}

.box {
  width: double(5px);
}
`)
	require.Contains(t, css, "10px")
}

// TestCompileExpandedOutputMatchesGolden compares the full rendered
// output byte-for-byte, the way the teacher's own lessgo_test.go used
// cmp.Diff against an expected CSS fixture rather than just checking
// substrings.
func TestCompileExpandedOutputMatchesGolden(t *testing.T) {
	css := compileSource(t, `
$primary: #336699;

.card {
  color: $primary;
}
`)
	want := ".card {\n  color: #336699;\n}\n"
	if diff := cmp.Diff(want, css); diff != "" {
		t.Errorf("compiled CSS mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileCompressedFormat(t *testing.T) {
	css, err := CompileString(fstest.MapFS{}, `
.box {
  color: red;
}
`, expression.Format{Style: expression.Compressed})
	require.NoError(t, err)
	require.NotContains(t, css, "\n\n")
}
