package output

import (
	"testing"

	"github.com/sssc-dev/sssc/expression"
	"github.com/stretchr/testify/require"
)

func TestWritePropertyAndEndRuleExpanded(t *testing.T) {
	root := New(expression.DefaultFormat())
	body := root.BeginRule()
	body.WriteProperty("color", "red")
	root.EndRule(".box", body)

	require.Equal(t, ".box {\n  color: red;\n}\n", root.String())
}

func TestEndRuleSuppressesEmptyBody(t *testing.T) {
	root := New(expression.DefaultFormat())
	body := root.BeginRule()
	root.EndRule(".empty", body)

	require.Equal(t, "", root.String())
}

func TestCompressedDropsWhitespaceAndTrailingSemicolon(t *testing.T) {
	root := New(expression.DefaultFormat().Compressed())
	body := root.BeginRule()
	body.WriteProperty("color", "red")
	body.WriteProperty("margin", "0")
	root.EndRule(".box", body)

	require.Equal(t, ".box{color:red;margin:0}", root.String())
}

func TestCompressedDropsComments(t *testing.T) {
	root := New(expression.DefaultFormat().Compressed())
	root.WriteComment("/* kept in expanded only */")
	require.Equal(t, "", root.String())
}

func TestWriteCharsetIfNeededOnlyWhenNonASCIISeen(t *testing.T) {
	root := New(expression.DefaultFormat())
	body := root.BeginRule()
	body.WriteProperty("content", `"ok"`)
	root.EndRule(".a", body)
	root.WriteCharsetIfNeeded()
	require.NotContains(t, root.String(), "@charset")

	root2 := New(expression.DefaultFormat())
	body2 := root2.BeginRule()
	body2.WriteProperty("content", `"café"`)
	root2.EndRule(".b", body2)
	root2.WriteCharsetIfNeeded()
	require.Contains(t, root2.String(), `@charset "UTF-8";`)
}

func TestDoSeparateInsertsBlankLineBetweenTopLevelRulesExpanded(t *testing.T) {
	root := New(expression.DefaultFormat())

	body1 := root.BeginRule()
	body1.WriteProperty("color", "red")
	root.EndRule(".a", body1)

	root.DoSeparate()

	body2 := root.BeginRule()
	body2.WriteProperty("color", "blue")
	root.EndRule(".b", body2)

	require.Equal(t, ".a {\n  color: red;\n}\n\n.b {\n  color: blue;\n}\n", root.String())
}

func TestWriteModuleBlockAppendsToHead(t *testing.T) {
	root := New(expression.DefaultFormat())
	root.WriteModuleBlock(".mod { color: green; }\n")
	body := root.BeginRule()
	body.WriteProperty("color", "red")
	root.EndRule(".a", body)

	out := root.String()
	require.Contains(t, out, ".mod { color: green; }")
	require.Contains(t, out, ".a {")
}
