package evaluator

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/sssc-dev/sssc/expression"
)

// DumpDebug formats a @debug payload with go-spew's structured dumper,
// the way the teacher's preprocessExpression used spew.Dump for ad-hoc
// tracing. Here it backs the real `@debug` item: SSS authors can debug
// a map or list and see its full nested shape, not just its CSS text.
func DumpDebug(label string, v expression.Value) string {
	return fmt.Sprintf("%s: %s", label, spew.Sdump(v))
}
