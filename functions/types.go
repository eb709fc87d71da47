package functions

import (
	"github.com/sssc-dev/sssc/expression"
)

// registerMeta's type-predicate half: grounded on the teacher's
// IsNumber/IsString/IsColor/... family (types.go), collapsed from
// string-sniffing into expression.Value type switches since every
// value is now its own typed variant rather than unparsed text.
func (r *Registry) registerTypeChecks() {
	r.addFn("meta", "type-of", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "value")
		if !ok {
			return quotedStr("null"), nil
		}
		return quotedStr(expression.TypeNameOf(v)), nil
	})

	r.addFn("meta", "inspect", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "value")
		if !ok {
			return str("null"), nil
		}
		return str(v.Format(expression.DefaultFormat())), nil
	})
}
