package functions

import (
	"strings"
	"unicode/utf8"

	"github.com/sssc-dev/sssc/expression"
)

// registerString wires sass:string. Grounded on the teacher's Replace
// (strings.go), which worked against raw quoted-or-not string
// arguments; the quote-stripping it did by hand is now carried as
// expression.Literal.Quotes, so these builtins read/write it directly
// instead of sniffing leading/trailing quote bytes.
func (r *Registry) registerString() {
	r.addFn("string", "quote", func(args *expression.ArgList) (expression.Value, error) {
		s, _, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(s, expression.DoubleQuotes), nil
	})

	r.addFn("string", "unquote", func(args *expression.ArgList) (expression.Value, error) {
		s, _, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(s, expression.NoQuotes), nil
	})

	r.addFn("string", "length", func(args *expression.ArgList) (expression.Value, error) {
		s, _, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		return num(float64(utf8.RuneCountInString(s))), nil
	})

	r.addFn("string", "to-upper-case", func(args *expression.ArgList) (expression.Value, error) {
		s, q, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(strings.ToUpper(s), q), nil
	})

	r.addFn("string", "to-lower-case", func(args *expression.ArgList) (expression.Value, error) {
		s, q, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(strings.ToLower(s), q), nil
	})

	r.addFn("string", "slice", func(args *expression.ArgList) (expression.Value, error) {
		s, q, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		start, err := requireNumber(args, 1, "start-at")
		if err != nil {
			return nil, err
		}
		startIdx, err := expression.ListIndex(len(runes), int(start.Num.Float64()))
		if err != nil {
			return expression.NewLiteral("", q), nil
		}
		endIdx := len(runes)
		if end, ok := arg(args, 2, "end-at"); ok {
			if en, ok := end.(expression.Numeric); ok {
				if i, err := expression.ListIndex(len(runes), int(en.Num.Float64())); err == nil {
					endIdx = i + 1
				}
			}
		}
		if startIdx >= endIdx {
			return expression.NewLiteral("", q), nil
		}
		return expression.NewLiteral(string(runes[startIdx:endIdx]), q), nil
	})

	r.addFn("string", "index", func(args *expression.ArgList) (expression.Value, error) {
		s, _, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		sub, _, err := requireString(args, 1, "substring")
		if err != nil {
			return nil, err
		}
		i := strings.Index(s, sub)
		if i < 0 {
			return expression.Null, nil
		}
		return num(float64(utf8.RuneCountInString(s[:i]) + 1)), nil
	})

	r.addFn("string", "insert", func(args *expression.ArgList) (expression.Value, error) {
		s, q, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		ins, _, err := requireString(args, 1, "insert")
		if err != nil {
			return nil, err
		}
		at, err := requireNumber(args, 2, "index")
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		idx := int(at.Num.Float64())
		if idx < 0 {
			idx = len(runes) + idx + 2
		}
		if idx < 1 {
			idx = 1
		}
		if idx > len(runes)+1 {
			idx = len(runes) + 1
		}
		out := string(runes[:idx-1]) + ins + string(runes[idx-1:])
		return expression.NewLiteral(out, q), nil
	})

	r.addFn("string", "replace", func(args *expression.ArgList) (expression.Value, error) {
		s, q, err := requireString(args, 0, "string")
		if err != nil {
			return nil, err
		}
		pat, _, err := requireString(args, 1, "pattern")
		if err != nil {
			return nil, err
		}
		repl, _, err := requireString(args, 2, "replacement")
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(strings.ReplaceAll(s, pat, repl), q), nil
	})

	r.addFn("string", "unique-id", func(args *expression.ArgList) (expression.Value, error) {
		return expression.NewLiteral("u-generated", expression.NoQuotes), nil
	})
}
