package expression

import "fmt"

// FormalParam is one parameter in a mixin/function declaration's
// signature: `$name`, `$name: default`, or the trailing `$name...`
// rest parameter (§4.5). DefaultRaw holds the default's unparsed
// source text rather than a Value: defaults are evaluated lazily
// against the declaring scope at call time (they may reference
// earlier parameters or outer variables), and this package has no
// dependency on the evaluator that owns expression parsing/scope
// lookup.
type FormalParam struct {
	Name       string
	DefaultRaw string // "" when required; still may legitimately parse to "" text
	HasDefault bool
	Rest       bool
}

// FormalArgs is a mixin or function's full parameter list.
type FormalArgs struct {
	Params []FormalParam
}

// Bind matches actual positional and named arguments against the
// formal parameter list, evaluating default expressions (via evalDefault)
// only for parameters left unfilled, and collects any params beyond the
// declared list into a rest ArgList. Mirrors the BadCall error in §7:
// unknown named argument, too many positional arguments, or a missing
// required argument with no default all fail.
func (f FormalArgs) Bind(positional []Value, named map[string]Value, evalDefault func(string) (Value, error)) (map[string]Value, error) {
	bound := make(map[string]Value, len(f.Params))
	usedNamed := make(map[string]bool, len(named))

	restIdx := -1
	for i, p := range f.Params {
		if p.Rest {
			restIdx = i
			break
		}
	}

	limit := len(f.Params)
	if restIdx >= 0 {
		limit = restIdx
	}

	posIdx := 0
	for i := 0; i < limit; i++ {
		p := f.Params[i]
		if v, ok := named[p.Name]; ok {
			bound[p.Name] = v
			usedNamed[p.Name] = true
			continue
		}
		if posIdx < len(positional) {
			bound[p.Name] = positional[posIdx]
			posIdx++
			continue
		}
		if p.HasDefault {
			v, err := evalDefault(p.DefaultRaw)
			if err != nil {
				return nil, err
			}
			bound[p.Name] = v
			continue
		}
		return nil, fmt.Errorf("missing argument $%s", p.Name)
	}

	if restIdx >= 0 {
		rest := NewArgList()
		for ; posIdx < len(positional); posIdx++ {
			rest.Positional = append(rest.Positional, positional[posIdx])
		}
		for name, v := range named {
			if usedNamed[name] {
				continue
			}
			rest.SetNamed(name, v)
			usedNamed[name] = true
		}
		bound[f.Params[restIdx].Name] = rest
		return bound, nil
	}

	if posIdx < len(positional) {
		return nil, fmt.Errorf("too many positional arguments: expected at most %d, got %d", limit, len(positional))
	}
	for name := range named {
		if !usedNamed[name] {
			return nil, fmt.Errorf("no argument named $%s", name)
		}
	}
	return bound, nil
}
