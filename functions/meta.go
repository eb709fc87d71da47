package functions

import (
	"github.com/sssc-dev/sssc/evaluator"
	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/scope"
)

// registerMeta wires sass:meta. Only load-css is special-cased per
// §4.8 ("only two built-in mixins are special-cased"); the other half
// of sass:meta (variable-exists, function-exists, mixin-exists) needs
// the calling scope, which evaluator.Builtins.CallFunction does not
// currently receive — those are left unimplemented rather than
// guessed at (see DESIGN.md).
func (r *Registry) registerMeta() {
	r.registerTypeChecks()

	r.addFn("meta", "feature-exists", func(args *expression.ArgList) (expression.Value, error) {
		return expression.NewBool(false), nil
	})

	r.addFn("meta", "get-function", func(args *expression.ArgList) (expression.Value, error) {
		name, _, err := requireString(args, 0, "name")
		if err != nil {
			return nil, err
		}
		return expression.FunctionValue{Name: name}, nil
	})

	r.addMixin("meta", "load-css", func(e *evaluator.Evaluator, sc *scope.Scope, args *expression.ArgList, content *scope.Content) error {
		path, _, err := requireString(args, 0, "module")
		if err != nil {
			return err
		}
		_, err = e.Loader.Load(path)
		return err
	})
}
