package functions

import (
	"fmt"

	"github.com/sssc-dev/sssc/expression"
)

// registerMap wires sass:map. The teacher has no map builtins (LESS
// has no native map type); grounded instead on expression.Map's own
// Get/Set/Keys/Values (expression/value.go) and the dart-sass map
// module's usual signature shapes.
func (r *Registry) registerMap() {
	requireMap := func(args *expression.ArgList, idx int, name string) (*expression.Map, error) {
		v, ok := arg(args, idx, name)
		if !ok {
			return nil, fmt.Errorf("missing argument $%s", name)
		}
		m, ok := v.(*expression.Map)
		if !ok {
			return nil, fmt.Errorf("$%s: %s is not a map", name, v.Format(expression.DefaultFormat()))
		}
		return m, nil
	}

	r.addFn("map", "get", func(args *expression.ArgList) (expression.Value, error) {
		m, err := requireMap(args, 0, "map")
		if err != nil {
			return nil, err
		}
		key, ok := arg(args, 1, "key")
		if !ok {
			return nil, fmt.Errorf("missing argument $key")
		}
		if v, ok := m.Get(key); ok {
			return v, nil
		}
		return expression.Null, nil
	})

	r.addFn("map", "has-key", func(args *expression.ArgList) (expression.Value, error) {
		m, err := requireMap(args, 0, "map")
		if err != nil {
			return nil, err
		}
		key, ok := arg(args, 1, "key")
		if !ok {
			return nil, fmt.Errorf("missing argument $key")
		}
		_, found := m.Get(key)
		return expression.NewBool(found), nil
	})

	r.addFn("map", "keys", func(args *expression.ArgList) (expression.Value, error) {
		m, err := requireMap(args, 0, "map")
		if err != nil {
			return nil, err
		}
		return expression.NewListValue(m.Keys(), expression.CommaSeparator, false), nil
	})

	r.addFn("map", "values", func(args *expression.ArgList) (expression.Value, error) {
		m, err := requireMap(args, 0, "map")
		if err != nil {
			return nil, err
		}
		return expression.NewListValue(m.Values(), expression.CommaSeparator, false), nil
	})

	r.addFn("map", "set", func(args *expression.ArgList) (expression.Value, error) {
		m, err := requireMap(args, 0, "map")
		if err != nil {
			return nil, err
		}
		key, ok := arg(args, 1, "key")
		if !ok {
			return nil, fmt.Errorf("missing argument $key")
		}
		val, ok := arg(args, 2, "value")
		if !ok {
			return nil, fmt.Errorf("missing argument $value")
		}
		out := expression.NewMap()
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			out.Set(k, v)
		}
		out.Set(key, val)
		return out, nil
	})

	r.addFn("map", "merge", func(args *expression.ArgList) (expression.Value, error) {
		m1, err := requireMap(args, 0, "map1")
		if err != nil {
			return nil, err
		}
		m2, err := requireMap(args, 1, "map2")
		if err != nil {
			return nil, err
		}
		out := expression.NewMap()
		for _, k := range m1.Keys() {
			v, _ := m1.Get(k)
			out.Set(k, v)
		}
		for _, k := range m2.Keys() {
			v, _ := m2.Get(k)
			out.Set(k, v)
		}
		return out, nil
	})

	r.addFn("map", "remove", func(args *expression.ArgList) (expression.Value, error) {
		m, err := requireMap(args, 0, "map")
		if err != nil {
			return nil, err
		}
		drop := map[int]bool{}
		keys := m.Keys()
		for i, k := range keys {
			for _, v := range args.Positional[1:] {
				if expression.ValuesEqual(k, v) {
					drop[i] = true
				}
			}
		}
		out := expression.NewMap()
		for i, k := range keys {
			if drop[i] {
				continue
			}
			v, _ := m.Get(k)
			out.Set(k, v)
		}
		return out, nil
	})
}
