// Package scope implements the lexical environment tree described in
// §4.4: nested variable/function/mixin bindings, the active selector
// stack, module namespaces, and the forwarding sibling a `@forward`
// item installs into. It is grounded on the teacher's renderer.Stack
// (renderer/stack.go), generalized from a flat slice of string maps to
// a parent-linked tree of expression.Value maps, since SSS scopes
// nest per rule/mixin/function/control body rather than per call frame.
package scope

import (
	"fmt"

	"github.com/sssc-dev/sssc/compileerr"
	"github.com/sssc-dev/sssc/expression"
)

// Mixin is a declared mixin: a snapshot of its declaration scope (for
// closure semantics), its formal argument spec, and its item body.
// Body is `interface{}` because the evaluator package owns the
// concrete Item type; scope only needs to carry it opaquely (§3). Guard
// is likewise opaque: a mixin declared with a `when (...)` condition
// carries its parsed condition here, nil when unguarded.
type Mixin struct {
	Decl   *Scope
	Args   expression.FormalArgs
	Body   interface{}
	Guard  interface{}
	Pos    compileerr.Pos
}

// Function has the same shape as Mixin but returns a Value via an
// explicit `@return` rather than emitting CSS.
type Function struct {
	Decl *Scope
	Args expression.FormalArgs
	Body interface{}
	Pos  compileerr.Pos
}

// Selector is one compound selector string in the active stack (e.g.
// "a:hover"); the evaluator's selector resolver owns cross-product
// expansion of `&`.
type Selector = string

// Content is the closure captured by `@content` inside a mixin call:
// the caller's body items plus the scope they close over.
type Content struct {
	Scope *Scope
	Body  interface{}
}

// Scope is one node in the lexical environment tree (§3, §4.4).
type Scope struct {
	parent *Scope

	vars      map[string]expression.Value
	funcs     map[string]*Function
	mixins    map[string]*Mixin
	content   *Content
	selectors []Selector
	modules   map[string]*Scope
	forward   *Scope

	global bool
	format expression.Format
}

// New creates a root scope (global=true) with the given output format.
func New(format expression.Format) *Scope {
	return &Scope{
		vars:   map[string]expression.Value{},
		funcs:  map[string]*Function{},
		mixins: map[string]*Mixin{},
		global: true,
		format: format,
	}
}

// Child creates a nested scope inheriting parent's format and module
// namespace visibility but starting with empty bindings of its own.
func (s *Scope) Child() *Scope {
	return &Scope{
		parent: s,
		vars:   map[string]expression.Value{},
		funcs:  map[string]*Function{},
		mixins: map[string]*Mixin{},
		format: s.format,
	}
}

// Format returns the scope's output format.
func (s *Scope) Format() expression.Format { return s.format }

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// IsGlobal reports whether s is a module/file-root scope.
func (s *Scope) IsGlobal() bool { return s.global }

// MarkGlobal flags s as a module root, used for the nearest-enclosing
// global lookup that `!global` assignment requires.
func (s *Scope) MarkGlobal() { s.global = true }

// Define binds name unconditionally in this scope, shadowing any
// parent binding.
func (s *Scope) Define(name string, v expression.Value) {
	s.vars[name] = v
}

// Set implements §4.4's set(name, value, default, global):
//   - default: only writes if name is unbound, or bound to Null, in
//     the innermost scope that would resolve a plain get(name);
//     a no-op write still counts as satisfying the declaration.
//   - global: writes to the nearest enclosing global scope; errors
//     if that scope has no such variable already bound.
func (s *Scope) Set(name string, v expression.Value, isDefault, isGlobal bool) error {
	if isGlobal {
		g := s.nearestGlobal()
		if g == nil {
			return fmt.Errorf("no global scope to set $%s", name)
		}
		if _, ok := g.vars[name]; !ok {
			return fmt.Errorf("undefined variable $%s used with !global", name)
		}
		if isDefault {
			if cur, ok := g.vars[name]; ok && !expression.IsNull(cur) {
				return nil
			}
		}
		g.vars[name] = v
		return nil
	}

	if isDefault {
		if cur, found := s.lookupVar(name); found && !expression.IsNull(cur) {
			return nil
		}
	}
	s.vars[name] = v
	return nil
}

func (s *Scope) nearestGlobal() *Scope {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.global {
			return cur
		}
	}
	return nil
}

// Get walks parents until name is found, returning Null (not an error)
// if absent (§4.4).
func (s *Scope) Get(name string) expression.Value {
	if v, ok := s.lookupVar(name); ok {
		return v
	}
	return expression.Null
}

func (s *Scope) lookupVar(name string) (expression.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// DefineFunction registers fn under name in this scope.
func (s *Scope) DefineFunction(name string, fn *Function) {
	s.funcs[name] = fn
}

// GetFunction walks parents for a function binding.
func (s *Scope) GetFunction(name string) (*Function, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if fn, ok := cur.funcs[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// DefineMixin registers m under name in this scope.
func (s *Scope) DefineMixin(name string, m *Mixin) {
	s.mixins[name] = m
}

// GetMixin walks parents for a mixin binding.
func (s *Scope) GetMixin(name string) (*Mixin, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if m, ok := cur.mixins[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// DefineContent attaches the @content closure for the mixin body
// currently being interpreted.
func (s *Scope) DefineContent(c *Content) { s.content = c }

// GetContent returns the nearest enclosing @content closure, if any.
func (s *Scope) GetContent() (*Content, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.content != nil {
			return cur.content, true
		}
		// @content does not see through an intervening mixin's own
		// scope boundary beyond its declaration site; a fresh mixin
		// call's scope always sets its own content (possibly nil),
		// so the search naturally terminates at that node in practice.
	}
	return nil, false
}

// PushSelectors returns a child-like scope with sels replacing the
// current selector stack view (the evaluator calls this per nested
// Rule item and discards the returned scope on exit, restoring the
// parent's view — "push on entry, drop on exit").
func (s *Scope) PushSelectors(sels []Selector) *Scope {
	child := s.Child()
	child.selectors = sels
	return child
}

// Selectors returns the active selector stack, nearest enclosing rule
// first, walking parents if this scope itself carries none.
func (s *Scope) Selectors() []Selector {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.selectors != nil {
			return cur.selectors
		}
	}
	return nil
}

// DefineModule installs a loaded module's scope under name (used by
// do_use/do_forward after visibility filtering has already been
// applied by the caller).
func (s *Scope) DefineModule(name string, mod *Scope) {
	if s.modules == nil {
		s.modules = map[string]*Scope{}
	}
	s.modules[name] = mod
}

// GetModule looks up a namespaced module by its `as` name.
func (s *Scope) GetModule(name string) (*Scope, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.modules != nil {
			if m, ok := cur.modules[name]; ok {
				return m, true
			}
		}
	}
	return nil, false
}

// Forward returns the sibling scope that receives forwarded members,
// creating it on first use (§4.4's forward()).
func (s *Scope) Forward() *Scope {
	if s.forward == nil {
		s.forward = s.Child()
	}
	return s.forward
}
