// Package module implements the @use/@forward/@import loader described
// in §4.6: canonical-path resolution, a locked-path set for cycle
// detection, and a load-once cache keyed by canonical path. Grounded
// on the teacher's importer.Importer (importer/importer.go), which
// resolved @import against an fs.FS and recursively parsed imported
// files; generalized here from its single-pipeline ast.Stylesheet
// merge into a scope-returning loader over the dst/evaluator pipeline,
// since a used module contributes bindings rather than inlined rules.
package module

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/sssc-dev/sssc/dst"
	"github.com/sssc-dev/sssc/evaluator"
	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/scope"
)

// Loader resolves @use/@forward/@import paths against a filesystem,
// caching each module's evaluated scope by canonical path and
// rejecting load cycles (§4.6's "locked" path set).
type Loader struct {
	fsys     fs.FS
	format   expression.Format
	builtins evaluator.Builtins

	cache  map[string]*scope.Scope
	locked map[string]bool
	// moduleCSS accumulates each module's own top-level CSS output so
	// the root compile can splice it into the head once per module
	// (§4.6: a module's plain rules are emitted the first time it is
	// loaded, not once per importer).
	moduleCSS map[string]string
	order     []string

	// lastCSS holds the most recent fresh (non-cached) load's own CSS,
	// consumed once by the evaluator's @use/@forward handling via
	// TakeLastCSS so a module's body is spliced into the head exactly
	// once, at its first load (§4.6).
	lastCSS string
}

// New creates a Loader rooted at fsys, sharing format and builtins
// with the compile that owns it so a loaded module's evaluator behaves
// identically to the root.
func New(fsys fs.FS, format expression.Format, builtins evaluator.Builtins) *Loader {
	return &Loader{
		fsys:      fsys,
		format:    format,
		builtins:  builtins,
		cache:     map[string]*scope.Scope{},
		locked:    map[string]bool{},
		moduleCSS: map[string]string{},
	}
}

// Load implements evaluator.Loader. path is the raw text between the
// quotes in `@use "path"`; it resolves built-in sass: modules, cached
// user modules, and fresh filesystem loads, rejecting cycles.
func (l *Loader) Load(requested string) (*scope.Scope, error) {
	if strings.HasPrefix(requested, "sass:") {
		return l.loadBuiltinNamespace(requested)
	}

	canonical, err := l.resolve(requested)
	if err != nil {
		return nil, err
	}

	if mod, ok := l.cache[canonical]; ok {
		return mod, nil
	}
	if l.locked[canonical] {
		return nil, fmt.Errorf("module loop: %q is already being loaded", canonical)
	}
	l.locked[canonical] = true
	defer delete(l.locked, canonical)

	mod, css, err := l.loadFile(canonical)
	if err != nil {
		return nil, err
	}
	l.cache[canonical] = mod
	l.moduleCSS[canonical] = css
	l.order = append(l.order, canonical)
	l.lastCSS = css
	return mod, nil
}

// TakeLastCSS returns and clears the CSS produced by the most recent
// fresh load (empty if that load came from cache or loaded a sass:*
// built-in namespace). Implements the evaluator's cssSource interface.
func (l *Loader) TakeLastCSS() string {
	css := l.lastCSS
	l.lastCSS = ""
	return css
}

// resolve finds the canonical file path for a @use/@forward/@import
// specifier, trying dart-sass's partial-file convention (`_name.sss`)
// alongside the bare name, the way the teacher's extractImportPath +
// fs.ReadFile pairing resolved a LESS @import path.
func (l *Loader) resolve(requested string) (string, error) {
	clean := strings.TrimSuffix(requested, ".sss")
	candidates := []string{
		clean + ".sss",
		path.Join(path.Dir(clean), "_"+path.Base(clean)+".sss"),
		path.Join(clean, "_index.sss"),
	}
	for _, c := range candidates {
		if _, err := fs.Stat(l.fsys, c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("module not found: %q", requested)
}

func (l *Loader) loadFile(canonical string) (*scope.Scope, string, error) {
	content, err := fs.ReadFile(l.fsys, canonical)
	if err != nil {
		return nil, "", fmt.Errorf("reading module %q: %w", canonical, err)
	}

	p := dst.NewParserWithFS(strings.NewReader(string(content)), l.fsys)
	file, err := p.Parse()
	if err != nil {
		return nil, "", fmt.Errorf("parsing module %q: %w", canonical, err)
	}
	items, err := evaluator.Translate(file)
	if err != nil {
		return nil, "", fmt.Errorf("translating module %q: %w", canonical, err)
	}

	modScope := scope.New(l.format)
	sub := New(l.fsys, l.format, l.builtins)
	sub.cache = l.cache
	sub.locked = l.locked
	sub.moduleCSS = l.moduleCSS
	ev := evaluator.New(l.format, l.builtins, sub)
	if err := ev.Run(modScope, items); err != nil {
		return nil, "", fmt.Errorf("evaluating module %q: %w", canonical, err)
	}
	// The module's public scope is modScope as evaluated. Members that
	// its own @forward installs go into a separate forward scope and
	// are not copied into modScope, so they are not visible through it.
	return modScope, ev.Out.String(), nil
}

// loadBuiltinNamespace wraps a sass:* name as an empty module scope so
// that @use "sass:math" makes the namespace alias resolvable.
// KindMixinCall/ExprCall consult the namespaced module scope's
// GetFunction/GetMixin first; on this empty scope those always miss,
// and the call falls through to Evaluator.Builtins.
func (l *Loader) loadBuiltinNamespace(name string) (*scope.Scope, error) {
	return scope.New(l.format), nil
}

// CSS returns the accumulated head-region CSS every loaded module
// contributed, in first-load order, for the root compiler to splice
// into its own output once per process (§4.6).
func (l *Loader) CSS() string {
	var b strings.Builder
	for _, canonical := range l.order {
		b.WriteString(l.moduleCSS[canonical])
	}
	return b.String()
}
