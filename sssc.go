// Package sssc compiles the SSS stylesheet language to plain CSS. It
// ties together the dst line scanner, the evaluator's tree-walking
// interpreter, the scope/module system, and the built-in function
// registry; grounded on the teacher's handler.go, which wired its own
// dst parser straight into a renderer.Renderer for one-shot HTTP
// compilation.
package sssc

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/sssc-dev/sssc/dst"
	"github.com/sssc-dev/sssc/evaluator"
	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/functions"
	"github.com/sssc-dev/sssc/module"
	"github.com/sssc-dev/sssc/scope"
)

// Compile parses the .sss source at path within fsys and evaluates it
// to CSS text using format. Sibling files reachable via @use/@forward/
// @import are resolved against the root of fsys, not relative to the
// importing file's directory.
func Compile(fsys fs.FS, path string, format expression.Format) (string, error) {
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	return CompileString(fsys, string(src), format)
}

// CompileString evaluates already-read SSS source, resolving any
// @use/@forward/@import against fsys.
func CompileString(fsys fs.FS, src string, format expression.Format) (string, error) {
	return compile(fsys, src, format, nil)
}

// CompileWithVars is CompileString, additionally pre-binding each
// name/expression pair in vars as a global variable in the root scope
// before evaluation — the mechanism behind the CLI's `--define
// name=expr` flag, letting a caller override a stylesheet's top-level
// `$name: value !default` without editing the source. A declaration
// without !default still overwrites the pre-bound value.
func CompileWithVars(fsys fs.FS, path string, format expression.Format, vars map[string]string) (string, error) {
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	return compile(fsys, string(src), format, vars)
}

func compile(fsys fs.FS, src string, format expression.Format, vars map[string]string) (string, error) {
	file, err := parseSource(fsys, src)
	if err != nil {
		return "", err
	}
	items, err := evaluator.Translate(file)
	if err != nil {
		return "", fmt.Errorf("translating: %w", err)
	}

	builtins := functions.New()
	loader := module.New(fsys, format, builtins)
	ev := evaluator.New(format, builtins, loader)

	root := scope.New(format)
	for name, raw := range vars {
		expr, err := evaluator.ParseExpr(raw)
		if err != nil {
			return "", fmt.Errorf("parsing --define %s=%s: %w", name, raw, err)
		}
		v, err := ev.Eval(root, expr)
		if err != nil {
			return "", fmt.Errorf("evaluating --define %s=%s: %w", name, raw, err)
		}
		root.Define(name, v)
	}

	if err := ev.Run(root, items); err != nil {
		return "", fmt.Errorf("evaluating: %w", err)
	}

	ev.Out.WriteCharsetIfNeeded()
	return ev.Out.String(), nil
}

func parseSource(fsys fs.FS, src string) (*dst.File, error) {
	var p interface{ Parse() (*dst.File, error) }
	if dst.DefaultParserConfig.UseNoAlloc {
		p = dst.NewParserNoAllocWithFS(strings.NewReader(src), fsys)
	} else {
		p = dst.NewParserWithFS(strings.NewReader(src), fsys)
	}
	file, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return file, nil
}
