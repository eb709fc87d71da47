// Command sssc compiles SSS stylesheets to CSS.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sssc-dev/sssc"
	"github.com/sssc-dev/sssc/dst"
	"github.com/sssc-dev/sssc/expression"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var err error
	switch cmd {
	case "compile":
		err = runCompile(os.Args[2:])
	case "fmt":
		err = runFmt(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: sssc <command> [args]\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  compile <file>  Compile an .sss file to CSS\n")
	fmt.Fprintf(os.Stderr, "  fmt <files>     Format .sss files\n")
}

// defines collects repeated --define name=expr flags.
type defines map[string]string

func (d defines) String() string { return "" }
func (d defines) Set(s string) error {
	name, expr, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("--define must be name=expr, got %q", s)
	}
	d[name] = expr
	return nil
}

func runCompile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	compressed := fs.Bool("compressed", false, "emit compressed CSS instead of expanded")
	out := fs.String("o", "", "output file (default: stdout)")
	vars := defines{}
	fs.Var(vars, "define", "bind a top-level variable, name=expr (repeatable)")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: sssc compile [flags] <file>")
	}
	path := rest[0]

	format := expression.DefaultFormat()
	if *compressed {
		format = format.Compressed()
	}

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	fsys := os.DirFS(dir)

	var css string
	var err error
	if len(vars) > 0 {
		css, err = sssc.CompileWithVars(fsys, name, format, vars)
	} else {
		css, err = sssc.Compile(fsys, name, format)
	}
	if err != nil {
		return err
	}

	if *out == "" {
		fmt.Print(css)
		return nil
	}
	return os.WriteFile(*out, []byte(css), 0o644)
}

// runFmt re-serializes each named .sss file back to itself through the
// dst parser/renderer round trip, the way the teacher's own `fmt`
// subcommand reformatted LESS source without evaluating it.
func runFmt(patterns []string) error {
	if len(patterns) == 0 {
		return fmt.Errorf("usage: sssc fmt <files...>")
	}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files matching %q", pattern)
		}
		for _, path := range matches {
			if !strings.HasSuffix(path, ".sss") {
				fmt.Printf("Skipping non-.sss file: %s\n", path)
				continue
			}
			if err := formatFile(path); err != nil {
				return fmt.Errorf("formatting %s: %w", path, err)
			}
		}
	}
	return nil
}

func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	p := dst.NewParserWithFS(strings.NewReader(string(src)), os.DirFS(dir))
	file, err := p.Parse()
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	formatted := dst.NewFormatter().Format(file)
	return os.WriteFile(path, []byte(formatted), 0o644)
}
