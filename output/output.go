// Package output implements the head/body buffer described in §4.7:
// indent-aware CSS assembly, a "needs separator" bit that keeps
// Expanded output's blank lines between top-level rules, empty-rule
// suppression, and the compressed-mode trailing-`;` elision. Grounded
// on the teacher's renderer.Renderer's string-builder usage
// (renderer/renderer.go), replacing its ad-hoc strings.Builder fields
// with a buffer type the evaluator can nest per selector depth.
package output

import (
	"strings"
	"unicode/utf8"

	"github.com/sssc-dev/sssc/expression"
)

// Buffer accumulates CSS text at a given indent depth. A Buffer has
// two regions: Head (charset/import/module-owned blocks) and Body
// (rules), matching §4.7's "two buffers per scope level".
type Buffer struct {
	format expression.Format

	head strings.Builder
	body strings.Builder

	depth         int
	needSeparator bool
	sawNonASCII   bool
}

// New creates an empty Buffer at depth 0.
func New(format expression.Format) *Buffer {
	return &Buffer{format: format}
}

// Format returns the buffer's output format.
func (b *Buffer) Format() expression.Format { return b.format }

func (b *Buffer) indent() string {
	if b.format.Style == expression.Compressed {
		return ""
	}
	return strings.Repeat("  ", b.depth)
}

func (b *Buffer) newline() string {
	if b.format.Style == expression.Compressed {
		return ""
	}
	return "\n"
}

// DoSeparate inserts a blank line before the next top-level write in
// Expanded mode, if one was requested by a prior WriteRule/WriteAtRule.
func (b *Buffer) DoSeparate() {
	if b.needSeparator && b.format.Style != expression.Compressed && b.depth == 0 {
		b.body.WriteString("\n")
	}
	b.needSeparator = false
}

// markSeparator raises the "needs separator" bit, set after each
// top-level item in Expanded mode (§4.7).
func (b *Buffer) markSeparator() {
	if b.depth == 0 {
		b.needSeparator = true
	}
}

// WriteImport appends a physical `@import` to the head region.
func (b *Buffer) WriteImport(spec string) {
	b.head.WriteString("@import " + spec + ";" + b.newline())
}

// WriteCharsetIfNeeded prepends `@charset "UTF-8";` to the head when
// the accumulated body contains non-ASCII bytes (§4.7's "UTF-8
// cleanliness" rule).
func (b *Buffer) WriteCharsetIfNeeded() {
	if !b.sawNonASCII {
		return
	}
	existing := b.head.String()
	b.head.Reset()
	b.head.WriteString(`@charset "UTF-8";` + b.newline())
	b.head.WriteString(existing)
}

// WriteModuleBlock appends a module's once-emitted CSS to the head
// region, per §4.6: @use/@forward bodies are emitted once per process
// into the head's module-owned slot rather than inlined at every use.
func (b *Buffer) WriteModuleBlock(css string) {
	if css == "" {
		return
	}
	b.head.WriteString(css)
}

// BeginRule opens a nested rule buffer at depth+1; the caller recurses
// into it and then calls EndRule with the accumulated body text.
func (b *Buffer) BeginRule() *Buffer {
	return &Buffer{format: b.format, depth: b.depth + 1}
}

// EndRule writes `selector { body }` to b, suppressing the whole rule
// if body is empty (§4.7).
func (b *Buffer) EndRule(selector string, body *Buffer) {
	bodyText := body.body.String()
	if strings.TrimSpace(bodyText) == "" && body.head.String() == "" {
		return
	}
	b.DoSeparate()
	b.body.WriteString(body.head.String())
	if strings.TrimSpace(bodyText) == "" {
		b.markSeparator()
		return
	}

	if b.format.Style == expression.Compressed {
		b.body.WriteString(b.indent() + selector + "{" + strings.TrimSuffix(bodyText, ";") + "}")
	} else {
		b.body.WriteString(b.indent() + selector + " {\n" + bodyText + b.indent() + "}\n")
	}
	b.markSeparator()
	b.noteNonASCII(selector)
	b.noteNonASCII(bodyText)
}

// WriteAtRuleInline writes `@name args { ...inline body... }` where
// body has no selectors of its own (§4.5's AtRule with a bodiless
// nested block, e.g. `@font-face { ... }`).
func (b *Buffer) WriteAtRuleInline(name, args string, body *Buffer) {
	b.DoSeparate()
	header := "@" + name
	if args != "" {
		header += " " + args
	}
	bodyText := body.body.String()
	if b.format.Style == expression.Compressed {
		b.body.WriteString(b.indent() + header + "{" + strings.TrimSuffix(bodyText, ";") + "}")
	} else {
		b.body.WriteString(b.indent() + header + " {\n" + bodyText + b.indent() + "}\n")
	}
	b.markSeparator()
}

// WriteAtRuleBare writes a bodiless at-rule statement, e.g.
// `@namespace svg url(...)`.
func (b *Buffer) WriteAtRuleBare(name, args string) {
	b.DoSeparate()
	header := "@" + name
	if args != "" {
		header += " " + args
	}
	b.body.WriteString(b.indent() + header + ";" + b.newline())
	b.markSeparator()
}

// WriteProperty writes `name: value;` (or without the trailing `;` in
// Compressed mode when it is the buffer's last declaration — the
// elision itself is applied by EndRule via TrimSuffix).
func (b *Buffer) WriteProperty(name, value string) {
	sep := ": "
	if b.format.Style == expression.Compressed {
		sep = ":"
	}
	b.body.WriteString(b.indent() + name + sep + value + ";" + b.newline())
	b.noteNonASCII(name)
	b.noteNonASCII(value)
}

// WriteComment appends a comment to the body; dropped entirely in
// Compressed mode (§4.5).
func (b *Buffer) WriteComment(text string) {
	if b.format.Style == expression.Compressed {
		return
	}
	b.body.WriteString(b.indent() + text + "\n")
}

func (b *Buffer) noteNonASCII(s string) {
	if !b.sawNonASCII && !isASCII(s) {
		b.sawNonASCII = true
	}
}

func isASCII(s string) bool {
	for _, r := range s {
		if r >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// String concatenates head then body, the final output bytes.
func (b *Buffer) String() string {
	return b.head.String() + b.body.String()
}

// BodyString returns only the accumulated body text (used when a
// parent buffer pulls in a child rule's raw content, e.g. @at-root).
func (b *Buffer) BodyString() string {
	return b.body.String()
}
