package evaluator

import (
	"strings"

	"github.com/sssc-dev/sssc/compileerr"
	"github.com/sssc-dev/sssc/dst"
	"github.com/sssc-dev/sssc/expression"
)

// Translate converts a parsed dst.File (the line-based parser
// collaborator's output) into the Item tree Eval walks. It is the
// bridge between dst's string-oriented scanning and the scope-aware
// interpreter: every raw value/condition/selector text is parsed once
// here via ParseExpr into an Expr, deferring variable/function
// resolution to evaluation time.
func Translate(file *dst.File) ([]*Item, error) {
	return translateNodes(file.Nodes)
}

func translateNodes(nodes []dst.Node) ([]*Item, error) {
	var items []*Item
	i := 0
	for i < len(nodes) {
		it, consumed, err := translateAt(nodes, i)
		if err != nil {
			return nil, err
		}
		if it != nil {
			items = append(items, it)
		}
		if consumed < 1 {
			consumed = 1
		}
		i += consumed
	}
	return items, nil
}

// translateAt translates the node at index i, returning how many
// sibling nodes it consumed (more than one only for an @if/@else
// chain, whose arms arrive as independent sibling Blocks).
func translateAt(nodes []dst.Node, i int) (*Item, int, error) {
	switch n := nodes[i].(type) {
	case *dst.Comment:
		return &Item{Kind: KindComment, Raw: n.Text}, 1, nil
	case *dst.Import:
		return &Item{Kind: KindImport, Raw: n.Path}, 1, nil
	case *dst.Decl:
		return translateDecl(n), 1, nil
	case *dst.MixinCall:
		return translateMixinCall(n), 1, nil
	case *dst.BlockVariable:
		return translateBlockVariable(n), 1, nil
	case *dst.Each:
		it, err := translateEachNode(n)
		return it, 1, err
	case *dst.AtStatement:
		it, err := translateAtStatement(n)
		return it, 1, err
	case *dst.Block:
		return translateBlock(nodes, i)
	}
	return nil, 1, nil
}

func selText(b *dst.Block) string {
	if len(b.SelNames) == 0 {
		return ""
	}
	return strings.TrimSpace(b.SelNames[0])
}

func hasKeyword(sel, kw string) bool {
	return sel == kw || strings.HasPrefix(sel, kw+" ") || strings.HasPrefix(sel, kw+"(")
}

func translateBlock(nodes []dst.Node, i int) (*Item, int, error) {
	b := nodes[i].(*dst.Block)
	sel := selText(b)

	switch {
	case hasKeyword(sel, "@mixin"):
		return translateMixinDecl(b)
	case hasKeyword(sel, "@function"):
		return translateFunctionDecl(b)
	case hasKeyword(sel, "@if"):
		return translateIfChain(nodes, i)
	case hasKeyword(sel, "@each"):
		return translateEachBlock(b)
	case hasKeyword(sel, "@for"):
		return translateForBlock(b)
	case hasKeyword(sel, "@while"):
		return translateWhileBlock(b)
	case hasKeyword(sel, "@at-root"):
		body, err := translateNodes(b.Children)
		if err != nil {
			return nil, 1, err
		}
		return &Item{Kind: KindAtRoot, AtRuleArgs: strings.TrimSpace(strings.TrimPrefix(sel, "@at-root")), Body: body}, 1, nil
	case hasKeyword(sel, "@include"):
		// `@include name { @content }` form: a block carrying content.
		name, argsRaw := splitNameArgs(strings.TrimSpace(strings.TrimPrefix(sel, "@include")))
		body, err := translateNodes(b.Children)
		if err != nil {
			return nil, 1, err
		}
		item := &Item{Kind: KindMixinCall, Name: strings.TrimSpace(name), Args: parseCallArgs(argsRaw), Body: body}
		return item, 1, nil
	case len(b.SelNames) == 1 && strings.HasSuffix(sel, ":") && !strings.ContainsAny(sel, "&."):
		// `font: { family: Arial; size: 14px; }` — a namespaced property
		// group (§4.5's KindNamespaceRule), flattened to `font-family`/
		// `font-size` rather than nested as a selector rule.
		propName := strings.TrimSpace(strings.TrimSuffix(sel, ":"))
		body, err := translateNodes(b.Children)
		if err != nil {
			return nil, 1, err
		}
		if err := CheckBody(ContextNamespacedRule, body); err != nil {
			return nil, 1, err
		}
		return &Item{Kind: KindNamespaceRule, PropName: propName, Body: body}, 1, nil
	case strings.HasPrefix(sel, "@"):
		name, args := splitNameArgs(sel)
		name = strings.TrimPrefix(name, "@")
		body, err := translateNodes(b.Children)
		if err != nil {
			return nil, 1, err
		}
		return &Item{Kind: KindAtRule, AtRuleName: strings.ToLower(strings.TrimSpace(name)), AtRuleArgs: strings.TrimSpace(args), Body: body}, 1, nil
	default:
		body, err := translateNodes(b.Children)
		if err != nil {
			return nil, 1, err
		}
		return &Item{
			Kind:      KindRule,
			Selectors: append([]string(nil), b.SelNames...),
			Guard:     guardExpr(b),
			Body:      body,
		}, 1, nil
	}
}

func guardExpr(b *dst.Block) Expr {
	if !b.Guard.Valid() {
		return nil
	}
	e, _ := ParseExpr(b.Guard.Condition)
	return e
}

func translateMixinDecl(b *dst.Block) (*Item, int, error) {
	sel := selText(b)
	rest := strings.TrimSpace(strings.TrimPrefix(sel, "@mixin"))
	name, argsRaw := splitNameArgs(rest)
	body, err := translateNodes(b.Children)
	if err != nil {
		return nil, 1, err
	}
	if err := CheckBody(ContextMixin, body); err != nil {
		return nil, 1, err
	}
	return &Item{
		Kind:   KindMixinDecl,
		Name:   strings.TrimSpace(name),
		Params: parseFormalArgs(argsRaw),
		Guard:  guardExpr(b),
		Body:   body,
	}, 1, nil
}

func translateFunctionDecl(b *dst.Block) (*Item, int, error) {
	sel := selText(b)
	rest := strings.TrimSpace(strings.TrimPrefix(sel, "@function"))
	name, argsRaw := splitNameArgs(rest)
	name = strings.TrimSpace(name)
	body, err := translateNodes(b.Children)
	if err != nil {
		return nil, 1, err
	}
	if ReservedFunctionNames[strings.ToLower(name)] {
		return nil, 1, compileerr.NewInvalid(compileerr.FunctionName, compileerr.Pos{})
	}
	if err := CheckBody(ContextFunction, body); err != nil {
		return nil, 1, err
	}
	return &Item{
		Kind:   KindFunctionDecl,
		Name:   name,
		Params: parseFormalArgs(argsRaw),
		Body:   body,
	}, 1, nil
}

// translateIfChain folds a run of sibling `@if`/`@else if`/`@else`
// Blocks into one Item, since dst hands each arm over as an
// independent sibling rather than a nested structure.
func translateIfChain(nodes []dst.Node, i int) (*Item, int, error) {
	first := nodes[i].(*dst.Block)
	cond, err := ParseExpr(strings.TrimSpace(strings.TrimPrefix(selText(first), "@if")))
	if err != nil {
		return nil, 1, err
	}
	body, err := translateNodes(first.Children)
	if err != nil {
		return nil, 1, err
	}
	if err := CheckBody(ContextControl, body); err != nil {
		return nil, 1, err
	}
	branches := []IfBranch{{Cond: cond, Body: body}}

	consumed := 1
	for i+consumed < len(nodes) {
		next, ok := nodes[i+consumed].(*dst.Block)
		if !ok {
			break
		}
		sel := selText(next)
		if !strings.HasPrefix(sel, "@else") {
			break
		}
		rest := strings.TrimSpace(strings.TrimPrefix(sel, "@else"))
		body, err := translateNodes(next.Children)
		if err != nil {
			return nil, 1, err
		}
		if err := CheckBody(ContextControl, body); err != nil {
			return nil, 1, err
		}
		if strings.HasPrefix(rest, "if ") {
			cond, err := ParseExpr(strings.TrimSpace(strings.TrimPrefix(rest, "if ")))
			if err != nil {
				return nil, 1, err
			}
			branches = append(branches, IfBranch{Cond: cond, Body: body})
		} else {
			branches = append(branches, IfBranch{Cond: nil, Body: body})
			consumed++
			break
		}
		consumed++
	}

	return &Item{Kind: KindIf, Branches: branches}, consumed, nil
}

func translateEachBlock(b *dst.Block) (*Item, int, error) {
	sel := selText(b)
	rest := strings.TrimSpace(strings.TrimPrefix(sel, "@each"))
	rest = strings.TrimPrefix(rest, "(")
	names, listRaw := splitInKeyword(rest)
	body, err := translateNodes(b.Children)
	if err != nil {
		return nil, 1, err
	}
	if err := CheckBody(ContextControl, body); err != nil {
		return nil, 1, err
	}
	listExpr, err := ParseExpr(listRaw)
	if err != nil {
		return nil, 1, err
	}
	return &Item{Kind: KindEach, EachNames: names, EachList: listExpr, Body: body}, 1, nil
}

// splitInKeyword splits "$k, $v in $map" into (["k", "v"], "$map").
func splitInKeyword(s string) ([]string, string) {
	idx := topLevelIndex(s, " in ")
	namesPart, listPart := s, ""
	if idx != -1 {
		namesPart = s[:idx]
		listPart = strings.TrimSpace(s[idx+len(" in "):])
	}
	var names []string
	for _, n := range splitTopLevelCommas(namesPart) {
		names = append(names, strings.TrimPrefix(strings.TrimSpace(n), "$"))
	}
	return names, listPart
}

func translateForBlock(b *dst.Block) (*Item, int, error) {
	sel := selText(b)
	rest := strings.TrimSpace(strings.TrimPrefix(sel, "@for"))
	fromIdx := topLevelIndex(rest, " from ")
	varName := strings.TrimPrefix(strings.TrimSpace(rest), "$")
	fromTo := rest
	if fromIdx != -1 {
		varName = strings.TrimPrefix(strings.TrimSpace(rest[:fromIdx]), "$")
		fromTo = strings.TrimSpace(rest[fromIdx+len(" from "):])
	}
	exclusive := false
	var splitIdx int
	if idx := topLevelIndex(fromTo, " through "); idx != -1 {
		splitIdx = idx
		fromTo2 := fromTo[idx+len(" through "):]
		fromExpr, _ := ParseExpr(strings.TrimSpace(fromTo[:splitIdx]))
		toExpr, _ := ParseExpr(strings.TrimSpace(fromTo2))
		body, err := translateNodes(b.Children)
		if err != nil {
			return nil, 1, err
		}
		if err := CheckBody(ContextControl, body); err != nil {
			return nil, 1, err
		}
		return &Item{Kind: KindFor, ForVar: varName, ForFrom: fromExpr, ForTo: toExpr, ForExclusive: false, Body: body}, 1, nil
	}
	if idx := topLevelIndex(fromTo, " to "); idx != -1 {
		exclusive = true
		fromTo2 := fromTo[idx+len(" to "):]
		fromExpr, _ := ParseExpr(strings.TrimSpace(fromTo[:idx]))
		toExpr, _ := ParseExpr(strings.TrimSpace(fromTo2))
		body, err := translateNodes(b.Children)
		if err != nil {
			return nil, 1, err
		}
		if err := CheckBody(ContextControl, body); err != nil {
			return nil, 1, err
		}
		return &Item{Kind: KindFor, ForVar: varName, ForFrom: fromExpr, ForTo: toExpr, ForExclusive: exclusive, Body: body}, 1, nil
	}
	body, err := translateNodes(b.Children)
	if err != nil {
		return nil, 1, err
	}
	return &Item{Kind: KindFor, ForVar: varName, Body: body}, 1, nil
}

func translateWhileBlock(b *dst.Block) (*Item, int, error) {
	sel := selText(b)
	cond, err := ParseExpr(strings.TrimSpace(strings.TrimPrefix(sel, "@while")))
	if err != nil {
		return nil, 1, err
	}
	body, err := translateNodes(b.Children)
	if err != nil {
		return nil, 1, err
	}
	if err := CheckBody(ContextControl, body); err != nil {
		return nil, 1, err
	}
	return &Item{Kind: KindWhile, Guard: cond, Body: body}, 1, nil
}

func translateEachNode(n *dst.Each) (*Item, error) {
	body, err := translateNodes(n.Children)
	if err != nil {
		return nil, err
	}
	listExpr, err := ParseExpr(n.ListExpr)
	if err != nil {
		return nil, err
	}
	return &Item{Kind: KindEach, EachNames: []string{n.VarName}, EachList: listExpr, Body: body}, nil
}

func translateDecl(d *dst.Decl) *Item {
	value := strings.TrimSpace(d.Value)
	isDefault, isGlobal := false, false
	for {
		switch {
		case strings.HasSuffix(value, "!default"):
			isDefault = true
			value = strings.TrimSpace(strings.TrimSuffix(value, "!default"))
			continue
		case strings.HasSuffix(value, "!global"):
			isGlobal = true
			value = strings.TrimSpace(strings.TrimSuffix(value, "!global"))
			continue
		}
		break
	}
	valExpr, _ := ParseExpr(value)

	if strings.HasPrefix(d.Key, "$") {
		return &Item{
			Kind:    KindVariableDecl,
			Name:    strings.TrimPrefix(d.Key, "$"),
			Value:   valExpr,
			Default: isDefault,
			Global:  isGlobal,
		}
	}
	if strings.HasPrefix(d.Key, "--") {
		return &Item{Kind: KindCustomProperty, PropName: d.Key, Value: valExpr}
	}
	return &Item{Kind: KindProperty, PropName: d.Key, Value: valExpr}
}

func translateMixinCall(m *dst.MixinCall) *Item {
	name := m.Name
	name = strings.TrimPrefix(name, ".")
	name = strings.TrimPrefix(name, "#")
	name = strings.TrimPrefix(name, "&")
	var args []Arg
	for _, raw := range m.Args {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		argName := ""
		if colon := topLevelIndexByte(raw, ':'); colon != -1 && strings.HasPrefix(strings.TrimSpace(raw), "$") {
			argName = strings.TrimPrefix(strings.TrimSpace(raw[:colon]), "$")
			raw = strings.TrimSpace(raw[colon+1:])
		}
		e, _ := ParseExpr(raw)
		args = append(args, Arg{Name: argName, Expr: e})
	}
	return &Item{Kind: KindMixinCall, Name: strings.TrimSpace(name), Args: args}
}

func parseCallArgs(raw string) []Arg {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var args []Arg
	for _, part := range splitTopLevelCommas(raw) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		argName := ""
		if colon := topLevelIndexByte(part, ':'); colon != -1 && strings.HasPrefix(part, "$") {
			argName = strings.TrimPrefix(strings.TrimSpace(part[:colon]), "$")
			part = strings.TrimSpace(part[colon+1:])
		}
		e, _ := ParseExpr(part)
		args = append(args, Arg{Name: argName, Expr: e})
	}
	return args
}

// translateBlockVariable approximates a SCSS map literal assigned to a
// top-level variable (`$theme: (primary: #000, accent: #fff);` spelled
// across multiple lines by the parser's block-variable path). Nested
// rule Blocks inside the literal have no map-entry meaning and are
// dropped; only Decl children become entries.
func translateBlockVariable(bv *dst.BlockVariable) *Item {
	var keys, vals []Expr
	for _, child := range bv.Children {
		d, ok := child.(*dst.Decl)
		if !ok {
			continue
		}
		keyText := strings.Trim(d.Key, `"'`)
		keys = append(keys, ExprLit{Value: expression.NewLiteral(keyText, expression.NoQuotes)})
		ve, _ := ParseExpr(d.Value)
		vals = append(vals, ve)
	}
	return &Item{Kind: KindVariableDecl, Name: bv.Name, Value: ExprMap{Keys: keys, Values: vals}}
}

func translateAtStatement(n *dst.AtStatement) (*Item, error) {
	name := strings.ToLower(strings.TrimSpace(n.Name))
	args := strings.TrimSpace(n.Args)
	switch name {
	case "use":
		path, as, show, hide, with, star := parseUseForward(args)
		return &Item{
			Kind: KindUse,
			Name: path,
			As:   as,
			With: with,
			Vis:  Visibility{Star: star, Show: len(show) > 0, Hide: len(hide) > 0, Vars: append(show, hide...)},
		}, nil
	case "forward":
		path, as, show, hide, with, star := parseUseForward(args)
		vis := Visibility{Star: star}
		if len(show) > 0 {
			vis.Show = true
			vis.Vars = show
		}
		if len(hide) > 0 {
			vis.Hide = true
			vis.Vars = hide
		}
		return &Item{Kind: KindForward, Name: path, As: as, With: with, Vis: vis}, nil
	case "import":
		path, _ := extractQuotedPrefix(args)
		return &Item{Kind: KindImport, Raw: path}, nil
	case "debug":
		e, err := ParseExpr(args)
		return &Item{Kind: KindDebug, Value: e}, err
	case "warn":
		e, err := ParseExpr(args)
		return &Item{Kind: KindWarn, Value: e}, err
	case "error":
		e, err := ParseExpr(args)
		return &Item{Kind: KindError, Value: e}, err
	case "return":
		e, err := ParseExpr(args)
		return &Item{Kind: KindReturn, Value: e}, err
	case "content":
		return &Item{Kind: KindContent, Args: parseCallArgs(strings.Trim(args, "()"))}, nil
	default:
		return &Item{Kind: KindAtRule, AtRuleName: name, AtRuleArgs: args}, nil
	}
}

// parseUseForward parses the shared `@use`/`@forward` trailer grammar:
// a quoted path followed by any of `as X`, `show a, b`, `hide a, b`,
// `with (...)` in any order.
func parseUseForward(raw string) (path, as string, show, hide []string, with []WithEntry, star bool) {
	path, rest := extractQuotedPrefix(raw)
	fields := fieldsRespectingGroups(strings.TrimSpace(rest))
	i := 0
	isKeyword := func(s string) bool {
		switch strings.ToLower(s) {
		case "as", "show", "hide", "with":
			return true
		}
		return false
	}
	for i < len(fields) {
		switch strings.ToLower(fields[i]) {
		case "as":
			i++
			if i < len(fields) {
				as = fields[i]
				if as == "*" {
					star = true
				}
				i++
			}
		case "show":
			i++
			for i < len(fields) && !isKeyword(fields[i]) {
				show = append(show, strings.TrimPrefix(strings.TrimSuffix(strings.TrimSpace(fields[i]), ","), "$"))
				i++
			}
		case "hide":
			i++
			for i < len(fields) && !isKeyword(fields[i]) {
				hide = append(hide, strings.TrimPrefix(strings.TrimSuffix(strings.TrimSpace(fields[i]), ","), "$"))
				i++
			}
		case "with":
			i++
			if i < len(fields) {
				inner := strings.TrimSuffix(strings.TrimPrefix(fields[i], "("), ")")
				with = parseWithEntries(inner)
				i++
			}
		default:
			i++
		}
	}
	return
}

func parseWithEntries(s string) []WithEntry {
	var out []WithEntry
	for _, part := range splitTopLevelCommas(s) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		isDefault := false
		if strings.HasSuffix(part, "!default") {
			isDefault = true
			part = strings.TrimSpace(strings.TrimSuffix(part, "!default"))
		}
		colon := topLevelIndexByte(part, ':')
		if colon == -1 {
			continue
		}
		name := strings.TrimPrefix(strings.TrimSpace(part[:colon]), "$")
		e, _ := ParseExpr(strings.TrimSpace(part[colon+1:]))
		out = append(out, WithEntry{Name: name, Value: e, IsDefault: isDefault})
	}
	return out
}

func parseFormalArgs(raw string) expression.FormalArgs {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return expression.FormalArgs{}
	}
	var params []expression.FormalParam
	for _, part := range splitTopLevelCommas(raw) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rest := false
		if strings.HasSuffix(part, "...") {
			rest = true
			part = strings.TrimSpace(strings.TrimSuffix(part, "..."))
		}
		colon := topLevelIndexByte(part, ':')
		name := part
		defaultRaw := ""
		hasDefault := false
		if colon != -1 {
			name = part[:colon]
			defaultRaw = strings.TrimSpace(part[colon+1:])
			hasDefault = true
		}
		name = strings.TrimPrefix(strings.TrimSpace(name), "$")
		params = append(params, expression.FormalParam{Name: name, DefaultRaw: defaultRaw, HasDefault: hasDefault, Rest: rest})
	}
	return expression.FormalArgs{Params: params}
}

func splitNameArgs(sel string) (name, argsRaw string) {
	parenIdx := strings.Index(sel, "(")
	if parenIdx == -1 {
		return strings.TrimSpace(sel), ""
	}
	name = strings.TrimSpace(sel[:parenIdx])
	closeIdx := strings.LastIndex(sel, ")")
	if closeIdx == -1 || closeIdx < parenIdx {
		return name, ""
	}
	return name, sel[parenIdx+1 : closeIdx]
}

// extractQuotedPrefix strips a leading quoted string (the module
// path) from s, returning its unquoted content and the remainder.
func extractQuotedPrefix(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '"' && s[0] != '\'') {
		return "", s
	}
	q := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] == q {
			return s[1:i], strings.TrimSpace(s[i+1:])
		}
	}
	return s[1:], ""
}

// fieldsRespectingGroups splits on whitespace but keeps a run intact
// while inside unbalanced parens or a quoted string, so `with ($a: 1)`
// yields ["with", "($a: 1)"] rather than splintering on the internal
// space.
func fieldsRespectingGroups(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
			cur.WriteByte(c)
		case '(':
			depth++
			cur.WriteByte(c)
		case ')':
			depth--
			cur.WriteByte(c)
		case ' ', '\t':
			if depth > 0 {
				cur.WriteByte(c)
			} else if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// splitTopLevelCommas splits s on commas that are not nested inside
// parens or quotes.
func splitTopLevelCommas(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
			cur.WriteByte(c)
		case '(':
			depth++
			cur.WriteByte(c)
		case ')':
			depth--
			cur.WriteByte(c)
		case ',':
			if depth == 0 {
				out = append(out, cur.String())
				cur.Reset()
				continue
			}
			cur.WriteByte(c)
		default:
			cur.WriteByte(c)
		}
	}
	if strings.TrimSpace(cur.String()) != "" || len(out) > 0 {
		out = append(out, cur.String())
	}
	return out
}

// topLevelIndexByte finds the first occurrence of b outside any
// paren/quote nesting.
func topLevelIndexByte(s string, b byte) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
		default:
			if c == b && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// topLevelIndex finds the first occurrence of sep outside any
// paren/quote nesting.
func topLevelIndex(s, sep string) int {
	depth := 0
	var quote byte
	for i := 0; i+len(sep) <= len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
			continue
		case '(':
			depth++
			continue
		case ')':
			depth--
			continue
		}
		if depth == 0 && s[i:i+len(sep)] == sep {
			return i
		}
	}
	return -1
}
