// Package compileerr defines the error kinds raised while compiling an
// SSS source tree (§7): parse failures, argument-shape errors, context
// violations, unit mismatches, and loader I/O failures. BadCall and
// IOError keep their cause and expose it through Unwrap, so callers can
// still errors.Is/As through to the original fault.
package compileerr

import "fmt"

// Pos is a byte offset plus a human line/column, attached to most error
// kinds so the formatter can render a source-span snippet.
type Pos struct {
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError wraps a malformed-source failure raised by the parser
// collaborator (§6's Loader/SourceFile contract).
type ParseError struct {
	Pos Pos
	Msg string
}

func (e *ParseError) Error() string {
	if e.Pos.Line != 0 {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// NewParseError builds a ParseError at pos.
func NewParseError(pos Pos, format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// BadCall is an argument-shape error: wrong count, unknown named
// argument, incompatible type. DeclPos is the zero Pos when the callee
// is a builtin with no SSS-level declaration site.
type BadCall struct {
	Message string
	CallPos Pos
	DeclPos Pos
	cause   error
}

func (e *BadCall) Error() string {
	if e.DeclPos.Line != 0 {
		return fmt.Sprintf("%s: %s (declared at %s)", e.CallPos, e.Message, e.DeclPos)
	}
	return fmt.Sprintf("%s: %s", e.CallPos, e.Message)
}

func (e *BadCall) Unwrap() error { return e.cause }

// NewBadCall builds a BadCall without a user-defined declaration site.
func NewBadCall(callPos Pos, message string) *BadCall {
	return &BadCall{Message: message, CallPos: callPos}
}

// NewBadCallAt builds a BadCall that also names the callee's
// declaration position.
func NewBadCallAt(callPos, declPos Pos, message string) *BadCall {
	return &BadCall{Message: message, CallPos: callPos, DeclPos: declPos}
}

// WrapBadCall wraps cause as a BadCall at the enclosing call site pos.
// Every non-nil cause is wrapped, including one that is already
// positional (a ParseError, BadCall, Invalid or UnitError); the
// original stays reachable through Unwrap.
func WrapBadCall(pos Pos, cause error) *BadCall {
	if cause == nil {
		return nil
	}
	return &BadCall{Message: cause.Error(), CallPos: pos, cause: cause}
}

// InvalidKind enumerates the structural context violations in §7.
type InvalidKind int

const (
	MixinInMixin InvalidKind = iota
	FunctionInMixin
	MixinInControl
	FunctionInControl
	AtError
	AtRule
	FunctionName
)

func (k InvalidKind) String() string {
	switch k {
	case MixinInMixin:
		return "mixin declared inside a mixin body"
	case FunctionInMixin:
		return "function declared inside a mixin body"
	case MixinInControl:
		return "mixin declared inside a control-flow body"
	case FunctionInControl:
		return "function declared inside a control-flow body"
	case AtError:
		return "@error"
	case AtRule:
		return "at-rule not permitted in this context"
	case FunctionName:
		return "reserved function name"
	default:
		return "invalid"
	}
}

// Invalid is a structural context violation: a declaration or at-rule
// that isn't allowed to appear where it was written.
type Invalid struct {
	Kind    InvalidKind
	Pos     Pos
	Payload string // formatted @error value, when Kind == AtError
}

func (e *Invalid) Error() string {
	if e.Kind == AtError {
		return fmt.Sprintf("%s: %s", e.Pos, e.Payload)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
}

// NewInvalid builds an Invalid of the given kind.
func NewInvalid(kind InvalidKind, pos Pos) *Invalid {
	return &Invalid{Kind: kind, Pos: pos}
}

// NewAtError builds the Invalid(AtError) raised by an `@error` item:
// formatted is the value's already-rendered text (§7).
func NewAtError(pos Pos, formatted string) *Invalid {
	return &Invalid{Kind: AtError, Pos: pos, Payload: formatted}
}

// UnitError is an incompatible-unit arithmetic failure.
type UnitError struct {
	Pos    Pos
	LHS    string
	RHS    string
	Detail string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: incompatible units %q and %q: %s", e.Pos, e.LHS, e.RHS, e.Detail)
}

// NewUnitError builds a UnitError.
func NewUnitError(pos Pos, lhs, rhs, detail string) *UnitError {
	return &UnitError{Pos: pos, LHS: lhs, RHS: rhs, Detail: detail}
}

// IOError wraps a loader failure: missing stylesheet or unreadable file.
type IOError struct {
	Path  string
	cause error
}

func (e *IOError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("can't find stylesheet %q: %v", e.Path, e.cause)
	}
	return fmt.Sprintf("can't find stylesheet %q", e.Path)
}

func (e *IOError) Unwrap() error { return e.cause }

// NewIOError wraps cause as a loader failure for the given logical path.
func NewIOError(path string, cause error) *IOError {
	return &IOError{Path: path, cause: cause}
}
