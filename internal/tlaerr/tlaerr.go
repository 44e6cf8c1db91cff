// Package tlaerr defines the error taxonomy shared by the value, eval, and
// enumerate packages. An Error carries a Kind the caller can switch on
// (via errors.As) instead of matching message strings, and an optional
// source Position filled in by whichever layer first has one available.
package tlaerr

import "fmt"

// Kind classifies a failure the way §7 of the interpreter's contract does.
type Kind int

const (
	// KindParse marks a failure in the rewriter or parser, before any
	// evaluation has started.
	KindParse Kind = iota
	// KindUnboundIdentifier marks a reference to a name with no binding
	// in state, quantifiers, definitions, or constants.
	KindUnboundIdentifier
	// KindTypeMismatch marks an operator applied to a value of the wrong
	// variant (e.g. arithmetic on a Set).
	KindTypeMismatch
	// KindDomain marks a function/tuple applied to an argument outside
	// its domain.
	KindDomain
	// KindNoWitness marks a CHOOSE with no satisfying element.
	KindNoWitness
	// KindNonexhaustiveCase marks a CASE with no matching arm and no OTHER.
	KindNonexhaustiveCase
	// KindAssertion marks an internal invariant violation that should be
	// unreachable in a correct implementation.
	KindAssertion
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindUnboundIdentifier:
		return "UnboundIdentifier"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindDomain:
		return "DomainError"
	case KindNoWitness:
		return "NoWitness"
	case KindNonexhaustiveCase:
		return "NonexhaustiveCase"
	case KindAssertion:
		return "AssertionFailure"
	default:
		return "UnknownError"
	}
}

// Position is a best-effort pointer back into the original source text,
// taken from the parsed node's line and column (the rewriter keeps the
// original positions; see internal/rewriter).
type Position struct {
	Line   int
	Column int
}

// IsZero reports whether the position was never filled in.
func (p Position) IsZero() bool { return p.Line == 0 && p.Column == 0 }

func (p Position) String() string {
	if p.IsZero() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error is the error type every layer of the interpreter returns.
type Error struct {
	Kind Kind
	Pos  Position
	Msg  string
	// Wrapped, if set, is the underlying error this Error was derived
	// from (so errors.Unwrap keeps working across layer boundaries).
	Wrapped error
}

func (e *Error) Error() string {
	if e.Pos.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New builds an Error with no position. Callers that have a position
// available pass the result through AtPos before returning it further up
// the stack.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// AtPos returns a copy of e with Pos set, unless e already has one — the
// layer closest to the syntax tree wins, since it has the most precise
// location.
func AtPos(err error, pos Position) *Error {
	e, ok := err.(*Error)
	if !ok {
		return &Error{Kind: KindAssertion, Pos: pos, Msg: err.Error(), Wrapped: err}
	}
	if !e.Pos.IsZero() {
		return e
	}
	cp := *e
	cp.Pos = pos
	return &cp
}
