package lisp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies evaluation errors.
type ErrorKind int

// Kinds of evaluation errors.
const (
	TypeMismatch ErrorKind = iota
	SymbolNotFound
	MalformedList
	Arity
	DivideByZero
	ExpansionLimit
)

// Error is an evaluation error. Which fields are set depends on Kind:
// Expected and Actual for TypeMismatch, Name for SymbolNotFound and Forms
// for MalformedList.
type Error struct {
	Kind     ErrorKind
	Expected Type
	Actual   Expr
	Name     string
	Forms    List
}

// Sentinels for errors.Is; an *Error matches the sentinel of its kind.
var (
	ErrTypeMismatch   = &Error{Kind: TypeMismatch}
	ErrSymbolNotFound = &Error{Kind: SymbolNotFound}
	ErrMalformedList  = &Error{Kind: MalformedList}
	ErrArity          = &Error{Kind: Arity}
	ErrDivideByZero   = &Error{Kind: DivideByZero}
	ErrExpansionLimit = &Error{Kind: ExpansionLimit}
)

func (e *Error) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return fmt.Sprintf("type mismatch: expected %v, got %s",
			e.Expected, Stringify(e.Actual, true))
	case SymbolNotFound:
		return fmt.Sprintf("symbol %q not found", e.Name)
	case MalformedList:
		return fmt.Sprintf("cannot evaluate list %s", Stringify(e.Forms, true))
	case Arity:
		return "wrong number of forms"
	case DivideByZero:
		return "division by zero"
	case ExpansionLimit:
		return "macro expansion limit exceeded"
	}
	return fmt.Sprintf("error kind %d", e.Kind)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func typeMismatch(expected Type, actual Expr) error {
	return &Error{Kind: TypeMismatch, Expected: expected, Actual: actual}
}

func symbolNotFound(sym *Symbol) error {
	return &Error{Kind: SymbolNotFound, Name: sym.Name()}
}

func malformedList(forms List) error {
	return &Error{Kind: MalformedList, Forms: forms}
}

func arity() error {
	return &Error{Kind: Arity}
}

//----------------------------------------------------------------------

// ErrIncomplete is returned by the reader when the input ends inside a form.
var ErrIncomplete = errors.New("incomplete expression")

// SyntaxError is returned by the reader for malformed input.
type SyntaxError struct {
	Pos string
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos == "" {
		return "syntax error: " + e.Msg
	}
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}
