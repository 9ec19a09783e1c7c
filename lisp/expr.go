// Package lisp implements a small S-expression language: expressions,
// environments, an evaluator with a fixed set of special forms, macros and
// quasiquote templates.
package lisp

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/nukata/goarith"
)

// Expr represents an expression. Code and data share this representation.
//
// The variants are *Symbol, goarith.Number (integers), float64, bool,
// string, List, *Builtin, *Lambda and *Macro.
type Expr = interface{}

//----------------------------------------------------------------------

// Symbol represents an identifier.
type Symbol string

// The mapping from string to *Symbol
var symbols sync.Map

// Intern interns a name as a symbol.
func Intern(name string) *Symbol {
	newSym := Symbol(name)
	sym, _ := symbols.LoadOrStore(name, &newSym)
	return sym.(*Symbol)
}

// Name returns the name of the symbol.
func (s *Symbol) Name() string { return string(*s) }

var (
	symDef           = Intern("def")
	symIf            = Intern("if")
	symFn            = Intern("fn")
	symMacro         = Intern("macro")
	symLet           = Intern("let")
	symDo            = Intern("do")
	symQuote         = Intern("quote")
	symQuasiquote    = Intern("quasiquote")
	symUnquote       = Intern("unquote")
	symSpliceUnquote = Intern("splice-unquote")
)

//----------------------------------------------------------------------

// List represents a list; the only compound expression.
// A List is never modified once built.
type List []Expr

func (l List) String() string {
	return Stringify(l, true)
}

// Builtin represents a procedure implemented in Go.
// Fn receives its arguments unevaluated.
type Builtin struct {
	Name string
	Fn   func(args List, env *Environment) (Expr, error)
}

// Lambda represents a user-defined procedure.
// Params is conventionally a List of symbols.
type Lambda struct {
	Params Expr
	Body   Expr
}

// Macro has the shape of Lambda but is expanded instead of called.
type Macro struct {
	Params Expr
	Body   Expr
}

//----------------------------------------------------------------------

// Type names the type of an expression.
type Type int

// Types of expressions. Numeric stands for either Number or Float.
const (
	TypeSymbol Type = iota
	TypeNumber
	TypeFloat
	TypeNumeric
	TypeBool
	TypeString
	TypeList
	TypeProcedure
	TypeLambda
	TypeMacro
	TypeUnknown
)

var typeNames = [...]string{
	"Symbol", "Number", "Float", "Numeric", "Bool", "String", "List",
	"Procedure", "Lambda", "Macro", "Unknown",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// TypeOf returns the type of an expression.
func TypeOf(x Expr) Type {
	switch x.(type) {
	case *Symbol:
		return TypeSymbol
	case goarith.Number:
		return TypeNumber
	case float64:
		return TypeFloat
	case bool:
		return TypeBool
	case string:
		return TypeString
	case List:
		return TypeList
	case *Builtin:
		return TypeProcedure
	case *Lambda:
		return TypeLambda
	case *Macro:
		return TypeMacro
	}
	return TypeUnknown
}

// Int returns n as a Number.
func Int(n int64) goarith.Number {
	return goarith.AsNumber(n)
}

//----------------------------------------------------------------------

// Stringify returns the string representation of an expression.
// Strings in the expression will be quoted if quote is true.
func Stringify(x Expr, quote bool) string {
	switch x := x.(type) {
	case nil:
		return "#<nil>"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case List:
		ss := make([]string, len(x))
		for i, e := range x {
			ss[i] = Stringify(e, quote)
		}
		return "(" + strings.Join(ss, " ") + ")"
	case *Symbol:
		return string(*x)
	case string:
		if quote {
			return strconv.Quote(x)
		}
		return x
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnI") {
			s += ".0"
		}
		return s
	case goarith.Number:
		return x.String()
	case *Builtin:
		return "#<builtin:" + x.Name + ">"
	case *Lambda:
		return "#<fn " + Stringify(x.Params, true) + " " + Stringify(x.Body, true) + ">"
	case *Macro:
		return "#<macro " + Stringify(x.Params, true) + " " + Stringify(x.Body, true) + ">"
	}
	return fmt.Sprintf("%v", x)
}
