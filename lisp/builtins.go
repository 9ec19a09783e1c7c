package lisp

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/nukata/goarith"
)

var (
	zero     = goarith.AsNumber(0)
	minusOne = goarith.AsNumber(-1)
)

// NewDefaultEnvironment returns a top-level environment which binds the
// primitive procedures.
func NewDefaultEnvironment(opts Options) *Environment {
	env := NewEnvironment(opts)
	for _, b := range builtins(env.opts) {
		env.Define(Intern(b.Name), b)
	}
	return env
}

func b(name string, fn func(List, *Environment) (Expr, error)) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

func builtins(opts *Options) []*Builtin {
	return []*Builtin{
		b("+", func(args List, env *Environment) (Expr, error) {
			ints, floats, err := evalNumbers(args, env)
			if err != nil {
				return nil, err
			}
			if floats != nil {
				var sum float64
				for _, f := range floats {
					sum += f
				}
				return sum, nil
			}
			sum := zero
			for _, n := range ints {
				sum = sum.Add(n)
			}
			return sum, nil
		}),
		b("-", func(args List, env *Environment) (Expr, error) {
			ints, floats, err := evalNumbers(args, env)
			if err != nil {
				return nil, err
			}
			switch {
			case floats != nil:
				if len(floats) == 1 {
					return -floats[0], nil
				}
				diff := floats[0]
				for _, f := range floats[1:] {
					diff -= f
				}
				return diff, nil
			case len(ints) == 0:
				return nil, arity()
			case len(ints) == 1:
				return zero.Sub(ints[0]), nil
			}
			diff := ints[0]
			for _, n := range ints[1:] {
				diff = diff.Sub(n)
			}
			return diff, nil
		}),
		b("*", func(args List, env *Environment) (Expr, error) {
			ints, floats, err := evalNumbers(args, env)
			if err != nil {
				return nil, err
			}
			if floats != nil {
				product := 1.0
				for _, f := range floats {
					product *= f
				}
				return product, nil
			}
			product := goarith.AsNumber(1)
			for _, n := range ints {
				product = product.Mul(n)
			}
			return product, nil
		}),
		b("/", func(args List, env *Environment) (Expr, error) {
			ints, floats, err := evalNumbers(args, env)
			if err != nil {
				return nil, err
			}
			if floats != nil {
				quo := floats[0]
				for _, f := range floats[1:] {
					quo /= f
				}
				return quo, nil
			}
			if len(ints) == 0 {
				return nil, arity()
			}
			quo := ints[0]
			for _, n := range ints[1:] {
				if n.Cmp(zero) == 0 {
					return nil, &Error{Kind: DivideByZero}
				}
				if n.Cmp(minusOne) == 0 {
					// Sub promotes MinInt64 / -1; QuoRem would wrap.
					quo = zero.Sub(quo)
					continue
				}
				quo, _ = quo.QuoRem(n)
			}
			return quo, nil
		}),
		b("rem", func(args List, env *Environment) (Expr, error) {
			if len(args) != 2 {
				return nil, arity()
			}
			ints, floats, err := evalNumbers(args, env)
			if err != nil {
				return nil, err
			}
			if floats != nil {
				return math.Mod(floats[0], floats[1]), nil
			}
			if ints[1].Cmp(zero) == 0 {
				return nil, &Error{Kind: DivideByZero}
			}
			if ints[1].Cmp(minusOne) == 0 {
				return zero, nil
			}
			_, r := ints[0].QuoRem(ints[1])
			return r, nil
		}),
		b("=", compare(func(c int) bool { return c == 0 })),
		b("<", compare(func(c int) bool { return c < 0 })),
		b(">", compare(func(c int) bool { return c > 0 })),
		b("<=", compare(func(c int) bool { return c <= 0 })),
		b(">=", compare(func(c int) bool { return c >= 0 })),
		b("not", func(args List, env *Environment) (Expr, error) {
			x, err := evalArgs(args, env, 1)
			if err != nil {
				return nil, err
			}
			return x[0] == false, nil
		}),
		b("and", func(args List, env *Environment) (Expr, error) {
			bools, err := evalBools(args, env)
			if err != nil {
				return nil, err
			}
			for _, v := range bools {
				if !v {
					return false, nil
				}
			}
			return true, nil
		}),
		b("or", func(args List, env *Environment) (Expr, error) {
			bools, err := evalBools(args, env)
			if err != nil {
				return nil, err
			}
			for _, v := range bools {
				if v {
					return true, nil
				}
			}
			return false, nil
		}),
		b("list", func(args List, env *Environment) (Expr, error) {
			return evalForms(args, env)
		}),
		b("car", func(args List, env *Environment) (Expr, error) {
			l, err := evalList1(args, env)
			if err != nil {
				return nil, err
			}
			if len(l) == 0 {
				return nil, malformedList(l)
			}
			return l[0], nil
		}),
		b("cdr", func(args List, env *Environment) (Expr, error) {
			l, err := evalList1(args, env)
			if err != nil {
				return nil, err
			}
			if len(l) == 0 {
				return List{}, nil
			}
			return l[1:], nil
		}),
		b("cons", func(args List, env *Environment) (Expr, error) {
			x, err := evalArgs(args, env, 2)
			if err != nil {
				return nil, err
			}
			rest, ok := x[1].(List)
			if !ok {
				return nil, typeMismatch(TypeList, x[1])
			}
			return append(List{x[0]}, rest...), nil
		}),
		b("null?", func(args List, env *Environment) (Expr, error) {
			x, err := evalArgs(args, env, 1)
			if err != nil {
				return nil, err
			}
			l, ok := x[0].(List)
			return ok && len(l) == 0, nil
		}),
		b("symbol?", func(args List, env *Environment) (Expr, error) {
			x, err := evalArgs(args, env, 1)
			if err != nil {
				return nil, err
			}
			_, ok := x[0].(*Symbol)
			return ok, nil
		}),
		b("eq?", func(args List, env *Environment) (Expr, error) {
			x, err := evalArgs(args, env, 2)
			if err != nil {
				return nil, err
			}
			return Equal(x[0], x[1]), nil
		}),
		b("m-expand1", func(args List, env *Environment) (Expr, error) {
			if len(args) != 1 {
				return nil, arity()
			}
			expansion, _, err := ExpandOnce(args[0], env)
			return expansion, err
		}),
		b("m-expand", func(args List, env *Environment) (Expr, error) {
			if len(args) != 1 {
				return nil, arity()
			}
			return ExpandAll(args[0], env)
		}),
		b("print", func(args List, env *Environment) (Expr, error) {
			x, err := evalArgs(args, env, 1)
			if err != nil {
				return nil, err
			}
			fmt.Fprint(opts.Out, Stringify(x[0], false))
			return x[0], nil
		}),
		b("println", func(args List, env *Environment) (Expr, error) {
			x, err := evalArgs(args, env, 1)
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(opts.Out, Stringify(x[0], false))
			return x[0], nil
		}),
		b("dbg", func(args List, env *Environment) (Expr, error) {
			if len(args) != 1 {
				return nil, arity()
			}
			x, err := Eval(args[0], env)
			if err != nil {
				fmt.Fprintf(opts.Err, "[dbg] %s => %v\n", Stringify(args[0], true), err)
				return nil, err
			}
			fmt.Fprintf(opts.Err, "[dbg] %s = %s\n", Stringify(args[0], true), Stringify(x, true))
			return x, nil
		}),
		b("readline", func(args List, env *Environment) (Expr, error) {
			if len(args) > 1 {
				return nil, arity()
			}
			prompt := ""
			if len(args) == 1 {
				x, err := Eval(args[0], env)
				if err != nil {
					return nil, err
				}
				s, ok := x.(string)
				if !ok {
					return nil, typeMismatch(TypeString, x)
				}
				prompt = s
			}
			line, err := opts.In.ReadLine(prompt)
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("readline: %w", err)
			}
			return line, nil
		}),
		b("time", func(args List, env *Environment) (Expr, error) {
			if len(args) != 1 {
				return nil, arity()
			}
			start := time.Now()
			x, err := Eval(args[0], env)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(opts.Out, "Eval time for expr: %s = %v\n",
				Stringify(args[0], true), time.Since(start))
			return x, nil
		}),
	}
}

//----------------------------------------------------------------------

// evalArgs evaluates exactly n arguments.
func evalArgs(args List, env *Environment, n int) (List, error) {
	if len(args) != n {
		return nil, arity()
	}
	return evalForms(args, env)
}

func evalList1(args List, env *Environment) (List, error) {
	x, err := evalArgs(args, env, 1)
	if err != nil {
		return nil, err
	}
	l, ok := x[0].(List)
	if !ok {
		return nil, typeMismatch(TypeList, x[0])
	}
	return l, nil
}

// evalNumbers evaluates args, which must all be Numbers or all be Floats.
// The first argument decides which. Exactly one of the results is non-nil
// unless args is empty.
func evalNumbers(args List, env *Environment) ([]goarith.Number, []float64, error) {
	var ints []goarith.Number
	var floats []float64
	for _, arg := range args {
		x, err := Eval(arg, env)
		if err != nil {
			return nil, nil, err
		}
		switch n := x.(type) {
		case goarith.Number:
			if floats != nil {
				return nil, nil, typeMismatch(TypeFloat, x)
			}
			if ints == nil {
				ints = make([]goarith.Number, 0, len(args))
			}
			ints = append(ints, n)
		case float64:
			if ints != nil {
				return nil, nil, typeMismatch(TypeNumber, x)
			}
			if floats == nil {
				floats = make([]float64, 0, len(args))
			}
			floats = append(floats, n)
		default:
			switch {
			case ints != nil:
				return nil, nil, typeMismatch(TypeNumber, x)
			case floats != nil:
				return nil, nil, typeMismatch(TypeFloat, x)
			}
			return nil, nil, typeMismatch(TypeNumeric, x)
		}
	}
	return ints, floats, nil
}

func evalBools(args List, env *Environment) ([]bool, error) {
	result := make([]bool, len(args))
	for i, arg := range args {
		x, err := Eval(arg, env)
		if err != nil {
			return nil, err
		}
		b, ok := x.(bool)
		if !ok {
			return nil, typeMismatch(TypeBool, x)
		}
		result[i] = b
	}
	return result, nil
}

// compare builds a comparison which holds if ok holds for every adjacent
// pair of arguments.
func compare(ok func(int) bool) func(List, *Environment) (Expr, error) {
	return func(args List, env *Environment) (Expr, error) {
		ints, floats, err := evalNumbers(args, env)
		if err != nil {
			return nil, err
		}
		if floats != nil {
			for i := 1; i < len(floats); i++ {
				c := 0
				if floats[i-1] < floats[i] {
					c = -1
				} else if floats[i-1] > floats[i] {
					c = 1
				} else if floats[i-1] != floats[i] { // NaN
					return false, nil
				}
				if !ok(c) {
					return false, nil
				}
			}
			return true, nil
		}
		for i := 1; i < len(ints); i++ {
			if !ok(ints[i-1].Cmp(ints[i])) {
				return false, nil
			}
		}
		return true, nil
	}
}

// Equal reports whether two expressions are structurally equal.
// Procedures, lambdas and macros are equal only to themselves.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case goarith.Number:
		y, ok := b.(goarith.Number)
		return ok && x.Cmp(y) == 0
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x == y
	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x == y
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && x == y
	case *Macro:
		y, ok := b.(*Macro)
		return ok && x == y
	}
	return false
}
