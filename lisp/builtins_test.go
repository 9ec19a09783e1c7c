package lisp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArithmetic(t *testing.T) {
	runEvalTests(t, []evalTest{
		{name: "sum", src: "(+ 1 2 3)", want: "6"},
		{name: "empty sum", src: "(+)", want: "0"},
		{name: "negation", src: "(- 5)", want: "-5"},
		{name: "difference", src: "(- 10 1 2)", want: "7"},
		{name: "product", src: "(* 2 3 4)", want: "24"},
		{name: "empty product", src: "(*)", want: "1"},
		{name: "big product", src: "(* 4294967296 4294967296)", want: "18446744073709551616"},
		{name: "integer quotient", src: "(/ 7 2)", want: "3"},
		{name: "single divisor", src: "(/ 7)", want: "7"},
		{name: "quotient leaving int32", src: "(/ -2147483648 -1)", want: "2147483648"},
		{name: "quotient leaving int64", src: "(/ -9223372036854775808 -1)",
			want: "9223372036854775808"},
		{name: "negative quotient", src: "(/ 9 -1 -3)", want: "3"},
		{name: "remainder of int64 by -1", src: "(rem -9223372036854775808 -1)", want: "0"},
		{name: "remainder", src: "(rem 7 3)", want: "1"},
		{name: "float sum", src: "(+ 1.5 2.5)", want: "4.0"},
		{name: "float negation", src: "(- 1.5)", want: "-1.5"},
		{name: "float quotient", src: "(/ 1.0 4.0)", want: "0.25"},
		{name: "float remainder", src: "(rem 7.5 2.0)", want: "1.5"},
		{name: "division by zero", src: "(/ 1 0)", wantErr: ErrDivideByZero},
		{name: "remainder by zero", src: "(rem 1 0)", wantErr: ErrDivideByZero},
		{name: "string operand", src: `(+ 1 "a")`, wantErr: ErrTypeMismatch},
		{name: "number then float", src: "(+ 1 2.0)", wantErr: ErrTypeMismatch},
		{name: "float then number", src: "(* 1.0 2)", wantErr: ErrTypeMismatch},
		{name: "non-numeric first", src: `(- "a" 1)`, wantErr: ErrTypeMismatch},
		{name: "empty difference", src: "(-)", wantErr: ErrArity},
		{name: "empty quotient", src: "(/)", wantErr: ErrArity},
		{name: "remainder arity", src: "(rem 1)", wantErr: ErrArity},
		{name: "argument error", src: "(+ 1 nowhere)", wantErr: ErrSymbolNotFound},
	})
}

func TestArithmetic_ExpectedType(t *testing.T) {
	tests := []struct {
		src  string
		want Type
	}{
		{`(+ 1 "a")`, TypeNumber},
		{"(+ 1 2.0)", TypeNumber},
		{"(+ 1.0 2)", TypeFloat},
		{`(+ "a" 1)`, TypeNumeric},
		{"(< 1 true)", TypeNumber},
	}
	for _, tc := range tests {
		env, _ := newTestEnv("")
		_, err := EvalString(tc.src, env)
		e, ok := err.(*Error)
		if !ok || e.Kind != TypeMismatch {
			t.Errorf("%s -> %v, want type mismatch", tc.src, err)
			continue
		}
		if e.Expected != tc.want {
			t.Errorf("%s -> expected %v, want %v", tc.src, e.Expected, tc.want)
		}
	}
}

func TestComparison(t *testing.T) {
	runEvalTests(t, []evalTest{
		{name: "ascending", src: "(< 1 2 3)", want: "true"},
		{name: "not ascending", src: "(< 1 3 2)", want: "false"},
		{name: "equal", src: "(= 2 2 2)", want: "true"},
		{name: "not equal", src: "(= 2 3)", want: "false"},
		{name: "descending", src: "(> 3 2 1)", want: "true"},
		{name: "non-increasing", src: "(>= 3 3 1)", want: "true"},
		{name: "non-decreasing", src: "(<= 1 1 0)", want: "false"},
		{name: "floats", src: "(< 1.0 1.5)", want: "true"},
		{name: "single argument", src: "(< 1)", want: "true"},
		{name: "no arguments", src: "(=)", want: "true"},
		{name: "mixed", src: "(< 1.0 2)", wantErr: ErrTypeMismatch},
	})
}

func TestLogic(t *testing.T) {
	runEvalTests(t, []evalTest{
		{name: "not false", src: "(not false)", want: "true"},
		{name: "not true", src: "(not true)", want: "false"},
		{name: "not non-bool", src: "(not 1)", want: "false"},
		{name: "not arity", src: "(not)", wantErr: ErrArity},
		{name: "and", src: "(and true true)", want: "true"},
		{name: "and false", src: "(and true false)", want: "false"},
		{name: "empty and", src: "(and)", want: "true"},
		{name: "and non-bool", src: "(and true 1)", wantErr: ErrTypeMismatch},
		{name: "or", src: "(or false true)", want: "true"},
		{name: "or false", src: "(or false false)", want: "false"},
	})
}

func TestLists(t *testing.T) {
	runEvalTests(t, []evalTest{
		{name: "list", src: "(list 1 (+ 1 1))", want: "(1 2)"},
		{name: "empty list", src: "(list)", want: "()"},
		{name: "car", src: "(car '(1 2))", want: "1"},
		{name: "car of empty", src: "(car '())", wantErr: ErrMalformedList},
		{name: "car of non-list", src: "(car 5)", wantErr: ErrTypeMismatch},
		{name: "cdr", src: "(cdr '(1 2))", want: "(2)"},
		{name: "cdr of empty", src: "(cdr '())", want: "()"},
		{name: "cons", src: "(cons 0 '(1))", want: "(0 1)"},
		{name: "cons onto non-list", src: "(cons 0 1)", wantErr: ErrTypeMismatch},
		{name: "null", src: "(null? '())", want: "true"},
		{name: "not null", src: "(null? '(1))", want: "false"},
		{name: "symbol", src: "(symbol? 'a)", want: "true"},
		{name: "not symbol", src: `(symbol? "a")`, want: "false"},
		{name: "eq lists", src: "(eq? '(1 2) (list 1 2))", want: "true"},
		{name: "eq numbers and floats", src: "(eq? 1 1.0)", want: "false"},
		{name: "eq symbols", src: "(eq? 'a 'a)", want: "true"},
	})
}

func TestCons_DoesNotShareArgument(t *testing.T) {
	runEvalTests(t, []evalTest{
		{name: "argument untouched",
			src:  "(def l '(1 2)) (def m (cons 0 (cdr l))) (list l m)",
			want: "((1 2) (0 2))"},
	})
}

func TestIO(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		input   string
		want    string
		wantOut string
		wantDbg string
	}{
		{name: "print", src: `(print "hi")`, want: `"hi"`, wantOut: "hi"},
		{name: "println", src: "(println (+ 1 2))", want: "3", wantOut: "3\n"},
		{name: "dbg", src: "(dbg (+ 1 2))", want: "3", wantDbg: "[dbg] (+ 1 2) = 3\n"},
		{name: "dbg with output", src: "(dbg (println 1))", want: "1",
			wantOut: "1\n", wantDbg: "[dbg] (println 1) = 1\n"},
		{name: "readline", src: `(readline "? ")`, input: "hello\nworld\n",
			want: `"hello"`, wantOut: "? "},
		{name: "readline without prompt", src: "(readline)", input: "hello",
			want: `"hello"`, wantOut: ""},
		{name: "readline at end of input", src: "(readline)", want: `""`, wantOut: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, out := newTestEnv(tc.input)
			got, err := EvalString(tc.src, env)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, Stringify(got, true)); diff != "" {
				t.Errorf("result (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantOut, out.String()); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTime(t *testing.T) {
	env, out := newTestEnv("")
	got, err := EvalString("(time (+ 1 2))", env)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("3", Stringify(got, true)); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(out.String(), "Eval time for expr: (+ 1 2) = ") {
		t.Errorf("output %q lacks timing line", out.String())
	}
}

func TestReadlineTypeMismatch(t *testing.T) {
	runEvalTests(t, []evalTest{
		{name: "prompt not a string", src: "(readline 1)", wantErr: ErrTypeMismatch},
		{name: "arity", src: `(readline "a" "b")`, wantErr: ErrArity},
	})
}
