package lisp

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"(a 'b `(c ,d ,@e))",
			[]string{"(a (quote b) (quasiquote (c (unquote d) (splice-unquote e))))"}},
		{"1 -12 +7 3.5 .5 1e3", []string{"1", "-12", "7", "3.5", "0.5", "1000.0"}},
		{"- + inf nan ... a-b", []string{"-", "+", "inf", "nan", "...", "a-b"}},
		{"123456789012345678901234567890", []string{"123456789012345678901234567890"}},
		{`"a\nb" "q\"q"`, []string{`"a\nb"`, `"q\"q"`}},
		{"true false", []string{"true", "false"}},
		{"; comment\n(a ; more\n b)\n", []string{"(a b)"}},
		{"()", []string{"()"}},
		{"", nil},
	}
	for _, tc := range tests {
		forms, err := Read(strings.NewReader(tc.src))
		if err != nil {
			t.Errorf("Read(%q) -> error %v", tc.src, err)
			continue
		}
		var got []string
		for _, x := range forms {
			got = append(got, Stringify(x, true))
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Read(%q) (-want +got):\n%s", tc.src, diff)
		}
	}
}

func TestRead_Types(t *testing.T) {
	forms, err := Read(strings.NewReader(`sym 1 1.0 true "s" (x)`))
	if err != nil {
		t.Fatal(err)
	}
	var got []Type
	for _, x := range forms {
		got = append(got, TypeOf(x))
	}
	want := []Type{TypeSymbol, TypeNumber, TypeFloat, TypeBool, TypeString, TypeList}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if forms[0] != Intern("sym") {
		t.Errorf("symbols are not interned")
	}
}

func TestRead_Errors(t *testing.T) {
	incomplete := []string{"(a", "(a (b)", "'", "`(a ,"}
	for _, src := range incomplete {
		if _, err := Read(strings.NewReader(src)); !errors.Is(err, ErrIncomplete) {
			t.Errorf("Read(%q) -> %v, want incomplete", src, err)
		}
	}
	malformed := []string{")", "(a))", `"unterminated`}
	for _, src := range malformed {
		var syntaxErr *SyntaxError
		if _, err := Read(strings.NewReader(src)); !errors.As(err, &syntaxErr) {
			t.Errorf("Read(%q) -> %v, want a syntax error", src, err)
		}
	}
}

func TestReadOne(t *testing.T) {
	x, err := ReadOne(strings.NewReader(" (a b) "))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("(a b)", Stringify(x, true)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := ReadOne(strings.NewReader("")); !errors.Is(err, ErrIncomplete) {
		t.Errorf("ReadOne of nothing -> %v, want incomplete", err)
	}
	var syntaxErr *SyntaxError
	if _, err := ReadOne(strings.NewReader("a b")); !errors.As(err, &syntaxErr) {
		t.Errorf("ReadOne of two forms -> %v, want a syntax error", err)
	}
}
