package lisp

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Options configures a top-level environment.
type Options struct {
	// ExpansionLimit bounds the number of macro expansions of a single
	// ExpandAll call. Zero means no limit.
	ExpansionLimit int
	// Logger receives a line for each macro expansion if not nil.
	Logger *log.Logger
	// In and Out are used by the I/O primitives.
	In  LineReader
	Out io.Writer
	// Err receives the output of dbg.
	Err io.Writer
}

func (o *Options) fill() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.In == nil {
		o.In = NewLineReader(os.Stdin, o.Out)
	}
}

// LineReader reads a line of input after showing a prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type scannerReader struct {
	lines *bufio.Scanner
	out   io.Writer
}

// NewLineReader returns a LineReader which reads lines from r and writes
// prompts to w.
func NewLineReader(r io.Reader, w io.Writer) LineReader {
	return &scannerReader{bufio.NewScanner(r), w}
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	if !s.lines.Scan() {
		if err := s.lines.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.lines.Text(), nil
}

//----------------------------------------------------------------------

// Evaluate expands the macros in x, then evaluates the result in env.
func Evaluate(x Expr, env *Environment) (Expr, error) {
	expanded, err := ExpandAll(x, env)
	if err != nil {
		return nil, err
	}
	return Eval(expanded, env)
}

// EvaluateSequence evaluates forms in order in env and returns the value
// of the last one. Definitions made by a form are visible to the later
// ones. It stops at the first error.
func EvaluateSequence(forms []Expr, env *Environment) (Expr, error) {
	if len(forms) == 0 {
		return nil, malformedList(List{})
	}
	var result Expr
	for _, form := range forms {
		var err error
		result, err = Evaluate(form, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// EvalString reads a single expression from src and evaluates it.
func EvalString(src string, env *Environment) (Expr, error) {
	x, err := ReadOne(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return Evaluate(x, env)
}

// EvalScript reads every expression in src, then evaluates them in order.
func EvalScript(src string, env *Environment) (Expr, error) {
	return Load(strings.NewReader(src), env)
}

// Load reads every expression from r, then evaluates them in order.
func Load(r io.Reader, env *Environment) (Expr, error) {
	forms, err := Read(r)
	if err != nil {
		return nil, err
	}
	return EvaluateSequence(forms, env)
}
