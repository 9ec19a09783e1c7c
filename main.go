// A little Lisp in Go with macros and quasiquote templates.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/nukata/little-lisp-in-go/lisp"
)

var (
	configPath     = flag.String("config", "", "path to a YAML config file (default ~/.little-lisp.yaml)")
	logPath        = flag.String("log", "", "write a debug log, including macro expansions, to this file")
	expansionLimit = flag.Int("expansion-limit", -1, "maximum macro expansions per form; 0 means no limit")
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: little-lisp [flags] [file [-]]")
	fmt.Fprintln(os.Stderr, "Loads file if given, then starts a REPL if no file or \"-\" follows it.")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	os.Exit(run(flag.Args()))
}

func run(args []string) int {
	path, required := *configPath, true
	if path == "" {
		path, required = DefaultConfigPath(), false
	}
	cfg, err := LoadConfig(path, required)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *expansionLimit >= 0 {
		cfg.ExpansionLimit = *expansionLimit
	}

	logger, closeLog, err := openLogger(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closeLog()
	logger.Printf("config %s: %+v", path, cfg)

	var in lisp.LineReader
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		state := newLinerReader(cfg.HistoryFile)
		defer state.Close()
		in = state
	} else {
		in = lisp.NewLineReader(os.Stdin, os.Stdout)
	}

	opts := lisp.Options{ExpansionLimit: cfg.ExpansionLimit, In: in, Out: os.Stdout, Err: os.Stderr}
	if *logPath != "" {
		opts.Logger = logger
	}
	env := lisp.NewDefaultEnvironment(opts)

	for _, file := range cfg.Prelude {
		if err := loadFile(file, env, logger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if len(args) >= 1 {
		if err := loadFile(args[0], env, logger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if len(args) < 2 || args[1] != "-" {
			return 0
		}
	}
	prompt1, prompt2 := cfg.Prompt, cfg.ContinuationPrompt
	if !interactive {
		prompt1, prompt2 = "", ""
	}
	ReadEvalPrintLoop(in, os.Stdout, env, prompt1, prompt2)
	return 0
}

func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, fmt.Sprintf("[%d] ", os.Getpid()), log.LstdFlags|log.Lmicroseconds),
		func() { f.Close() }, nil
}

// loadFile loads a source code from a file.
func loadFile(fileName string, env *lisp.Environment, logger *log.Logger) error {
	logger.Printf("loading %s", fileName)
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := lisp.Load(file, env); err != nil {
		return fmt.Errorf("%s: %w", fileName, err)
	}
	return nil
}

//----------------------------------------------------------------------

// linerReader reads lines with line editing and keeps a history file.
type linerReader struct {
	*liner.State
	historyFile string
}

func newLinerReader(historyFile string) *linerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}
	return &linerReader{state, historyFile}
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	line, err := r.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		r.AppendHistory(line)
	}
	return line, nil
}

func (r *linerReader) Close() error {
	if r.historyFile != "" {
		if f, err := os.Create(r.historyFile); err == nil {
			r.WriteHistory(f)
			f.Close()
		}
	}
	return r.State.Close()
}

//----------------------------------------------------------------------

// readForms reads lines until they make up whole expressions.
// It returns io.EOF when the input runs out before any expression.
func readForms(in lisp.LineReader, prompt1, prompt2 string) ([]lisp.Expr, error) {
	var src strings.Builder
	prompt := prompt1
	for {
		line, err := in.ReadLine(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) && strings.TrimSpace(src.String()) != "" {
				// Input ended inside an expression.
				return nil, lisp.ErrIncomplete
			}
			return nil, err
		}
		src.WriteString(line)
		src.WriteByte('\n')
		forms, err := lisp.Read(strings.NewReader(src.String()))
		if errors.Is(err, lisp.ErrIncomplete) {
			prompt = prompt2
			continue
		}
		return forms, err
	}
}

// ReadEvalPrintLoop repeats read-eval-print until End-Of-File.
func ReadEvalPrintLoop(in lisp.LineReader, out io.Writer, env *lisp.Environment, prompt1, prompt2 string) {
	for {
		forms, err := readForms(in, prompt1, prompt2)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "Goodby")
			return
		}
		if err != nil {
			fmt.Fprintln(out, err)
			if errors.Is(err, lisp.ErrIncomplete) {
				return
			}
			continue
		}
		if len(forms) == 0 {
			continue
		}
		result, err := lisp.EvaluateSequence(forms, env)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, lisp.Stringify(result, true))
	}
}
