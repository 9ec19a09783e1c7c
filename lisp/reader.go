package lisp

import (
	"io"
	"math/big"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/nukata/goarith"
)

// punct represents a punctuation token. punct('@') stands for ",@".
type punct rune

var prefixes = map[punct]*Symbol{
	'\'': symQuote,
	'`':  symQuasiquote,
	',':  symUnquote,
	'@':  symSpliceUnquote,
}

func tryToReadNumber(s string) (Expr, bool) {
	digits := s
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if digits == "" {
		return nil, false
	}
	if !unicode.IsDigit(rune(digits[0])) &&
		!(digits[0] == '.' && len(digits) > 1 && unicode.IsDigit(rune(digits[1]))) {
		return nil, false
	}
	z := new(big.Int)
	if _, ok := z.SetString(s, 10); ok {
		if z.IsInt64() {
			return goarith.AsNumber(z.Int64()), true
		}
		return goarith.AsNumber(z), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}

// SplitIntoTokens splits a source text into tokens.
func SplitIntoTokens(src io.Reader) ([]Expr, error) {
	result := make([]Expr, 0, 100)
	var scanErr error
	var scn scanner.Scanner
	scn.Init(src)
	scn.Mode = scanner.ScanIdents | scanner.ScanStrings
	scn.IsIdentRune = func(ch rune, i int) bool {
		return unicode.IsPrint(ch) && ch != ' ' && ch != ';' &&
			ch != '(' && ch != ')' && ch != '\'' && ch != '"' &&
			ch != '`' && ch != ','
	}
	scn.Error = func(s *scanner.Scanner, msg string) {
		if scanErr == nil {
			scanErr = &SyntaxError{Pos: s.Position.String(), Msg: msg}
		}
	}
	scn.Whitespace ^= 1 << '\n' // Don't skip new lines.
	scn.Whitespace |= 1 << '\f'
	for tok := scn.Scan(); tok != scanner.EOF; tok = scn.Scan() {
		if scanErr != nil {
			return nil, scanErr
		}
		switch tok {
		case ';': // Skip ;-comment
			for ch := scn.Peek(); ch != '\n' && ch != scanner.EOF; ch = scn.Peek() {
				scn.Next()
			}
		case '\n': // Skip
		case '(', ')', '\'', '`':
			result = append(result, punct(tok))
		case ',':
			if scn.Peek() == '@' {
				scn.Next()
				result = append(result, punct('@'))
			} else {
				result = append(result, punct(','))
			}
		case scanner.String:
			text, err := strconv.Unquote(scn.TokenText())
			if err != nil {
				return nil, &SyntaxError{Pos: scn.Position.String(), Msg: err.Error()}
			}
			result = append(result, text)
		case scanner.Ident:
			text := scn.TokenText()
			if text == "true" {
				result = append(result, true)
			} else if text == "false" {
				result = append(result, false)
			} else if n, ok := tryToReadNumber(text); ok {
				result = append(result, n)
			} else {
				result = append(result, Intern(text))
			}
		default:
			return nil, &SyntaxError{Pos: scn.Position.String(),
				Msg: "illegal char " + strconv.QuoteRune(tok)}
		}
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return result, nil
}

// ReadFromTokens reads an expression from tokens.
// tokens will be left with the rest of tokens, if any.
func ReadFromTokens(tokens *[]Expr) (Expr, error) {
	if len(*tokens) == 0 {
		return nil, ErrIncomplete
	}
	token := (*tokens)[0]
	*tokens = (*tokens)[1:]
	switch token {
	case punct('('):
		l := List{}
		for {
			if len(*tokens) == 0 {
				return nil, ErrIncomplete
			}
			if (*tokens)[0] == punct(')') {
				*tokens = (*tokens)[1:]
				return l, nil
			}
			e, err := ReadFromTokens(tokens)
			if err != nil {
				return nil, err
			}
			l = append(l, e)
		}
	case punct(')'):
		return nil, &SyntaxError{Msg: "unexpected )"}
	}
	if p, ok := token.(punct); ok {
		e, err := ReadFromTokens(tokens)
		if err != nil {
			return nil, err
		}
		return List{prefixes[p], e}, nil // 'e => (quote e)
	}
	return token, nil
}

// Read reads every expression from r.
func Read(r io.Reader) ([]Expr, error) {
	tokens, err := SplitIntoTokens(r)
	if err != nil {
		return nil, err
	}
	var result []Expr
	for len(tokens) != 0 {
		x, err := ReadFromTokens(&tokens)
		if err != nil {
			return nil, err
		}
		result = append(result, x)
	}
	return result, nil
}

// ReadOne reads exactly one expression from r.
func ReadOne(r io.Reader) (Expr, error) {
	forms, err := Read(r)
	if err != nil {
		return nil, err
	}
	switch len(forms) {
	case 0:
		return nil, ErrIncomplete
	case 1:
		return forms[0], nil
	}
	return nil, &SyntaxError{Msg: "unexpected " + Stringify(forms[1], true) + " after expression"}
}
