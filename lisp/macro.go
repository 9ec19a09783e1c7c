package lisp

// ExpandOnce expands x once if it is a list headed by a symbol bound to a
// macro. The macro's parameters are bound to the unevaluated arguments and
// its body is evaluated in that scope; the result replaces x. If x is not a
// macro call, it is returned unchanged along with false.
func ExpandOnce(x Expr, env *Environment) (Expr, bool, error) {
	l, ok := x.(List)
	if !ok || len(l) == 0 {
		return x, false, nil
	}
	sym, ok := l[0].(*Symbol)
	if !ok {
		return x, false, nil
	}
	val, ok := env.LookFor(sym)
	if !ok {
		return x, false, nil
	}
	m, ok := val.(*Macro)
	if !ok {
		return x, false, nil
	}
	scope, err := bindParams(m.Params, l[1:], env)
	if err != nil {
		return nil, false, err
	}
	expansion, err := Eval(m.Body, scope)
	if err != nil {
		return nil, false, err
	}
	if logger := env.opts.Logger; logger != nil {
		logger.Printf("expand %s => %s", Stringify(x, true), Stringify(expansion, true))
	}
	return expansion, true, nil
}

// ExpandAll expands every macro call in x, repeating at each position until
// no macro head is left there, then descending into every element. The
// number of expansions is bounded by Options.ExpansionLimit when it is
// positive.
func ExpandAll(x Expr, env *Environment) (Expr, error) {
	e := expander{env: env, budget: env.opts.ExpansionLimit}
	return e.expand(x)
}

type expander struct {
	env    *Environment
	budget int
	count  int
}

func (e *expander) expand(x Expr) (Expr, error) {
	for {
		expansion, expanded, err := ExpandOnce(x, e.env)
		if err != nil {
			return nil, err
		}
		if !expanded {
			break
		}
		e.count++
		if e.budget > 0 && e.count > e.budget {
			return nil, &Error{Kind: ExpansionLimit}
		}
		x = expansion
	}
	l, ok := x.(List)
	if !ok || len(l) == 0 {
		return x, nil
	}
	result := make(List, len(l))
	for i, element := range l {
		expanded, err := e.expand(element)
		if err != nil {
			return nil, err
		}
		result[i] = expanded
	}
	return result, nil
}
