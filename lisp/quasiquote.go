package lisp

// Quasiquote expands a template: (unquote sym) is replaced by the value
// of sym and (splice-unquote sym) by the elements of the list sym is bound
// to. Anything else is kept as is. Nested quasiquotes are not tracked;
// their unquotes are processed like any other.
func Quasiquote(template Expr, env *Environment) (Expr, error) {
	l, ok := template.(List)
	if !ok {
		return template, nil
	}
	// A template which is itself an unquote is expanded as a one-element
	// frame; a spliced one yields the spliced list.
	if op, _, ok := unquoteForm(l); ok {
		results, err := quasiquoteList(List{l}, env)
		if err != nil {
			return nil, err
		}
		if op == symUnquote {
			return results[0], nil
		}
		return results, nil
	}
	return quasiquoteList(l, env)
}

// quasiquoteList pushes the expanded elements in reverse order and
// reverses the result once at the end.
func quasiquoteList(l List, env *Environment) (List, error) {
	results := make(List, 0, len(l))
	for i := len(l) - 1; i >= 0; i-- {
		element, ok := l[i].(List)
		if !ok {
			results = append(results, l[i])
			continue
		}
		op, key, isUnquote := unquoteForm(element)
		if !isUnquote {
			expanded, err := quasiquoteList(element, env)
			if err != nil {
				return nil, err
			}
			results = append(results, expanded)
			continue
		}
		if len(element) > 2 {
			return nil, arity()
		}
		switch op {
		case symUnquote:
			if val, ok := env.LookFor(key); ok {
				results = append(results, val)
			} else {
				results = append(results, element)
			}
		case symSpliceUnquote:
			val, ok := env.Local(key)
			if !ok {
				return nil, symbolNotFound(key)
			}
			spliced, ok := val.(List)
			if !ok {
				return nil, typeMismatch(TypeList, val)
			}
			for j := len(spliced) - 1; j >= 0; j-- {
				results = append(results, spliced[j])
			}
		}
	}
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

// unquoteForm matches (unquote sym ...) and (splice-unquote sym ...).
func unquoteForm(l List) (op, key *Symbol, ok bool) {
	if len(l) < 2 {
		return nil, nil, false
	}
	op, ok = l[0].(*Symbol)
	if !ok || (op != symUnquote && op != symSpliceUnquote) {
		return nil, nil, false
	}
	key, ok = l[1].(*Symbol)
	if !ok {
		return nil, nil, false
	}
	return op, key, true
}
