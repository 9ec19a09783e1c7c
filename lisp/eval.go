package lisp

// Eval evaluates an expression in an environment. Macros are not expanded;
// see Evaluate for the expand-then-evaluate entry point.
func Eval(x Expr, env *Environment) (Expr, error) {
	switch x := x.(type) {
	case *Symbol:
		if val, ok := env.LookFor(x); ok {
			return val, nil
		}
		return nil, symbolNotFound(x)
	case List:
		return evalList(x, env)
	default: // as a number, true, false, a string, a procedure etc.
		return x, nil
	}
}

func evalList(x List, env *Environment) (Expr, error) {
	if len(x) == 0 {
		return nil, malformedList(x)
	}
	head, args := x[0], x[1:]
	if sym, ok := head.(*Symbol); ok {
		if form, ok := specialForms[sym]; ok {
			return form(args, env)
		}
	}
	fun, err := Eval(head, env)
	if err != nil {
		return nil, err
	}
	switch fn := fun.(type) {
	case *Builtin:
		return fn.Fn(args, env)
	case *Lambda:
		evaluated, err := evalForms(args, env)
		if err != nil {
			return nil, err
		}
		scope, err := bindParams(fn.Params, evaluated, env)
		if err != nil {
			return nil, err
		}
		return Eval(fn.Body, scope)
	}
	return nil, malformedList(x)
}

// evalForms evaluates each form in env from left to right.
func evalForms(forms List, env *Environment) (List, error) {
	result := make(List, len(forms))
	for i, form := range forms {
		val, err := Eval(form, env)
		if err != nil {
			return nil, err
		}
		result[i] = val
	}
	return result, nil
}

// bindParams builds a child of env which binds params pairwise to args.
func bindParams(params Expr, args List, env *Environment) (*Environment, error) {
	keys, ok := params.(List)
	if !ok {
		return nil, typeMismatch(TypeList, params)
	}
	if len(keys) != len(args) {
		return nil, arity()
	}
	scope := env.Child()
	for i, key := range keys {
		sym, ok := key.(*Symbol)
		if !ok {
			return nil, typeMismatch(TypeSymbol, key)
		}
		scope.Define(sym, args[i])
	}
	return scope, nil
}
