package lisp

// specialForm receives the unevaluated arguments of the form.
type specialForm func(args List, env *Environment) (Expr, error)

var specialForms map[*Symbol]specialForm

func init() {
	specialForms = map[*Symbol]specialForm{
		symDef:        sfDef,
		symIf:         sfIf,
		symFn:         sfFn,
		symMacro:      sfMacro,
		symLet:        sfLet,
		symDo:         sfDo,
		symQuote:      sfQuote,
		symQuasiquote: sfQuasiquote,
	}
}

// (def sym e)
func sfDef(args List, env *Environment) (Expr, error) {
	if len(args) != 2 {
		return nil, arity()
	}
	sym, ok := args[0].(*Symbol)
	if !ok {
		return nil, typeMismatch(TypeSymbol, args[0])
	}
	val, err := Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	env.Define(sym, val)
	return sym, nil
}

// (if test then else)
func sfIf(args List, env *Environment) (Expr, error) {
	if len(args) != 3 {
		return nil, arity()
	}
	test, err := Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	b, ok := test.(bool)
	if !ok {
		return nil, typeMismatch(TypeBool, test)
	}
	if b {
		return Eval(args[1], env)
	}
	return Eval(args[2], env)
}

// (fn (param...) body)
func sfFn(args List, env *Environment) (Expr, error) {
	if len(args) != 2 {
		return nil, arity()
	}
	return &Lambda{Params: args[0], Body: args[1]}, nil
}

// (macro (param...) body)
func sfMacro(args List, env *Environment) (Expr, error) {
	if len(args) != 2 {
		return nil, arity()
	}
	return &Macro{Params: args[0], Body: args[1]}, nil
}

// (let (sym e ...) body)
func sfLet(args List, env *Environment) (Expr, error) {
	if len(args) != 2 {
		return nil, arity()
	}
	bindings, ok := args[0].(List)
	if !ok {
		return nil, typeMismatch(TypeList, args[0])
	}
	if len(bindings)%2 != 0 {
		return nil, arity()
	}
	scope := env.Child()
	for i := 0; i < len(bindings); i += 2 {
		sym, ok := bindings[i].(*Symbol)
		if !ok {
			return nil, typeMismatch(TypeSymbol, bindings[i])
		}
		val, err := Eval(bindings[i+1], scope)
		if err != nil {
			return nil, err
		}
		scope.Define(sym, val)
	}
	return Eval(args[1], scope)
}

// (do e...)
func sfDo(args List, env *Environment) (Expr, error) {
	if len(args) == 0 {
		return nil, arity()
	}
	scope := env.Child()
	last := len(args) - 1
	for _, form := range args[:last] {
		if _, err := Eval(form, scope); err != nil {
			return nil, err
		}
	}
	return Eval(args[last], scope)
}

// (quote e)
func sfQuote(args List, env *Environment) (Expr, error) {
	if len(args) != 1 {
		return nil, arity()
	}
	return args[0], nil
}

// (quasiquote e)
func sfQuasiquote(args List, env *Environment) (Expr, error) {
	if len(args) != 1 {
		return nil, arity()
	}
	return Quasiquote(args[0], env)
}
