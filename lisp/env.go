package lisp

// Environment represents a scope: a table of bindings and a link to
// the enclosing environment.
type Environment struct {
	table map[*Symbol]Expr
	outer *Environment
	opts  *Options
}

// NewEnvironment returns an empty top-level environment.
func NewEnvironment(opts Options) *Environment {
	opts.fill()
	return &Environment{table: make(map[*Symbol]Expr), opts: &opts}
}

// Child returns a new empty environment enclosed by env.
func (env *Environment) Child() *Environment {
	return &Environment{table: make(map[*Symbol]Expr), outer: env, opts: env.opts}
}

// LookFor searches the environment and its enclosing ones for a symbol.
// The innermost binding wins.
func (env *Environment) LookFor(key *Symbol) (Expr, bool) {
	for env != nil {
		if val, ok := env.table[key]; ok {
			return val, true
		}
		env = env.outer
	}
	return nil, false
}

// Local looks up a symbol in the table of env only.
func (env *Environment) Local(key *Symbol) (Expr, bool) {
	val, ok := env.table[key]
	return val, ok
}

// Define binds a symbol in env, replacing any binding env already has.
// Enclosing environments are never touched.
func (env *Environment) Define(key *Symbol, val Expr) {
	env.table[key] = val
}

// Outer returns the enclosing environment, or nil for a top-level one.
func (env *Environment) Outer() *Environment {
	return env.outer
}
