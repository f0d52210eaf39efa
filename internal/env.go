package internal

// Environment is one frame of the lexical scope chain: a local binding
// table plus an optional enclosing frame.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment creates a root environment with no enclosing frame.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// newEnclosedEnvironment creates the per-call child frame; outer is the
// function's captured definition-time environment, not the caller's.
func newEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// get walks outward until the name is found or the chain is exhausted.
func (e *Environment) get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.get(name)
	}
	return obj, ok
}

// set always writes the local frame, so an inner binding shadows rather
// than mutates an outer one of the same name.
func (e *Environment) set(name string, val Object) Object {
	e.store[name] = val
	return val
}
