package gandalf

// An Env is one scope in the chained environment. Scopes form a tree rooted
// at the interpreter's global environment.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates a scope with the given parent. A nil parent makes a root.
func NewEnv(parent *Env) *Env {
	return &Env{vars: map[string]Value{}, parent: parent}
}

// Get looks name up along the parent chain. Absence at the root is a runtime
// error naming the identifier exactly as written.
func (e *Env) Get(name string) (Value, error) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, nil
		}
	}
	return nil, runtimeErrorf("Unknown name: %s", name)
}

// Declare binds name in this scope, shadowing any outer binding.
func (e *Env) Declare(name string, v Value) {
	e.vars[name] = v
}

// Assign walks the chain to the nearest scope that already defines name and
// mutates it there. If no scope defines it, the binding is created at the
// root, giving undeclared names global-by-default semantics.
func (e *Env) Assign(name string, v Value) {
	root := e
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return
		}
		root = s
	}
	root.vars[name] = v
}
