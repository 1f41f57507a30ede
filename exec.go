package gandalf

import "fmt"

// execBlock runs statements in order, stopping early when one raises an
// error or signals a return.
func (vm *VM) execBlock(env *Env, body []Stmt) (Value, Stop, error) {
	for _, s := range body {
		v, stop, err := vm.execStmt(env, s)
		if err != nil {
			return nil, NoStop, err
		}
		if stop != NoStop {
			return v, stop, nil
		}
	}
	return nil, NoStop, nil
}

func (vm *VM) execStmt(env *Env, s Stmt) (Value, Stop, error) {
	switch s := s.(type) {
	case *Inscribe:
		v, err := vm.evalExpr(env, s.Expr)
		if err != nil {
			return nil, NoStop, err
		}
		env.Assign(s.Name, v)
		return nil, NoStop, nil

	case *Proclaim:
		v, err := vm.evalExpr(env, s.Expr)
		if err != nil {
			return nil, NoStop, err
		}
		vm.regionPrint(v)
		return nil, NoStop, nil

	case *ExprStmt:
		// Evaluated for its effects; the value is discarded.
		if _, err := vm.evalExpr(env, s.Expr); err != nil {
			return nil, NoStop, err
		}
		return nil, NoStop, nil

	case *If:
		cond, err := vm.evalExpr(env, s.Cond)
		if err != nil {
			return nil, NoStop, err
		}
		if truthy(cond) {
			return vm.execBlock(env, s.Then)
		}
		return vm.execBlock(env, s.Else)

	case *While:
		for {
			cond, err := vm.evalExpr(env, s.Cond)
			if err != nil {
				return nil, NoStop, err
			}
			if !truthy(cond) {
				return nil, NoStop, nil
			}
			v, stop, err := vm.execBlock(env, s.Body)
			if err != nil {
				return nil, NoStop, err
			}
			if stop != NoStop {
				return v, stop, nil
			}
		}

	case *SpellDef:
		// Redefinition silently replaces the old body.
		vm.spells[s.Name] = &Spell{Params: s.Params, Body: s.Body}
		return nil, NoStop, nil

	case *Return:
		var v Value
		if s.Expr != nil {
			var err error
			v, err = vm.evalExpr(env, s.Expr)
			if err != nil {
				return nil, NoStop, err
			}
		}
		return v, ReturnStop, nil

	case *InRegion:
		return vm.execInRegion(env, s)

	case *BePersona:
		if err := vm.setPersona(s.Persona); err != nil {
			return nil, NoStop, err
		}
		return nil, NoStop, nil

	case *ArtifactStmt:
		if err := vm.artifactAction(s.Verb, s.Artifact); err != nil {
			return nil, NoStop, err
		}
		return nil, NoStop, nil
	}
	panic(fmt.Sprintf("gandalf: unknown statement node %T", s))
}

// execInRegion runs the block with the region pushed. The pop is deferred so
// the region unwinds even when the block errors or returns.
func (vm *VM) execInRegion(env *Env, s *InRegion) (v Value, stop Stop, err error) {
	vm.pushRegion(s.Region)
	defer vm.popRegion()
	return vm.execBlock(env, s.Body)
}
