package gandalf

import "fmt"

// evalExpr computes the value of an expression in the given environment.
func (vm *VM) evalExpr(env *Env, e Expr) (Value, error) {
	switch e := e.(type) {
	case *IntLit:
		return e.Value, nil
	case *FloatLit:
		return e.Value, nil
	case *StringLit:
		return e.Value, nil
	case *BoolLit:
		return e.Value, nil
	case *NilLit:
		return nil, nil
	case *Var:
		return env.Get(e.Name)
	case *UnaryNeg:
		return vm.evalNeg(env, e)
	case *BinOp:
		return vm.evalBinOp(env, e)
	case *ListLit:
		return vm.evalListLit(env, e)
	case *MapLit:
		return vm.evalMapLit(env, e)
	case *Index:
		return vm.evalIndex(env, e)
	case *Call:
		return vm.evalCall(env, e)
	case *Invoke:
		return vm.evalInvoke(env, e)
	}
	panic(fmt.Sprintf("gandalf: unknown expression node %T", e))
}

func (vm *VM) evalNeg(env *Env, e *UnaryNeg) (Value, error) {
	v, err := vm.evalExpr(env, e.Expr)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case int64:
		return -v, nil
	case float64:
		return -v, nil
	}
	return nil, runtimeErrorf("Unary '-' expects number, got %s", typeName(v))
}

func (vm *VM) evalBinOp(env *Env, e *BinOp) (Value, error) {
	left, err := vm.evalExpr(env, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := vm.evalExpr(env, e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case plusToken:
		return evalAdd(left, right)
	case minusToken, starToken, slashToken:
		return evalArith(e.Op, left, right)
	case ltToken, gtToken, leToken, geToken:
		return evalCompare(e.Op, left, right)
	case eqToken:
		return valueEqual(left, right), nil
	case neToken:
		return !valueEqual(left, right), nil
	}
	panic(fmt.Sprintf("gandalf: unknown binary operator %v", e.Op))
}

// evalAdd handles '+': when either side is a string the other is rendered
// and concatenated; otherwise numeric addition or list concatenation into a
// fresh list.
func evalAdd(left, right Value) (Value, error) {
	_, ls := left.(string)
	_, rs := right.(string)
	if ls || rs {
		return FormatValue(left) + FormatValue(right), nil
	}
	if ll, ok := left.(*List); ok {
		if rl, ok := right.(*List); ok {
			items := make([]Value, 0, len(ll.Items)+len(rl.Items))
			items = append(items, ll.Items...)
			items = append(items, rl.Items...)
			return &List{Items: items}, nil
		}
	}
	if li, ok := left.(int64); ok {
		if ri, ok := right.(int64); ok {
			return li + ri, nil
		}
	}
	if isNumber(left) && isNumber(right) {
		return toFloat(left) + toFloat(right), nil
	}
	return nil, runtimeErrorf("Operator '+' expects numbers or strings (or list + list)")
}

func evalArith(op tokenKind, left, right Value) (Value, error) {
	if !isNumber(left) || !isNumber(right) {
		return nil, runtimeErrorf("Operator '%s' expects numbers", opSymbol(op))
	}
	switch op {
	case minusToken:
		if li, ok := left.(int64); ok {
			if ri, ok := right.(int64); ok {
				return li - ri, nil
			}
		}
		return toFloat(left) - toFloat(right), nil
	case starToken:
		if li, ok := left.(int64); ok {
			if ri, ok := right.(int64); ok {
				return li * ri, nil
			}
		}
		return toFloat(left) * toFloat(right), nil
	}
	// Division is always true division.
	r := toFloat(right)
	if r == 0 {
		return nil, runtimeErrorf("Division by zero")
	}
	return toFloat(left) / r, nil
}

func evalCompare(op tokenKind, left, right Value) (Value, error) {
	if !isNumber(left) || !isNumber(right) {
		return nil, runtimeErrorf("Cannot compare non-numbers with '%s'", opSymbol(op))
	}
	l, r := toFloat(left), toFloat(right)
	switch op {
	case ltToken:
		return l < r, nil
	case gtToken:
		return l > r, nil
	case leToken:
		return l <= r, nil
	}
	return l >= r, nil
}

func opSymbol(op tokenKind) string {
	switch op {
	case plusToken:
		return "+"
	case minusToken:
		return "-"
	case starToken:
		return "*"
	case slashToken:
		return "/"
	case ltToken:
		return "<"
	case gtToken:
		return ">"
	case leToken:
		return "<="
	case geToken:
		return ">="
	case eqToken:
		return "=="
	case neToken:
		return "!="
	}
	return op.String()
}

func (vm *VM) evalListLit(env *Env, e *ListLit) (Value, error) {
	items := make([]Value, 0, len(e.Items))
	for _, item := range e.Items {
		v, err := vm.evalExpr(env, item)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return &List{Items: items}, nil
}

func (vm *VM) evalMapLit(env *Env, e *MapLit) (Value, error) {
	m := NewMap()
	for _, entry := range e.Entries {
		k, err := vm.evalExpr(env, entry.Key)
		if err != nil {
			return nil, err
		}
		v, err := vm.evalExpr(env, entry.Value)
		if err != nil {
			return nil, err
		}
		if err := m.Put(k, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (vm *VM) evalIndex(env *Env, e *Index) (Value, error) {
	target, err := vm.evalExpr(env, e.Target)
	if err != nil {
		return nil, err
	}
	idx, err := vm.evalExpr(env, e.Index)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *Map:
		v, ok, err := t.Get(idx)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Absent keys read as nil, same as get(map, key).
			return nil, nil
		}
		return v, nil
	case *List:
		i, ok := idx.(int64)
		if !ok {
			return nil, runtimeErrorf("List index must be an integer")
		}
		if i < 0 || i >= int64(len(t.Items)) {
			return nil, runtimeErrorf("List index out of range")
		}
		return t.Items[i], nil
	case string:
		i, ok := idx.(int64)
		if !ok {
			return nil, runtimeErrorf("String index must be an integer")
		}
		runes := []rune(t)
		if i < 0 || i >= int64(len(runes)) {
			return nil, runtimeErrorf("String index out of range")
		}
		return string(runes[i]), nil
	}
	return nil, runtimeErrorf("Indexing not supported for %s", typeName(target))
}

// evalCall resolves a call by name: user spells shadow builtins, builtins
// cover the rest. Arguments evaluate left to right in the caller's scope.
func (vm *VM) evalCall(env *Env, e *Call) (Value, error) {
	if spell, ok := vm.spells[e.Name]; ok {
		// Arity is checked before arguments run, so a bad call has no
		// side effects.
		if len(e.Args) != len(spell.Params) {
			return nil, runtimeErrorf("Spell '%s' expects %d args, got %d", e.Name, len(spell.Params), len(e.Args))
		}
		args, err := vm.evalArgs(env, e.Args)
		if err != nil {
			return nil, err
		}
		return vm.callSpell(spell, args)
	}
	if fn, ok := builtins[e.Name]; ok {
		args, err := vm.evalArgs(env, e.Args)
		if err != nil {
			return nil, err
		}
		return fn(vm, args)
	}
	return nil, runtimeErrorf("Unknown spell: %s", e.Name)
}

func (vm *VM) evalArgs(env *Env, exprs []Expr) ([]Value, error) {
	args := make([]Value, 0, len(exprs))
	for _, arg := range exprs {
		v, err := vm.evalExpr(env, arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// callSpell runs a user spell body in a fresh scope whose parent is the
// global environment, so spells never see their caller's locals.
func (vm *VM) callSpell(spell *Spell, args []Value) (Value, error) {
	scope := NewEnv(vm.Global)
	for i, param := range spell.Params {
		scope.Declare(param, args[i])
	}
	v, stop, err := vm.execBlock(scope, spell.Body)
	if err != nil {
		return nil, err
	}
	if stop == ReturnStop {
		return v, nil
	}
	return nil, nil
}
