package gandalf

// A builtinFn implements a named callable available to every script. User
// spells with the same name shadow these.
type builtinFn func(vm *VM, args []Value) (Value, error)

var builtins = map[string]builtinFn{
	// Lore-flavored reporters, routed through the VM's context state.
	"palantir": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("palantir(x) expects exactly 1 argument")
		}
		return vm.palantir(args[0]), nil
	},
	"vision": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("vision(x) expects exactly 1 argument")
		}
		return vm.vision(args[0]), nil
	},
	"stamina": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("stamina(x) expects exactly 1 argument")
		}
		return vm.stamina(args[0]), nil
	},
	"craft": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("craft(x) expects exactly 1 argument")
		}
		return vm.craft(args[0]), nil
	},
	"spellcraft": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return nil, runtimeErrorf("spellcraft() expects 0 arguments")
		}
		return vm.spellcraft(), nil
	},
	"inventory": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return nil, runtimeErrorf("inventory() expects 0 arguments")
		}
		return vm.inventory(), nil
	},
	"power": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return nil, runtimeErrorf("power() expects 0 arguments")
		}
		return vm.power(), nil
	},
	"corruption": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return nil, runtimeErrorf("corruption() expects 0 arguments")
		}
		return vm.corruption(), nil
	},

	// Collection operations.
	"length": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("length(x) expects 1 argument")
		}
		switch x := args[0].(type) {
		case string:
			return int64(len([]rune(x))), nil
		case *List:
			return int64(len(x.Items)), nil
		case *Map:
			return int64(x.Len()), nil
		}
		return nil, runtimeErrorf("length(x) not supported for %s", typeName(args[0]))
	},
	"push": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, runtimeErrorf("push(list, item) expects 2 arguments")
		}
		xs, ok := args[0].(*List)
		if !ok {
			return nil, runtimeErrorf("push(list, item) expects a list")
		}
		xs.Items = append(xs.Items, args[1])
		return xs, nil
	},
	"pop": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("pop(list) expects 1 argument")
		}
		xs, ok := args[0].(*List)
		if !ok {
			return nil, runtimeErrorf("pop(list) expects a list")
		}
		if len(xs.Items) == 0 {
			return nil, runtimeErrorf("pop(list) on empty list")
		}
		v := xs.Items[len(xs.Items)-1]
		xs.Items = xs.Items[:len(xs.Items)-1]
		return v, nil
	},
	"get": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, runtimeErrorf("get(map, key) expects 2 arguments")
		}
		m, ok := args[0].(*Map)
		if !ok {
			return nil, runtimeErrorf("get(map, key) expects a map")
		}
		v, _, err := m.Get(args[1])
		if err != nil {
			return nil, err
		}
		return v, nil
	},
	"put": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 3 {
			return nil, runtimeErrorf("put(map, key, value) expects 3 arguments")
		}
		m, ok := args[0].(*Map)
		if !ok {
			return nil, runtimeErrorf("put(map, key, value) expects a map")
		}
		if err := m.Put(args[1], args[2]); err != nil {
			return nil, err
		}
		return m, nil
	},
	"has": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, runtimeErrorf("has(map, key) expects 2 arguments")
		}
		m, ok := args[0].(*Map)
		if !ok {
			return nil, runtimeErrorf("has(map, key) expects a map")
		}
		_, found, err := m.Get(args[1])
		if err != nil {
			return nil, err
		}
		return found, nil
	},
	"keys": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("keys(map) expects 1 argument")
		}
		m, ok := args[0].(*Map)
		if !ok {
			return nil, runtimeErrorf("keys(map) expects a map")
		}
		return &List{Items: m.SortedKeys()}, nil
	},
	"values": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("values(map) expects 1 argument")
		}
		m, ok := args[0].(*Map)
		if !ok {
			return nil, runtimeErrorf("values(map) expects a map")
		}
		keys := m.SortedKeys()
		items := make([]Value, len(keys))
		for i, k := range keys {
			items[i], _, _ = m.Get(k)
		}
		return &List{Items: items}, nil
	},

	// The old favorites.
	"ring":     ringName,
	"precious": ringName,
	"mellon": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return nil, runtimeErrorf("Builtin 'mellon' called with wrong arguments: expects 0 arguments")
		}
		return "mellon", nil
	},
	"gandalf": func(vm *VM, args []Value) (Value, error) {
		name := Value("the Grey")
		switch len(args) {
		case 0:
		case 1:
			name = args[0]
		default:
			return nil, runtimeErrorf("Builtin 'gandalf' called with wrong arguments: expects at most 1 argument")
		}
		return "A wizard is never late, nor is he early. He arrives precisely when he means to. (" + FormatValue(name) + ")", nil
	},
	"you_shall_not_pass": func(vm *VM, args []Value) (Value, error) {
		if len(args) != 0 {
			return nil, runtimeErrorf("Builtin 'you_shall_not_pass' called with wrong arguments: expects 0 arguments")
		}
		return "You shall not pass!", nil
	},
}

func ringName(vm *VM, args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, runtimeErrorf("Builtin 'ring' called with wrong arguments: expects 0 arguments")
	}
	return "One Ring", nil
}
