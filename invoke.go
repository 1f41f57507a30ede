package gandalf

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/variadico/lctime"
)

func oneNumber(target string, args []Value) (float64, error) {
	if len(args) != 1 || !isNumber(args[0]) {
		return 0, runtimeErrorf("%s expects 1 number", target)
	}
	return toFloat(args[0]), nil
}

// safeInvoke is the allowlist of host functions reachable through invoke.
// Nothing outside this table can be named, whatever the script says.
var safeInvoke = map[string]func(args []Value) (Value, error){
	"math.sqrt": func(args []Value) (Value, error) {
		x, err := oneNumber("math.sqrt", args)
		if err != nil {
			return nil, err
		}
		if x < 0 {
			return nil, runtimeErrorf("math domain error")
		}
		return math.Sqrt(x), nil
	},
	"math.floor": func(args []Value) (Value, error) {
		x, err := oneNumber("math.floor", args)
		if err != nil {
			return nil, err
		}
		return int64(math.Floor(x)), nil
	},
	"math.ceil": func(args []Value) (Value, error) {
		x, err := oneNumber("math.ceil", args)
		if err != nil {
			return nil, err
		}
		return int64(math.Ceil(x)), nil
	},
	"math.pow": func(args []Value) (Value, error) {
		if len(args) != 2 || !isNumber(args[0]) || !isNumber(args[1]) {
			return nil, runtimeErrorf("math.pow expects 2 numbers")
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
	"abs": func(args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("abs expects 1 argument")
		}
		switch x := args[0].(type) {
		case int64:
			if x < 0 {
				return -x, nil
			}
			return x, nil
		case float64:
			return math.Abs(x), nil
		}
		return nil, runtimeErrorf("abs expects a number")
	},
	"len": func(args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, runtimeErrorf("len expects 1 argument")
		}
		switch x := args[0].(type) {
		case string:
			return int64(len([]rune(x))), nil
		case *List:
			return int64(len(x.Items)), nil
		case *Map:
			return int64(x.Len()), nil
		}
		return nil, runtimeErrorf("object of type %s has no length", typeName(args[0]))
	},
	"time.now": func(args []Value) (Value, error) {
		format := "%Y-%m-%d %H:%M:%S"
		switch len(args) {
		case 0:
		case 1:
			s, ok := args[0].(string)
			if !ok {
				return nil, runtimeErrorf("time.now expects a format string")
			}
			format = s
		default:
			return nil, runtimeErrorf("time.now expects at most 1 argument")
		}
		return lctime.Strftime(format, time.Now()), nil
	},
}

// evalInvoke gates and dispatches an invoke expression. The gate is checked
// before the target or the arguments, so a forbidden context wins over every
// other invoke error.
func (vm *VM) evalInvoke(env *Env, e *Invoke) (Value, error) {
	if vm.CurrentRegion() == chargedRegion && vm.ringActive() {
		return nil, runtimeErrorf(`In Mordor, while bearing the Ring, "invoke" is forbidden.`)
	}
	fn, ok := safeInvoke[e.Target]
	if !ok {
		return nil, runtimeErrorf("Forbidden spell: %s. Use one of: %s", e.Target, strings.Join(safeInvokeNames(), ", "))
	}
	args, err := vm.evalArgs(env, e.Args)
	if err != nil {
		return nil, err
	}
	v, err := fn(args)
	if err != nil {
		if msg, ok := err.(*RuntimeError); ok {
			return nil, runtimeErrorf("Invoke failed: %s: %s", e.Target, msg.Msg)
		}
		return nil, runtimeErrorf("Invoke failed: %s: %v", e.Target, err)
	}
	return v, nil
}

func safeInvokeNames() []string {
	names := make([]string, 0, len(safeInvoke))
	for name := range safeInvoke {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
