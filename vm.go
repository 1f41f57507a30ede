package gandalf

import (
	"fmt"
	"io"
	"os"
)

// A Spell is a user-defined function: ordered parameter names and a body.
type Spell struct {
	Params []string
	Body   []Stmt
}

// A VM is one interpreter session. It owns the global environment, the spell
// table, and the context state, and is threaded through every evaluation.
// A VM is not safe for concurrent use.
type VM struct {
	// Global is the root environment. Hosts may pre-bind names here before
	// running code.
	Global *Env
	// Stdout receives everything the program proclaims.
	Stdout io.Writer

	spells map[string]*Spell

	// Context state. The region stack is never empty; its top is the active
	// region.
	regions       []string
	persona       string
	owned         map[string]bool
	bearingRing   bool
	ringDestroyed bool

	lore *loreTable
}

// NewVM prepares a new VM with an empty global scope, the default context
// (region "wilds", persona "man", nothing owned), and output to os.Stdout.
func NewVM() *VM {
	vm := &VM{
		Global:  NewEnv(nil),
		Stdout:  os.Stdout,
		spells:  map[string]*Spell{},
		regions: []string{defaultRegion},
		persona: defaultPersona,
		owned:   map[string]bool{artifactRing: false, artifactMithril: false, artifactPhial: false},
		lore:    lore(),
	}
	vm.syncContextGlobals()
	vm.Global.Declare("ONE_RING", "One Ring")
	vm.Global.Declare("MELLON", "mellon")
	return vm
}

// Run parses and executes source. Errors are language errors (lex, parse,
// runtime) except when a defect in the interpreter itself panics, in which
// case the panic is captured as an internal error rather than crashing the
// host.
func (vm *VM) Run(source string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &internalError{value: p}
		}
	}()
	prog, err := ParseString(source)
	if err != nil {
		return err
	}
	_, stop, err := vm.execBlock(vm.Global, prog)
	if err != nil {
		return err
	}
	if stop == ReturnStop {
		return runtimeErrorf("'return' outside of any spell")
	}
	return nil
}

// RunFile reads and executes the script at path.
func (vm *VM) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return runtimeErrorf("Script not found: %s", path)
	}
	return vm.Run(string(src))
}

func (vm *VM) print(line string) {
	fmt.Fprintln(vm.Stdout, line)
}
