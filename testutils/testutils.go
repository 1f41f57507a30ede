// Package testutils provides utilities for testing GandalfLang code in Go.
package testutils

import (
	"bytes"
	"testing"

	"github.com/gandalf-lang/gandalf"
)

// RunSource executes source on a fresh VM and returns the VM, everything it
// printed, and the error from Run.
func RunSource(source string) (*gandalf.VM, string, error) {
	vm := gandalf.NewVM()
	var out bytes.Buffer
	vm.Stdout = &out
	err := vm.Run(source)
	return vm, out.String(), err
}

// A SourceTestCase is a test case containing GandalfLang source code and a
// predicate to check the outcome.
type SourceTestCase struct {
	// Source is the GandalfLang source code to execute.
	Source string
	// Pass is a predicate taking the program's output and the error from
	// running Source. If Pass returns false, then the test fails.
	Pass func(output string, err error) bool
}

// TestFunc returns a test function for the test case. Each case runs on its
// own VM.
func (c SourceTestCase) TestFunc() func(*testing.T) {
	return func(t *testing.T) {
		_, out, err := RunSource(c.Source)
		if !c.Pass(out, err) {
			t.Errorf("%q produced wrong result; output %q, error %v", c.Source, out, err)
		}
	}
}

// PassOutput returns a Pass function that predicates on the exact printed
// output and no error.
func PassOutput(want string) func(string, error) bool {
	return func(output string, err error) bool {
		return err == nil && output == want
	}
}

// PassError returns a Pass function that predicates on a language error with
// the exact message.
func PassError(want string) func(string, error) bool {
	return func(output string, err error) bool {
		return err != nil && gandalf.IsLanguageError(err) && err.Error() == want
	}
}
