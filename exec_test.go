package gandalf

import (
	"bytes"
	"strings"
	"testing"
)

// runSource executes source on a fresh VM and returns the VM, its printed
// output, and the error from Run.
func runSource(source string) (*VM, string, error) {
	vm := NewVM()
	var out bytes.Buffer
	vm.Stdout = &out
	err := vm.Run(source)
	return vm, out.String(), err
}

// expectOutput runs source and checks the exact printed output.
func expectOutput(t *testing.T, source, want string) {
	t.Helper()
	_, out, err := runSource(source)
	if err != nil {
		t.Fatalf("%q failed: %v", source, err)
	}
	if out != want {
		t.Errorf("%q printed %q, want %q", source, out, want)
	}
}

// expectRuntimeError runs source and checks that it fails with a runtime
// error whose message contains want.
func expectRuntimeError(t *testing.T, source, want string) {
	t.Helper()
	_, _, err := runSource(source)
	if err == nil {
		t.Fatalf("%q succeeded, want error containing %q", source, want)
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("%q produced %T, want *RuntimeError", source, err)
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("%q produced %q, want it to contain %q", source, err.Error(), want)
	}
}

// TestInscribeProclaim tests the basic declare-and-print round trip.
func TestInscribeProclaim(t *testing.T) {
	expectOutput(t, "inscribe x = 41 + 1\nproclaim x", "42\n")
	expectOutput(t, `bind y = "mellon"`+"\nsay y", "mellon\n")
}

// TestUnknownName tests that reading an undefined variable fails.
func TestUnknownName(t *testing.T) {
	expectRuntimeError(t, "proclaim nothing", "Unknown name: nothing")
}

// TestAssignOuterScope tests that assignment inside a block mutates the
// binding where it is defined rather than shadowing it.
func TestAssignOuterScope(t *testing.T) {
	src := `inscribe x = 1
in moria do
	inscribe x = 2
	proclaim x
end
proclaim x`
	expectOutput(t, src, "2\n(echo) 2\n2\n")
}

// TestSpellScope tests that a spell's scope chains to the globals, not to
// its caller's locals.
func TestSpellScope(t *testing.T) {
	src := `inscribe g = 10
spell f(a) do
	return a + g
end
spell caller() do
	inscribe hidden = 100
	return f(1)
end
proclaim caller()`
	expectOutput(t, src, "11\n")

	// A fresh name inscribed inside a spell lands at the root scope, so
	// another spell can read it afterward.
	src = `spell f() do
	return hidden
end
spell caller() do
	inscribe hidden = 100
	return f()
end
proclaim caller()`
	expectOutput(t, src, "100\n")

	// Parameters are true locals of the call scope; they are invisible to
	// the spells their holder calls.
	src = `spell f() do
	return hidden
end
spell caller(hidden) do
	return f()
end
proclaim caller(100)`
	expectRuntimeError(t, src, "Unknown name: hidden")
}

// TestSpellArity tests the arity check on user spells.
func TestSpellArity(t *testing.T) {
	src := `spell f(a, b) do
	return a
end
f(1)`
	expectRuntimeError(t, src, "Spell 'f' expects 2 args, got 1")
}

// TestSpellRedefinition tests that redefining a spell silently replaces it.
func TestSpellRedefinition(t *testing.T) {
	src := `spell f() do
	return 1
end
spell f() do
	return 2
end
proclaim f()`
	expectOutput(t, src, "2\n")
}

// TestSpellNoReturn tests that a spell body without a return yields nil.
func TestSpellNoReturn(t *testing.T) {
	src := `spell f() do
	inscribe x = 1
end
proclaim f()`
	expectOutput(t, src, "nil\n")
}

// TestReturnBare tests that a bare return yields nil.
func TestReturnBare(t *testing.T) {
	src := `spell f() do
	return
end
proclaim f()`
	expectOutput(t, src, "nil\n")
}

// TestReturnStopsBlock tests that return aborts the rest of the spell body,
// including enclosing loops.
func TestReturnStopsBlock(t *testing.T) {
	src := `spell first(xs) do
	inscribe i = 0
	while i < length(xs) do
		return xs[i]
	end
	return nil
end
proclaim first([7, 8, 9])`
	expectOutput(t, src, "7\n")
}

// TestTopLevelReturn tests that return outside any spell is a runtime error.
func TestTopLevelReturn(t *testing.T) {
	expectRuntimeError(t, "return 1", "'return' outside of any spell")
	expectRuntimeError(t, "if true then return 1 end", "'return' outside of any spell")
}

// TestIfElse tests branch selection on truthiness.
func TestIfElse(t *testing.T) {
	cases := map[string]struct {
		cond string
		want string
	}{
		"True":        {"true", "yes\n"},
		"False":       {"false", "no\n"},
		"Zero":        {"0", "no\n"},
		"NonzeroNeg":  {"-1", "yes\n"},
		"EmptyString": {`""`, "no\n"},
		"String":      {`"x"`, "yes\n"},
		"Nil":         {"nil", "no\n"},
		"EmptyList":   {"[]", "no\n"},
		"List":        {"[0]", "yes\n"},
		"EmptyMap":    {"{}", "no\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			src := "if " + c.cond + ` then proclaim "yes" else proclaim "no" end`
			expectOutput(t, src, c.want)
		})
	}
}

// TestWhile tests loop iteration and the condition's re-evaluation.
func TestWhile(t *testing.T) {
	src := `inscribe i = 0
while i < 3 do
	proclaim i
	inscribe i = i + 1
end`
	expectOutput(t, src, "0\n1\n2\n")
}

// TestAliasProgram tests that a program written entirely in aliases runs the
// same as the canonical spelling.
func TestAliasProgram(t *testing.T) {
	src := `bind total = 0
bind i = 0
endure i < 4 do
	bind total = total + i
	bind i = i + 1
end
when total > 5 upon
	say total
otherwise
	say "small"
end`
	expectOutput(t, src, "6\n")
}

// TestArithmetic tests the operator semantics.
func TestArithmetic(t *testing.T) {
	cases := map[string]struct {
		expr string
		want string
	}{
		"IntAdd":      {"1 + 2", "3\n"},
		"FloatAdd":    {"1.5 + 2", "3.5\n"},
		"Sub":         {"10 - 4", "6\n"},
		"Mul":         {"6 * 7", "42\n"},
		"DivExact":    {"6 / 2", "3\n"},
		"DivFloat":    {"7 / 2", "3.5\n"},
		"Neg":         {"-(3 + 4)", "-7\n"},
		"StrConcat":   {`"mel" + "lon"`, "mellon\n"},
		"StrCoerce":   {`"n=" + 3`, "n=3\n"},
		"StrCoerceL":  {`3 + "=n"`, "3=n\n"},
		"ListConcat":  {"[1] + [2, 3]", "[1, 2, 3]\n"},
		"CmpLt":       {"1 < 2", "true\n"},
		"CmpGe":       {"2 >= 3", "false\n"},
		"EqNum":       {"1 == 1.0", "true\n"},
		"EqStr":       {`"a" == "a"`, "true\n"},
		"NeMixed":     {`1 != "1"`, "true\n"},
		"EqList":      {"[1, [2]] == [1, [2]]", "true\n"},
		"EqListDepth": {"[1, [2]] == [1, [3]]", "false\n"},
		"EqNil":       {"nil == nil", "true\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			expectOutput(t, "proclaim "+c.expr, c.want)
		})
	}
}

// TestArithmeticErrors tests the operator type errors.
func TestArithmeticErrors(t *testing.T) {
	cases := map[string]struct {
		expr string
		want string
	}{
		"AddBad":   {"1 + nil", "Operator '+' expects numbers or strings (or list + list)"},
		"SubBad":   {`"a" - 1`, "Operator '-' expects numbers"},
		"MulBad":   {"[1] * 2", "Operator '*' expects numbers"},
		"DivBad":   {`"a" / 2`, "Operator '/' expects numbers"},
		"DivZero":  {"1 / 0", "Division by zero"},
		"DivZeroF": {"1 / 0.0", "Division by zero"},
		"CmpBad":   {`"a" < "b"`, "Cannot compare non-numbers with '<'"},
		"NegBad":   {`-"a"`, "Unary '-' expects number, got string"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			expectRuntimeError(t, "proclaim "+c.expr, c.want)
		})
	}
}

// TestIndexing tests indexing across the container kinds.
func TestIndexing(t *testing.T) {
	expectOutput(t, "proclaim [10, 20, 30][1]", "20\n")
	expectOutput(t, `proclaim "mellon"[0]`, "m\n")
	expectOutput(t, `proclaim {name: "frodo"}["name"]`, "frodo\n")
	expectOutput(t, `proclaim {name: "frodo"}["age"]`, "nil\n")
	expectRuntimeError(t, "proclaim [1][5]", "List index out of range")
	expectRuntimeError(t, `proclaim "abc"[3]`, "String index out of range")
	expectRuntimeError(t, `proclaim [1]["x"]`, "List index must be an integer")
	expectRuntimeError(t, "proclaim 5[0]", "Indexing not supported for number")
}

// TestContextGlobals tests the read-only mirrors of the context state.
func TestContextGlobals(t *testing.T) {
	src := `proclaim REGION
proclaim RACE
proclaim HAS_RING
be elf
claim ring
in moria do
	proclaim REGION
end
proclaim RACE
proclaim HAS_RING
proclaim ONE_RING`
	want := "wilds\nman\nfalse\nmoria\n(echo) moria\nelf\ntrue\nOne Ring\n"
	expectOutput(t, src, want)
}
