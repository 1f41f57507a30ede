package gandalf

import "testing"

// TestEnvDeclareShadows tests that Declare binds in the current scope only.
func TestEnvDeclareShadows(t *testing.T) {
	outer := NewEnv(nil)
	outer.Declare("x", int64(1))
	inner := NewEnv(outer)
	inner.Declare("x", int64(2))

	if v, err := inner.Get("x"); err != nil || v != int64(2) {
		t.Errorf("inner x = %v, %v; want 2, nil", v, err)
	}
	if v, err := outer.Get("x"); err != nil || v != int64(1) {
		t.Errorf("outer x = %v, %v; want 1, nil", v, err)
	}
}

// TestEnvAssignWalksChain tests that Assign mutates the nearest defining
// scope and falls back to the root for new names.
func TestEnvAssignWalksChain(t *testing.T) {
	root := NewEnv(nil)
	root.Declare("x", int64(1))
	mid := NewEnv(root)
	leaf := NewEnv(mid)

	leaf.Assign("x", int64(9))
	if v, _ := root.Get("x"); v != int64(9) {
		t.Errorf("root x = %v after leaf assign, want 9", v)
	}
	if _, ok := leaf.vars["x"]; ok {
		t.Error("leaf grew its own x binding")
	}

	leaf.Assign("fresh", int64(7))
	if _, ok := root.vars["fresh"]; !ok {
		t.Error("fresh name did not land in the root scope")
	}
}

// TestEnvGetUnknown tests the unknown-name error.
func TestEnvGetUnknown(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.Get("nothing")
	if err == nil {
		t.Fatal("Get of unknown name succeeded")
	}
	if err.Error() != "The spell backfires: Unknown name: nothing" {
		t.Errorf("got %q", err.Error())
	}
}
