// +build nounsafe

package gandalf

import "reflect"

// The default implementation of uniqueID uses unsafe.Pointer. If you can't
// use packages importing unsafe, build with -tags=nounsafe to select this
// implementation instead at a performance penalty when rendering large
// nested values.

// uniqueID returns the address of a container value, identifying it across
// aliases.
func uniqueID(v Value) uintptr {
	return reflect.ValueOf(v).Pointer()
}
