// +build !nounsafe

package gandalf

import "unsafe"

// Using unsafe to retrieve a container's address is considerably faster than
// going through reflect, which matters when rendering large nested values.

// uniqueID returns the address of a container value, identifying it across
// aliases.
func uniqueID(v Value) uintptr {
	switch t := v.(type) {
	case *List:
		return uintptr(unsafe.Pointer(t))
	case *Map:
		return uintptr(unsafe.Pointer(t))
	}
	return 0
}
