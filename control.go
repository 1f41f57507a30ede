package gandalf

import "fmt"

// Stop represents the reason for flow control during statement execution.
type Stop int

// Control flow reasons.
const (
	// NoStop indicates normal execution.
	NoStop Stop = iota
	// ReturnStop indicates that a return statement is unwinding to the
	// nearest enclosing spell call, which consumes it. A ReturnStop reaching
	// the top level of a program is a runtime error.
	ReturnStop
)

var stopNames = [...]string{"normal", "return"}

func (s Stop) String() string {
	if s < NoStop || s > ReturnStop {
		return fmt.Sprintf("Stop(%d)", int(s))
	}
	return stopNames[s]
}
