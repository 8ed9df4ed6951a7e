// Package debug provides assertions for internal invariants. They are checked
// in builds with the debug tag and compile to nothing otherwise.
//
// This is not considered idiomatic Go, but it keeps checks that cost time on
// every register access out of the firmware.
package debug

// AssertionError is the panic value of a failed assertion.
type AssertionError struct {
	Message string
	Err     error
}

func (e *AssertionError) Error() string {
	if e.Err != nil {
		return "assertion failed: " + e.Err.Error()
	}
	return "assertion failed: " + e.Message
}

func (e *AssertionError) Unwrap() error { return e.Err }
