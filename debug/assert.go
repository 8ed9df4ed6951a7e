//go:build debug

package debug

// Enabled reports whether assertions are checked. Wrap assertions whose
// condition is expensive or could panic in `if debug.Enabled {...}`.
const Enabled = true

// Assert panics with an *AssertionError if ok is false.
func Assert(ok bool, message string) {
	if !ok {
		panic(&AssertionError{Message: message})
	}
}

// AssertErrNil panics with an *AssertionError wrapping err if err isn't nil.
func AssertErrNil(err error) {
	if err != nil {
		panic(&AssertionError{Err: err})
	}
}
