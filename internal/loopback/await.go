package loopback

import (
	"io"
	"testing"
	"time"
)

// Timeout bounds how long Await waits for a transfer over a line.
const Timeout = 5 * time.Second

// Await returns the value received from ch. If nothing arrives within
// Timeout, line is closed to unblock the peers and the test fails. line may be
// nil.
func Await[T any](t testing.TB, ch <-chan T, line io.Closer) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(Timeout):
		if line != nil {
			line.Close()
		}
		t.Fatalf("transfer didn't finish within %v", Timeout)
		panic("unreachable")
	}
}

// Go runs fn in a new goroutine and returns a channel delivering its result.
func Go[T any](fn func() T) <-chan T {
	ch := make(chan T, 1)
	go func() { ch <- fn() }()
	return ch
}
