package timer

import (
	"time"
	"unsafe"
)

// Clock is a monotonic time source with microsecond resolution.
type Clock interface {
	Now() time.Duration
}

type Timer struct {
	regs *registers
}

// NewAt returns a Timer with its registers at base.
func NewAt(base unsafe.Pointer) *Timer {
	return &Timer{(*registers)(base)}
}

// Now returns the time elapsed since the counter started.
func (t *Timer) Now() time.Duration {
	return time.Duration(read(t.regs.chi.Load, t.regs.clo.Load)) * time.Microsecond
}

// Deadline returns the point in time d from now.
func (t *Timer) Deadline(d time.Duration) time.Duration {
	return t.Now() + d
}

// read combines the two counter words. If the high word changed while the
// low word was read, the low word wrapped and the read is repeated.
//
//go:nosplit
func read(hi, lo func() uint32) uint64 {
	for {
		h := hi()
		l := lo()
		if hi() == h {
			return uint64(h)<<32 | uint64(l)
		}
	}
}

// Spin busy-waits until at least d has passed on c.
func Spin(c Clock, d time.Duration) {
	deadline := c.Now() + d
	for c.Now() < deadline {
	}
}

// SpinSleep busy-waits on the system timer until at least d has passed.
func SpinSleep(d time.Duration) {
	Spin(System, d)
}
