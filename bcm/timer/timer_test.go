package timer

import (
	"testing"
	"time"
	"unsafe"
)

func TestLayout(t *testing.T) {
	var r registers
	offsets := map[string]uintptr{
		"cs":      unsafe.Offsetof(r.cs),
		"clo":     unsafe.Offsetof(r.clo),
		"chi":     unsafe.Offsetof(r.chi),
		"compare": unsafe.Offsetof(r.compare),
	}
	expected := map[string]uintptr{"cs": 0x0, "clo": 0x4, "chi": 0x8, "compare": 0xc}
	for name, off := range offsets {
		if off != expected[name] {
			t.Errorf("%s: offset %#x, expected %#x", name, off, expected[name])
		}
	}
}

func TestNow(t *testing.T) {
	var r registers
	timer := NewAt(unsafe.Pointer(&r))
	r.chi.Store(0x1)
	r.clo.Store(0x5)

	expected := time.Duration(1<<32+5) * time.Microsecond
	if now := timer.Now(); now != expected {
		t.Fatalf("got %v, expected %v", now, expected)
	}
	if d := timer.Deadline(time.Second); d != expected+time.Second {
		t.Fatalf("deadline %v", d)
	}
}

// counter simulates the hardware counter advancing between bus accesses.
type counter struct {
	v, step uint64
}

func (c *counter) hi() uint32 { c.v += c.step; return uint32(c.v >> 32) }
func (c *counter) lo() uint32 { c.v += c.step; return uint32(c.v) }

func TestReadTorn(t *testing.T) {
	// The low word wraps between the first high read and the low read.
	his := []uint32{1, 2, 2, 2}
	los := []uint32{0x0000_0000, 0x0000_0003}
	var hi, lo int
	v := read(
		func() uint32 { hi++; return his[hi-1] },
		func() uint32 { lo++; return los[lo-1] },
	)
	if v != 2<<32|3 {
		t.Fatalf("got %#x, expected %#x", v, uint64(2<<32|3))
	}
	if hi != 4 || lo != 2 {
		t.Fatalf("expected a retry, got %d high and %d low reads", hi, lo)
	}
}

func TestReadMonotonic(t *testing.T) {
	for _, step := range []uint64{1, 0x10, 0x1000, 0x1000_0000} {
		c := &counter{v: 0xffff_0000, step: step}
		var last uint64
		for range 100000 {
			before := c.v
			v := read(c.hi, c.lo)
			if v < last {
				t.Fatalf("step %#x: went backwards from %#x to %#x", step, last, v)
			}
			if v < before || v > c.v {
				t.Fatalf("step %#x: %#x outside of [%#x, %#x]", step, v, before, c.v)
			}
			last = v
		}
	}
}

type stepClock struct {
	now, step time.Duration
}

func (c *stepClock) Now() time.Duration {
	c.now += c.step
	return c.now
}

func TestSpin(t *testing.T) {
	for _, d := range []time.Duration{0, time.Microsecond, 13 * time.Microsecond, time.Second} {
		c := &stepClock{now: 1000 * time.Microsecond, step: 7 * time.Microsecond}
		start := c.now
		Spin(c, d)
		if c.now < start+d {
			t.Errorf("Spin(%v) returned after %v", d, c.now-start)
		}
		if c.now > start+d+2*c.step {
			t.Errorf("Spin(%v) returned late after %v", d, c.now-start)
		}
	}
}
