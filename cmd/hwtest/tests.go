package main

import (
	"testing"
	"time"

	"github.com/clktmr/rpi/bcm/timer"
	"github.com/clktmr/rpi/bcm/uart"
	"github.com/clktmr/rpi/drivers/console"
	"github.com/clktmr/rpi/drivers/led"
)

func TestTimerMonotonic(t *testing.T) {
	last := timer.System.Now()
	for range 100000 {
		now := timer.System.Now()
		if now < last {
			t.Fatalf("timer went backwards: %v < %v", now, last)
		}
		last = now
	}
}

func TestSpinSleep(t *testing.T) {
	for _, d := range []time.Duration{time.Microsecond, time.Millisecond, 50 * time.Millisecond} {
		start := timer.System.Now()
		timer.SpinSleep(d)
		elapsed := timer.System.Now() - start
		if elapsed < d || elapsed > d+time.Millisecond {
			t.Errorf("SpinSleep(%v) took %v", d, elapsed)
		}
	}
}

func TestStatusLED(t *testing.T) {
	start := timer.System.Now()
	led.Blink(3, 50*time.Millisecond)
	if elapsed := timer.System.Now() - start; elapsed < 300*time.Millisecond {
		t.Errorf("three blinks took %v", elapsed)
	}
}

func TestUARTIdle(t *testing.T) {
	g := console.Lock()
	defer g.Unlock()
	c := g.Value()

	c.Write([]byte("flushing console\n"))
	c.Flush()

	u := uart.Default()
	if !u.IsIdle() {
		t.Error("transmitter busy after flush")
	}
	defer u.SetReadTimeout(u.ReadTimeout())
	u.SetReadTimeout(10 * time.Millisecond)
	for u.HasByte() {
		u.ReadByte()
	}
	start := timer.System.Now()
	if err := u.WaitForByte(); err != uart.ErrTimeout {
		t.Fatalf("got %v, want %v", err, uart.ErrTimeout)
	}
	if elapsed := timer.System.Now() - start; elapsed < 10*time.Millisecond {
		t.Errorf("timed out after %v", elapsed)
	}
}

func BenchmarkTimerNow(b *testing.B) {
	for b.Loop() {
		timer.System.Now()
	}
}
