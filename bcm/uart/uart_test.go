package uart

import (
	"errors"
	"testing"
	"time"
	"unsafe"

	"github.com/clktmr/rpi/bcm/gpio"
)

// testClock advances by step on every reading and calls hook, if set, with
// the number of readings so far.
type testClock struct {
	now   time.Duration
	step  time.Duration
	reads int
	hook  func(reads int)
}

func (c *testClock) Now() time.Duration {
	c.now += c.step
	c.reads++
	if c.hook != nil {
		c.hook(c.reads)
	}
	return c.now
}

type testDevice struct {
	uart  *MiniUART
	regs  *registers
	gpio  [64]uint32
	clock *testClock
}

func newTestDevice() *testDevice {
	d := &testDevice{regs: &registers{}, clock: &testClock{step: 10 * time.Microsecond}}
	d.regs.enables.Store(0b100) // SPI2 enabled
	d.uart = NewAt(unsafe.Pointer(d.regs), gpio.NewBank(unsafe.Pointer(&d.gpio)), d.clock)
	return d
}

func TestLayout(t *testing.T) {
	var r registers
	tests := []struct {
		name             string
		offset, expected uintptr
	}{
		{"enables", unsafe.Offsetof(r.enables), 0x04},
		{"io", unsafe.Offsetof(r.io), 0x40},
		{"lcr", unsafe.Offsetof(r.lcr), 0x4c},
		{"lsr", unsafe.Offsetof(r.lsr), 0x54},
		{"cntl", unsafe.Offsetof(r.cntl), 0x60},
		{"stat", unsafe.Offsetof(r.stat), 0x64},
		{"baud", unsafe.Offsetof(r.baud), 0x68},
	}
	for _, tc := range tests {
		if tc.offset != tc.expected {
			t.Errorf("%s: offset %#x, expected %#x", tc.name, tc.offset, tc.expected)
		}
	}
}

func TestInit(t *testing.T) {
	d := newTestDevice()

	if got := d.regs.enables.Load(); got != 0b101 {
		t.Errorf("AUXENB %#b", got)
	}
	if got := d.regs.lcr.Load(); got != lcr8Bit {
		t.Errorf("LCR %#b", got)
	}
	if got := d.regs.baud.Load(); got != baudDivisor {
		t.Errorf("BAUD %d", got)
	}
	if got := d.regs.cntl.Load(); got != cntlRxEnable|cntlTxEnable {
		t.Errorf("CNTL %#b", got)
	}
	fsel1 := d.gpio[1]
	for _, pin := range []uint{pinTXD, pinRXD} {
		shift := 3 * (pin % 10)
		if fn := gpio.Function(fsel1 >> shift & 0b111); fn != gpio.Alt5 {
			t.Errorf("pin %d: function %03b", pin, fn)
		}
	}
	if d.uart.ReadTimeout() != 0 {
		t.Error("expected no read timeout")
	}
}

func TestReadByte(t *testing.T) {
	d := newTestDevice()
	d.regs.io.Store('A')
	if d.uart.HasByte() {
		t.Fatal("no byte expected")
	}

	d.regs.lsr.Store(dataReady)
	if !d.uart.HasByte() {
		t.Fatal("byte expected")
	}
	b, err := d.uart.ReadByte()
	if err != nil || b != 'A' {
		t.Fatalf("got %q, %v", b, err)
	}
	if d.clock.reads != 0 {
		t.Fatal("ReadByte must not poll the clock")
	}
}

func TestWaitForByteTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{time.Microsecond, time.Millisecond, time.Second} {
		d := newTestDevice()
		d.uart.SetReadTimeout(timeout)

		start := d.clock.now
		err := d.uart.WaitForByte()
		if !errors.Is(err, ErrTimeout) {
			t.Fatalf("%v: expected timeout, got %v", timeout, err)
		}
		elapsed := d.clock.now - start
		if elapsed < timeout {
			t.Errorf("%v: timed out early after %v", timeout, elapsed)
		}
		if elapsed > timeout+2*d.clock.step {
			t.Errorf("%v: timed out late after %v", timeout, elapsed)
		}
	}
}

func TestWaitForByte(t *testing.T) {
	d := newTestDevice()
	d.uart.SetReadTimeout(time.Second)
	d.clock.hook = func(reads int) {
		if reads == 50 {
			d.regs.lsr.Store(dataReady)
		}
	}
	if err := d.uart.WaitForByte(); err != nil {
		t.Fatal(err)
	}
	if d.clock.reads != 50 {
		t.Fatalf("kept polling after byte arrived: %d reads", d.clock.reads)
	}
}

func TestRead(t *testing.T) {
	d := newTestDevice()
	d.uart.SetReadTimeout(time.Millisecond)

	buf := make([]byte, 4)
	n, err := d.uart.Read(buf)
	if n != 0 || !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %d, %v", n, err)
	}

	d.regs.io.Store('x')
	d.regs.lsr.Store(dataReady)
	n, err = d.uart.Read(buf)
	if n != len(buf) || err != nil {
		t.Fatalf("got %d, %v", n, err)
	}
	if string(buf) != "xxxx" {
		t.Fatalf("got %q", buf)
	}

	n, err = d.uart.Read(nil)
	if n != 0 || err != nil {
		t.Fatalf("empty read: %d, %v", n, err)
	}
}

func TestWrite(t *testing.T) {
	d := newTestDevice()
	d.regs.lsr.Store(txEmpty | txIdle)

	n, err := d.uart.Write([]byte("hello\n"))
	if n != 6 || err != nil {
		t.Fatalf("got %d, %v", n, err)
	}
	if got := d.regs.io.Load(); got != '\n' {
		t.Fatalf("last byte written %q", got)
	}
	if !d.uart.IsIdle() {
		t.Fatal("expected idle")
	}
	if err := d.uart.Flush(); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	created := 0
	d := newTestDevice()
	newShared = func() *MiniUART {
		created++
		return d.uart
	}

	for range 3 {
		if u := Default(); u != d.uart {
			t.Fatalf("got %p, want %p", u, d.uart)
		}
	}
	if created != 1 {
		t.Errorf("initialized %d times, want once", created)
	}
}
