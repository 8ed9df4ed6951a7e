package uart

import (
	"errors"
	"sync"
	"time"
	"unsafe"

	"github.com/clktmr/rpi/bcm/gpio"
	"github.com/clktmr/rpi/bcm/timer"
)

var ErrTimeout = errors.New("uart: read timed out")

const (
	pinTXD = 14
	pinRXD = 15
)

// MiniUART is a polled driver for the mini UART. It implements io.Reader,
// io.Writer, io.ByteReader and io.ByteWriter. Only Read honors the read
// timeout.
//
// Writes are binary, no newline translation takes place.
type MiniUART struct {
	regs    *registers
	clock   timer.Clock
	timeout time.Duration
}

// New initializes the mini UART of the SoC: 8 data bits at ~115200 baud on
// GPIO 14 and 15. Reads never time out until SetReadTimeout is called.
//
// New must be called only once, since it configures the pins it uses. Code
// sharing the UART uses Default instead.
func New() *MiniUART {
	return NewAt(unsafe.Pointer(baseAddr), gpio.Default, timer.System)
}

var shared struct {
	once sync.Once
	uart *MiniUART
}

var newShared = New

// Default returns the mini UART of the SoC, initializing it on first use.
// Console, panic reports and the bootloader all write through it.
func Default() *MiniUART {
	shared.once.Do(func() { shared.uart = newShared() })
	return shared.uart
}

// NewAt is like New, but for a mini UART with its auxiliary registers at base
// and its pins in bank. Timeouts are measured with clock.
func NewAt(base unsafe.Pointer, bank *gpio.Bank, clock timer.Clock) *MiniUART {
	regs := (*registers)(base)
	regs.enables.SetBits(auxMiniUART)

	bank.Pin(pinTXD).IntoAlt(gpio.Alt5)
	bank.Pin(pinRXD).IntoAlt(gpio.Alt5)

	regs.cntl.Store(0) // disable while changing settings
	regs.lcr.Store(lcr8Bit)
	regs.baud.Store(baudDivisor)
	regs.cntl.Store(cntlRxEnable | cntlTxEnable)

	return &MiniUART{regs: regs, clock: clock}
}

// SetReadTimeout sets the maximum time Read and WaitForByte wait for the
// first byte. Zero disables the timeout.
func (u *MiniUART) SetReadTimeout(d time.Duration) {
	u.timeout = d
}

func (u *MiniUART) ReadTimeout() time.Duration {
	return u.timeout
}

// WriteByte blocks until there is space in the transmit FIFO, then writes c.
func (u *MiniUART) WriteByte(c byte) error {
	for u.regs.lsr.LoadBits(txEmpty) == 0 {
	}
	u.regs.io.Store(uint32(c))
	return nil
}

// HasByte returns true if there is at least one byte in the receive FIFO. If
// so, a subsequent ReadByte returns immediately.
func (u *MiniUART) HasByte() bool {
	return u.regs.lsr.LoadBits(dataReady) != 0
}

// WaitForByte blocks until there is a byte to read. If a read timeout is
// set, it returns ErrTimeout after waiting that long.
func (u *MiniUART) WaitForByte() error {
	if u.timeout <= 0 {
		for !u.HasByte() {
		}
		return nil
	}

	deadline := u.clock.Now() + u.timeout
	for u.clock.Now() < deadline {
		if u.HasByte() {
			return nil
		}
	}
	return ErrTimeout
}

// ReadByte blocks until a byte was received and returns it. It ignores the
// read timeout and never fails.
func (u *MiniUART) ReadByte() (byte, error) {
	for !u.HasByte() {
	}
	return byte(u.regs.io.Load()), nil
}

// Read waits for the first byte like WaitForByte, then reads as many bytes as
// are available and fit into p.
func (u *MiniUART) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err = u.WaitForByte(); err != nil {
		return 0, err
	}
	for n < len(p) && u.HasByte() {
		p[n], _ = u.ReadByte()
		n++
	}
	return n, nil
}

func (u *MiniUART) Write(p []byte) (n int, err error) {
	for _, c := range p {
		u.WriteByte(c)
	}
	return len(p), nil
}

// IsIdle returns true if the transmitter has shifted out the last bit.
func (u *MiniUART) IsIdle() bool {
	return u.regs.lsr.LoadBits(txIdle) != 0
}

// Flush blocks until all written bytes have left the transmitter.
func (u *MiniUART) Flush() error {
	for !u.IsIdle() {
	}
	return nil
}
