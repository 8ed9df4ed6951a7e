// Package console provides the console singleton, a serial terminal on the
// mini UART.
//
// The console is initialized on first use. Every access locks it, so it must
// not be used while a Guard returned by Lock is held.
package console

import (
	"fmt"
	"io"
	"time"

	"github.com/clktmr/rpi/bcm/uart"
	"github.com/clktmr/rpi/drivers"
	"github.com/clktmr/rpi/spin"
)

// ReadTimeout is the read timeout of the console's UART.
const ReadTimeout = time.Second

// Device is the serial device backing the console.
type Device interface {
	io.ReadWriter
	io.ByteReader
	io.ByteWriter
	Flush() error
}

var newDevice = func() Device {
	u := uart.Default()
	u.SetReadTimeout(ReadTimeout)
	return u
}

type Console struct {
	dev Device
}

var console spin.Mutex[Console]

func (c *Console) device() Device {
	if c.dev == nil {
		c.dev = newDevice()
	}
	return c.dev
}

// ReadByte blocks until a byte was received.
func (c *Console) ReadByte() (byte, error) {
	return c.device().ReadByte()
}

func (c *Console) WriteByte(b byte) error {
	return c.device().WriteByte(b)
}

func (c *Console) Read(p []byte) (int, error) {
	return c.device().Read(p)
}

// Write writes p as text, see drivers.TextWriter.
func (c *Console) Write(p []byte) (int, error) {
	return drivers.TextWriter{W: c.device()}.Write(p)
}

func (c *Console) Flush() error {
	return c.device().Flush()
}

// Lock acquires the console.
func Lock() spin.Guard[Console] {
	return console.Lock()
}

// TryLock acquires the console if it isn't held already.
func TryLock() (spin.Guard[Console], bool) {
	return console.TryLock()
}

func Printf(format string, a ...any) {
	g := console.Lock()
	defer g.Unlock()
	fmt.Fprintf(g.Value(), format, a...)
}

func Print(a ...any) {
	g := console.Lock()
	defer g.Unlock()
	fmt.Fprint(g.Value(), a...)
}

func Println(a ...any) {
	g := console.Lock()
	defer g.Unlock()
	fmt.Fprintln(g.Value(), a...)
}

type writer struct{}

func (writer) Write(p []byte) (int, error) {
	g := console.Lock()
	defer g.Unlock()
	return g.Value().Write(p)
}

// Writer writes text to the console, locking it for every call.
var Writer io.Writer = writer{}

type terminal struct{ writer }

func (terminal) ReadByte() (byte, error) {
	g := console.Lock()
	defer g.Unlock()
	return g.Value().ReadByte()
}

// Terminal reads bytes from and writes text to the console. Like Writer it
// locks the console for every call, so other code can print in between.
var Terminal interface {
	io.ByteReader
	io.Writer
} = terminal{}
