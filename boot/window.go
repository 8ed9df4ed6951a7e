package boot

import (
	"fmt"
	"unsafe"

	"github.com/clktmr/rpi/bcm/cpu"
)

// Window is the memory region an image is loaded into. Its first byte is the
// image's entry point.
type Window struct {
	buf  []byte
	addr uintptr
}

// NewWindow returns the physical memory region [start, end).
func NewWindow(start, end uintptr) Window {
	if end < start {
		panic(fmt.Sprintf("boot: invalid window %#x-%#x", start, end))
	}
	return Window{
		buf:  unsafe.Slice((*byte)(unsafe.Pointer(start)), end-start),
		addr: start,
	}
}

// WindowOf returns a window backed by buf.
func WindowOf(buf []byte) Window {
	return Window{buf: buf, addr: cpu.Address(buf)}
}

// Addr returns the address of the first byte.
func (w Window) Addr() uintptr { return w.addr }

// Bytes returns the window's memory. The slice's capacity equals its length,
// appending never writes past the window.
func (w Window) Bytes() []byte { return w.buf[:len(w.buf):len(w.buf)] }

func (w Window) Len() int { return len(w.buf) }

func (w Window) String() string {
	return fmt.Sprintf("%#x-%#x", w.addr, w.addr+uintptr(len(w.buf)))
}
