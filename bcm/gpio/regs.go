// The GPIO controller drives the 54 general purpose pins of the BCM2837. Every
// pin can either be an input, an output or be routed to one of six alternate
// functions of other peripherals.
package gpio

import (
	"unsafe"

	"github.com/clktmr/rpi/bcm/cpu"
	"github.com/clktmr/rpi/bcm/mmio"
)

const baseAddr uintptr = cpu.IOBase + 0x20_0000

type registers struct {
	fsel   [6]mmio.U32
	_      mmio.U32
	set    [2]mmio.U32 // write-only
	_      mmio.U32
	clr    [2]mmio.U32 // write-only
	_      mmio.U32
	lev    [2]mmio.U32 // read-only
	_      mmio.U32
	eds    [2]mmio.U32
	_      mmio.U32
	ren    [2]mmio.U32
	_      mmio.U32
	fen    [2]mmio.U32
	_      mmio.U32
	hen    [2]mmio.U32
	_      mmio.U32
	lowen  [2]mmio.U32
	_      mmio.U32
	aren   [2]mmio.U32
	_      mmio.U32
	afen   [2]mmio.U32
	_      mmio.U32
	pud    mmio.U32
	pudclk [2]mmio.U32
}

// Bank is the set of all pins of a GPIO controller.
type Bank struct {
	regs *registers
}

// Default is the GPIO controller of the SoC.
var Default = &Bank{(*registers)(unsafe.Pointer(baseAddr))}

// NewBank returns a Bank with its registers at base.
func NewBank(base unsafe.Pointer) *Bank {
	return &Bank{(*registers)(base)}
}
