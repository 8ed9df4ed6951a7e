// The system timer is a free running 64-bit counter incremented every
// microsecond. It is split into two 32-bit registers, so reading it takes two
// bus transactions.
package timer

import (
	"unsafe"

	"github.com/clktmr/rpi/bcm/cpu"
	"github.com/clktmr/rpi/bcm/mmio"
)

const baseAddr uintptr = cpu.IOBase + 0x3000

type registers struct {
	cs      mmio.U32
	clo     mmio.U32
	chi     mmio.U32
	compare [4]mmio.U32
}

// System is the timer of the SoC.
var System = &Timer{(*registers)(unsafe.Pointer(baseAddr))}
