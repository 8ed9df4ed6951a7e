// The mini UART is one of the auxiliary peripherals of the BCM2837. It is
// routed to GPIO pins 14 (TXD1) and 15 (RXD1) via alternate function 5.
//
// All of its registers are 8 bits wide except for the baudrate register. They
// occupy the low bits of 32-bit aligned slots.
package uart

import (
	"github.com/clktmr/rpi/bcm/cpu"
	"github.com/clktmr/rpi/bcm/mmio"
)

const baseAddr uintptr = cpu.IOBase + 0x21_5000

type lineStatus uint32

const (
	dataReady lineStatus = 1 << 0
	rxOverrun lineStatus = 1 << 1
	txEmpty   lineStatus = 1 << 5 // transmit FIFO can accept at least one byte
	txIdle    lineStatus = 1 << 6 // transmit FIFO empty and last bit shifted out
)

const (
	auxMiniUART = 1 << 0 // AUXENB

	lcr8Bit = 0b11

	cntlRxEnable = 1 << 0
	cntlTxEnable = 1 << 1

	// 250 MHz / (8 * (270 + 1)) ~= 115200 baud
	baudDivisor = 270
)

type registers struct {
	irq     mmio.U32
	enables mmio.U32
	_       [14]mmio.U32

	io      mmio.U32
	ier     mmio.U32
	iir     mmio.U32
	lcr     mmio.U32
	mcr     mmio.U32
	lsr     mmio.R32[lineStatus] // read-only
	msr     mmio.U32             // read-only
	scratch mmio.U32
	cntl    mmio.U32
	stat    mmio.U32 // read-only
	baud    mmio.U32
}
