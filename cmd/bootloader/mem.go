//go:build tamago && arm && linkramstart

package main

import (
	_ "unsafe"

	"github.com/clktmr/rpi/machine"
)

// The bootloader's memory starts above the load window, so loading an image
// never overwrites it.
//
//go:linkname ramStart runtime.ramStart
var ramStart uint32 = uint32(machine.BootloaderStart)

//go:linkname ramSize runtime.ramSize
var ramSize uint32 = uint32(machine.RAMEnd - machine.BootloaderStart)
