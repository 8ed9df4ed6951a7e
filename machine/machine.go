// Package machine describes the board's memory layout and implements the
// hooks the runtime expects from the target, most importantly the fatal
// error path.
package machine

import "github.com/clktmr/rpi/boot"

const (
	// BinaryStart is where the firmware loads images and where images
	// expect to be loaded.
	BinaryStart uintptr = 0x0008_0000

	// BootloaderStart is where the bootloader itself is linked.
	BootloaderStart uintptr = 0x0400_0000

	// MaxBinarySize is the free space between an image's start and the
	// bootloader.
	MaxBinarySize = BootloaderStart - BinaryStart

	// RAMEnd is the end of the memory shared with the GPU.
	RAMEnd uintptr = 0x3b40_0000

	// Reserved is the size of the area at the start of every binary which
	// holds the entry stub, later overwritten by the exception vectors, page
	// tables and exception stack. Text is linked right behind it.
	Reserved uintptr = 0x1_0000
)

// LoadWindow returns the memory an image is loaded into by the bootloader.
func LoadWindow() boot.Window {
	return boot.NewWindow(BinaryStart, BootloaderStart)
}
