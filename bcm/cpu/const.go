// Package cpu provides the memory layout and the few instructions of the
// Cortex-A53 which can't be expressed in Go. The core runs in AArch32 state.
package cpu

import "unsafe"

// IOBase is the physical address where the peripherals are mapped to.
const IOBase uintptr = 0x3f00_0000

// Address returns the address of the first element of s.
func Address(s []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))
}
