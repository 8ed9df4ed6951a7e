//go:build tamago && arm && !linkramstart

package machine

import _ "unsafe"

// Images own all memory from their load address up, including the
// bootloader's.
//
//go:linkname ramStart runtime.ramStart
var ramStart uint32 = uint32(BinaryStart)

//go:linkname ramSize runtime.ramSize
var ramSize uint32 = uint32(RAMEnd - BinaryStart)
