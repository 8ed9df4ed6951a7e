//go:build tamago && arm

package machine

import (
	"runtime"
	_ "unsafe"

	"github.com/usbarmory/tamago/arm"

	"github.com/clktmr/rpi/bcm/cpu"
	"github.com/clktmr/rpi/bcm/timer"
	"github.com/clktmr/rpi/bcm/uart"
)

var core = &arm.CPU{}

//go:linkname ramStackOffset runtime.ramStackOffset
var ramStackOffset uint32 = 0x100

// hwinit runs before the Go runtime is initialized and must not allocate.
// The reserved area at ramStart takes the vectors and page tables.
//
//go:linkname hwinit runtime.hwinit
func hwinit() {
	start, _ := runtime.MemRegion()
	core.Init(uint32(start))
	core.EnableVFP()
	core.EnableSMP()
	core.InitMMU()
	core.EnableCache()
}

func init() {
	early = uart.Default()
}

//go:linkname nanotime1 runtime.nanotime1
func nanotime1() int64 {
	return int64(timer.System.Now())
}

//go:linkname printk runtime.printk
func printk(c byte) {
	if early == nil {
		return
	}
	if c == '\n' {
		early.WriteByte('\r')
	}
	early.WriteByte(c)
}

//go:linkname initRNG runtime.initRNG
func initRNG() {}

// getRandomData fills b from the free running system timer. There is no
// hardware entropy source, the values are only good for hash seeds.
//
//go:linkname getRandomData runtime.getRandomData
func getRandomData(b []byte) {
	x := uint64(timer.System.Now()) | 1
	for i := range b {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		b[i] = byte(x)
	}
}

// Jump makes the load window executable, writes back and disables the caches
// and branches to addr. The image sets up its own vectors and page tables.
func Jump(addr uintptr) {
	core.ConfigureMMU(0, uint32(BootloaderStart), 0, arm.MemoryRegion)
	core.FlushDataCache()
	core.DisableCache()
	core.FlushInstructionCache()
	cpu.Jump(addr)
}
