//go:build !(tamago && arm)

package machine

import "github.com/clktmr/rpi/bcm/cpu"

// Jump branches to addr, see cpu.Jump.
func Jump(addr uintptr) {
	cpu.Jump(addr)
}
