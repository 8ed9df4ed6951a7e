// The bootloader waits for an image on the serial line, loads it to
// machine.BinaryStart and runs it.
//
// The firmware starts it in AArch32 state, config.txt needs
//
//	arm_64bit=0
//	kernel_address=0x4000000
//
// Build it with
//
//	GOOS=tamago GOARCH=arm GOARM=7 go build -tags linkramstart -ldflags "-T 0x4010000 -R 0x1000 -X main.Build=$(date -u +%FT%TZ) -X main.Revision=$(git rev-parse --short HEAD)" ./cmd/bootloader
//
// then convert the ELF file to a raw binary with objcopy and prepend an entry
// stub padded to machine.Reserved bytes, which branches to the ELF entry
// point. Images are built the same way with the text at 0x90000 and sent
// with ttywrite.
package main

import (
	"fmt"

	"github.com/clktmr/rpi/bcm/uart"
	"github.com/clktmr/rpi/boot"
	"github.com/clktmr/rpi/drivers/console"
	"github.com/clktmr/rpi/machine"
)

var (
	Build    string
	Revision string
)

func main() {
	defer machine.Recover()

	transport := uart.Default()
	boot.New(transport, machine.LoadWindow(),
		boot.WithReadTimeout(boot.ReadTimeout),
		boot.WithLogger(boot.LoggerFunc(logf)),
		boot.WithJump(machine.Jump),
	).Run()
}

// logf prints to the console and waits until the text was sent, since the
// loaded image reinitializes the UART.
func logf(format string, a ...any) {
	g := console.Lock()
	defer g.Unlock()
	c := g.Value()
	fmt.Fprintf(c, "bootloader %s (%s): ", Revision, Build)
	fmt.Fprintf(c, format, a...)
	c.Flush()
}
