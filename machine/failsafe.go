package machine

import (
	"io"

	"github.com/clktmr/rpi/bcm/uart"
	"github.com/clktmr/rpi/drivers"
)

var early *uart.MiniUART

// Failsafe returns a text writer to the mini UART which bypasses the console
// lock. Only intended for reporting fatal errors.
func Failsafe() io.Writer {
	if early == nil {
		early = uart.Default()
	}
	return drivers.TextWriter{W: early}
}
