package machine

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/clktmr/rpi/bcm/cpu"
	"github.com/clktmr/rpi/drivers/console"
)

var park = func() {
	for {
		cpu.WaitForEvent()
	}
}

// Recover halts the machine if the calling goroutine panics. It must be
// deferred directly by main.
func Recover() {
	if v := recover(); v != nil {
		Halt(v, debug.Stack())
	}
}

// Halt prints a report of the panic value v and its stack to the console and
// parks the core forever. If the console is held, the report is written
// directly to the UART.
func Halt(v any, stack []byte) {
	if g, ok := console.TryLock(); ok {
		c := g.Value()
		Report(c, v, stack)
		c.Flush()
	} else {
		Report(Failsafe(), v, stack)
	}
	park()
}

// Report writes the panic report for v to w.
func Report(w io.Writer, v any, stack []byte) {
	fmt.Fprint(w, "\n    The pi is overdone.\n\n---------- PANIC ----------\n")
	if file, line, ok := panicSite(stack); ok {
		fmt.Fprintf(w, "FILE: %s\nLINE: %s\n", file, line)
	} else {
		fmt.Fprintln(w, "No idea where the panic occurred")
	}
	fmt.Fprintf(w, "%v\n\n", v)
	w.Write(stack)
}

// panicSite returns the location of the panic call from a stack as returned
// by debug.Stack inside a deferred function.
func panicSite(stack []byte) (file, line string, ok bool) {
	lines := strings.Split(string(stack), "\n")
	for i, l := range lines {
		if !strings.HasPrefix(l, "panic(") || i+3 >= len(lines) {
			continue
		}
		// panic(...)
		//	.../runtime/panic.go:NNN +0x...
		// caller(...)
		//	file:line +0x...
		loc := strings.TrimSpace(lines[i+3])
		loc, _, _ = strings.Cut(loc, " ")
		sep := strings.LastIndexByte(loc, ':')
		if sep < 0 {
			return "", "", false
		}
		return loc[:sep], loc[sep+1:], true
	}
	return "", "", false
}
