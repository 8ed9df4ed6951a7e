// The kernel greets on the console and runs an interactive shell. It's
// meant to be loaded by the bootloader:
//
//	GOOS=tamago GOARCH=arm GOARM=7 go build -ldflags "-T 0x90000 -R 0x1000" ./cmd/kernel
//	ttywrite -i kernel.bin /dev/ttyUSB0
//
// where kernel.bin is the raw binary with the entry stub, see the bootloader.
package main

import (
	"errors"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/clktmr/rpi/bcm/timer"
	"github.com/clktmr/rpi/drivers/console"
	"github.com/clktmr/rpi/drivers/led"
	"github.com/clktmr/rpi/machine"
	"github.com/clktmr/rpi/shell"
)

var (
	Build    string
	Revision string
)

func main() {
	defer machine.Recover()

	console.Printf("kernel %s (%s) %s/%s\n", Revision, Build, runtime.GOOS, runtime.GOARCH)

	sh := shell.New(console.Terminal, ">")
	sh.Handle("uptime", uptime)
	sh.Handle("blink", blink)
	sh.Handle("help", func(w io.Writer, args []string) error {
		for _, name := range sh.Commands() {
			io.WriteString(w, name+"\n")
		}
		return nil
	})

	err := sh.Run()
	panic(err)
}

func uptime(w io.Writer, args []string) error {
	_, err := io.WriteString(w, timer.System.Now().Truncate(time.Millisecond).String()+"\n")
	return err
}

func blink(w io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: blink <count>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	led.Blink(n, 100*time.Millisecond)
	return nil
}
