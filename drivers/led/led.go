// Package led drives the status LED on GPIO 16. It is the only output device
// of the bootloader, outcomes are signaled as blink patterns.
package led

import (
	"time"

	"github.com/clktmr/rpi/bcm/gpio"
	"github.com/clktmr/rpi/bcm/timer"
	"github.com/clktmr/rpi/spin"
)

// Pin is the GPIO pin the status LED is connected to.
const Pin = 16

var (
	bank  = gpio.Default
	sleep = timer.SpinSleep
)

// Status is the status LED. Its pin is configured as an output on first use.
type Status struct {
	out   gpio.Output
	ready bool
}

var status spin.Mutex[Status]

func (s *Status) output() gpio.Output {
	if !s.ready {
		s.out = bank.Pin(Pin).IntoOutput()
		s.ready = true
	}
	return s.out
}

func (s *Status) On()  { s.output().Set() }
func (s *Status) Off() { s.output().Clear() }

// Blink turns the LED on and off n times, each phase lasting period.
func (s *Status) Blink(n int, period time.Duration) {
	for range n {
		s.On()
		sleep(period)
		s.Off()
		sleep(period)
	}
}

func On() {
	g := status.Lock()
	defer g.Unlock()
	g.Value().On()
}

func Off() {
	g := status.Lock()
	defer g.Unlock()
	g.Value().Off()
}

func Blink(n int, period time.Duration) {
	g := status.Lock()
	defer g.Unlock()
	g.Value().Blink(n, period)
}

// Indicator blinks the status LED.
type Indicator struct{}

func (Indicator) Blink(n int, period time.Duration) { Blink(n, period) }
