package boot

import (
	"io"
	"time"

	"github.com/clktmr/rpi/bcm/cpu"
	"github.com/clktmr/rpi/bcm/timer"
	"github.com/clktmr/rpi/drivers/led"
	"github.com/clktmr/rpi/xmodem"
)

// Receiver receives an image from rw into dst and returns its size.
type Receiver func(rw io.ReadWriter, dst []byte) (int, error)

// Indicator signals the loader's state to the user.
type Indicator interface {
	Blink(n int, period time.Duration)
}

// Logger receives a message after an image was loaded.
type Logger interface {
	Printf(format string, a ...any)
}

// LoggerFunc adapts a printf-like function to a Logger.
type LoggerFunc func(format string, a ...any)

func (f LoggerFunc) Printf(format string, a ...any) { f(format, a...) }

// Pattern is a number of blinks with the given on and off period.
type Pattern struct {
	Count  int
	Period time.Duration
}

var (
	Ready   = Pattern{5, 450 * time.Millisecond}
	Success = Pattern{2, 100 * time.Millisecond}
	Failure = Pattern{10, 100 * time.Millisecond}
)

const (
	// Pause is the time between a signaled outcome and the jump or retry.
	Pause = 2 * time.Second

	// ReadTimeout is the transport's read timeout while loading.
	ReadTimeout = time.Second
)

type config struct {
	receiver    Receiver
	indicator   Indicator
	sleep       func(time.Duration)
	jump        func(addr uintptr)
	readTimeout time.Duration
	logger      Logger
	observer    func(State)

	ready, success, failure Pattern
}

func defaultConfig() config {
	return config{
		receiver:    xmodem.Receive,
		indicator:   led.Indicator{},
		sleep:       timer.SpinSleep,
		jump:        cpu.Jump,
		readTimeout: ReadTimeout,
		ready:       Ready,
		success:     Success,
		failure:     Failure,
	}
}

// Option configures a Loader.
type Option func(*config)

// WithReceiver sets the transfer protocol. Defaults to xmodem.Receive.
func WithReceiver(r Receiver) Option {
	return func(c *config) { c.receiver = r }
}

// WithIndicator sets where blink patterns are shown. Defaults to the status
// LED.
func WithIndicator(i Indicator) Option {
	return func(c *config) { c.indicator = i }
}

// WithSleep replaces timer.SpinSleep for the pauses after an attempt.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *config) { c.sleep = sleep }
}

// WithJump replaces cpu.Jump. If jump returns, Run panics.
func WithJump(jump func(addr uintptr)) Option {
	return func(c *config) { c.jump = jump }
}

// WithReadTimeout sets the read timeout of transports implementing
// SetReadTimeout. Zero leaves the transport's timeout unchanged.
func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { c.readTimeout = d }
}

// WithLogger prints a summary of each loaded image before jumping to it.
//
// Example:
//
//	l := boot.New(uart, win, boot.WithLogger(boot.LoggerFunc(console.Printf)))
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithObserver sets a function called on every state change.
func WithObserver(f func(State)) Option {
	return func(c *config) { c.observer = f }
}

// WithPatterns replaces the blink patterns for readiness, success and
// failure.
func WithPatterns(ready, success, failure Pattern) Option {
	return func(c *config) {
		c.ready, c.success, c.failure = ready, success, failure
	}
}
