package boot

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/clktmr/rpi/firmware"
)

var (
	ErrImageTooLarge = errors.New("boot: image exceeds load window")
	ErrEmptyImage    = errors.New("boot: received empty image")
)

type State int

const (
	Waiting   State = iota // waiting for the sender
	Receiving              // first byte received
	Jumping                // image loaded, about to branch
	Retrying               // transfer failed
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Receiving:
		return "receiving"
	case Jumping:
		return "jumping"
	case Retrying:
		return "retrying"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Loader loads an image into a window and runs it.
type Loader struct {
	transport io.ReadWriter
	win       Window
	cfg       config
	state     State
}

func New(transport io.ReadWriter, win Window, opts ...Option) *Loader {
	l := &Loader{transport: transport, win: win, cfg: defaultConfig()}
	for _, opt := range opts {
		opt(&l.cfg)
	}
	return l
}

// Run signals readiness and loads images until one was received without
// error. It then branches to the window's start and never returns.
func (l *Loader) Run() {
	l.blink(l.cfg.ready)

	if t, ok := l.transport.(interface{ SetReadTimeout(time.Duration) }); ok && l.cfg.readTimeout > 0 {
		t.SetReadTimeout(l.cfg.readTimeout)
	}

	for {
		image, err := l.Receive()
		if err != nil {
			l.setState(Retrying)
			l.blink(l.cfg.failure)
			l.cfg.sleep(Pause)
			continue
		}

		l.setState(Jumping)
		l.blink(l.cfg.success)
		if l.cfg.logger != nil {
			l.cfg.logger.Printf("boot: loaded %v at %#x\n", firmware.Summarize(image), l.win.Addr())
		}
		l.cfg.sleep(Pause)
		l.cfg.jump(l.win.Addr())
		panic("boot: jump returned")
	}
}

// Receive runs a single transfer into the window and returns the received
// image. A transfer without data fails with ErrEmptyImage.
func (l *Loader) Receive() ([]byte, error) {
	l.setState(Waiting)
	dst := l.win.Bytes()
	n, err := l.cfg.receiver(&observedReader{l.transport, l}, dst)
	if err != nil {
		return nil, err
	}
	if n > len(dst) {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrImageTooLarge, n, len(dst))
	}
	if n == 0 {
		return nil, ErrEmptyImage
	}
	return dst[:n], nil
}

// State returns the state of the last attempt.
func (l *Loader) State() State { return l.state }

func (l *Loader) setState(s State) {
	l.state = s
	if l.cfg.observer != nil {
		l.cfg.observer(s)
	}
}

func (l *Loader) blink(p Pattern) {
	if l.cfg.indicator != nil && p.Count > 0 {
		l.cfg.indicator.Blink(p.Count, p.Period)
	}
}

// observedReader moves the loader to Receiving on the first byte read.
type observedReader struct {
	io.ReadWriter
	l *Loader
}

func (r *observedReader) Read(p []byte) (int, error) {
	n, err := r.ReadWriter.Read(p)
	if n > 0 && r.l.state == Waiting {
		r.l.setState(Receiving)
	}
	return n, err
}
