// Package loopback provides an in-memory serial line for tests. Writes never
// block, reads block until data is available or the line is closed.
package loopback

import (
	"bytes"
	"io"
	"sync"
)

type buffer struct {
	mtx    sync.Mutex
	cond   sync.Cond
	buf    bytes.Buffer
	closed bool
}

func newBuffer() *buffer {
	b := &buffer{}
	b.cond.L = &b.mtx
	return b
}

func (b *buffer) write(p []byte) (int, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if b.closed {
		return 0, io.ErrClosedPipe
	}
	n, _ := b.buf.Write(p)
	b.cond.Broadcast()
	return n, nil
}

func (b *buffer) read(p []byte) (int, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	for b.buf.Len() == 0 && !b.closed {
		b.cond.Wait()
	}
	if b.buf.Len() == 0 {
		return 0, io.EOF
	}
	return b.buf.Read(p)
}

func (b *buffer) close() {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.closed = true
	b.cond.Broadcast()
}

// End is one end of a line.
type End struct {
	rx, tx *buffer
}

// New returns both ends of a new line.
func New() (*End, *End) {
	a, b := newBuffer(), newBuffer()
	return &End{rx: a, tx: b}, &End{rx: b, tx: a}
}

func (e *End) Read(p []byte) (int, error)  { return e.rx.read(p) }
func (e *End) Write(p []byte) (int, error) { return e.tx.write(p) }

// Close closes the line in both directions. Pending reads return io.EOF once
// all data was consumed.
func (e *End) Close() error {
	e.rx.close()
	e.tx.close()
	return nil
}
