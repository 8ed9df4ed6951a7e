package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"k8s.io/klog/v2"

	"github.com/clktmr/rpi/firmware"
	"github.com/clktmr/rpi/xmodem"
)

// upload writes data to rw and returns the number of bytes written. Failed
// XMODEM transfers are retried according to b, raw writes are not retried.
func upload(stdout io.Writer, rw io.ReadWriter, data []byte, raw bool, b backoff.BackOff) (int, error) {
	if raw {
		fmt.Fprintf(stdout, "sending %v\n", firmware.Summarize(data))
		return rw.Write(data)
	}

	// The receiver sees the zero padded image.
	padded := make([]byte, xmodem.PaddedLen(len(data)))
	copy(padded, data)
	fmt.Fprintf(stdout, "sending %v\n", firmware.Summarize(padded))

	var n int
	attempt := 0
	op := func() (err error) {
		attempt++
		n, err = xmodem.Transmit(bytes.NewReader(data), rw, progress)
		if errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		klog.Warningf("transfer %d failed: %v, retrying in %v", attempt, err, next)
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return n, fmt.Errorf("xmodem: transfer failed after %d attempts: %w", attempt, err)
	}
	return n, nil
}

func progress(p xmodem.Progress) {
	switch p.Stage {
	case xmodem.Packet:
		klog.V(2).Infof("packet %d acknowledged, %d bytes", p.Packet, p.Bytes)
	default:
		klog.V(1).Infof("%v, %d bytes", p.Stage, p.Bytes)
	}
}
