package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
	"github.com/tarm/serial"

	"github.com/clktmr/rpi/internal/loopback"
	"github.com/clktmr/rpi/xmodem"
)

func TestSerialConfig(t *testing.T) {
	opts := options{baud: 115200, timeout: 10, width: 8, stopBits: 2}
	c, err := opts.serialConfig("/dev/ttyUSB0")
	require.NoError(t, err)
	require.Equal(t, &serial.Config{
		Name:        "/dev/ttyUSB0",
		Baud:        115200,
		ReadTimeout: 10 * time.Second,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop2,
	}, c)

	for _, bad := range []options{
		{baud: 115200, width: 9, stopBits: 1},
		{baud: 115200, width: 8, stopBits: 3},
		{baud: 0, width: 8, stopBits: 1},
	} {
		_, err := bad.serialConfig("tty")
		require.Error(t, err, "%+v", bad)
	}
}

func TestFlags(t *testing.T) {
	cmd := newCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-i", "kernel.bin", "-b", "9600", "-r", "--retries", "5"}))

	for name, want := range map[string]string{
		"input":     "kernel.bin",
		"baud":      "9600",
		"timeout":   "10",
		"width":     "8",
		"stop-bits": "1",
		"raw":       "true",
		"retries":   "5",
	} {
		require.Equal(t, want, cmd.Flags().Lookup(name).Value.String(), name)
	}
	require.NotNil(t, cmd.Flags().Lookup("v"), "klog flags not registered")
}

// Sends a file through a pseudo terminal like it would through a USB serial
// adapter.
func TestPseudoTerminal(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pseudo terminals: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	input := filepath.Join(t.TempDir(), "kernel.bin")
	data := bytes.Repeat([]byte{0x00, 0x7f, 0x0a, 0x0d, 0x18, 0xff}, 100)
	require.NoError(t, os.WriteFile(input, data, 0o644))

	// The receiver may only start once the terminal is in raw mode, NAK is
	// the line kill character otherwise.
	opened := make(chan struct{})
	open := openPort
	openPort = func(c *serial.Config) (io.ReadWriteCloser, error) {
		defer close(opened)
		return open(c)
	}
	t.Cleanup(func() { openPort = open })

	received := loopback.Go(func() []byte {
		<-opened
		dst := make([]byte, 1024)
		n, err := xmodem.Receive(ptmx, dst)
		if err != nil {
			t.Errorf("receive: %v", err)
		}
		return dst[:n]
	})

	var stdout bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"-i", input, "-t", "5", tty.Name()})
	require.NoError(t, loopback.Await(t, loopback.Go(cmd.Execute), ptmx))

	got := loopback.Await(t, received, ptmx)
	require.Equal(t, data, got[:len(data)])
	require.Contains(t, stdout.String(), "wrote 600 bytes to "+tty.Name())
}
