// ttywrite sends a file over a serial line, usually to the bootloader.
//
//	ttywrite -i kernel.bin /dev/ttyUSB0
//
// The input is sent with XMODEM unless -r is given. With --monitor the
// target's output is printed afterwards until it reports a test result.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	"github.com/tarm/serial"
	"k8s.io/klog/v2"
)

type options struct {
	input    string
	baud     int
	timeout  int
	width    int
	stopBits int
	raw      bool
	retries  uint64
	monitor  bool
}

// openPort is replaced in tests.
var openPort = func(c *serial.Config) (io.ReadWriteCloser, error) {
	return serial.OpenPort(c)
}

func newCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "ttywrite [flags] <tty>",
		Short:        "Write a file to a serial line",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "input file (defaults to stdin)")
	f.IntVarP(&opts.baud, "baud", "b", 115200, "baud rate")
	f.IntVarP(&opts.timeout, "timeout", "t", 10, "read timeout in seconds")
	f.IntVarP(&opts.width, "width", "w", 8, "data bits per character (5-8)")
	f.IntVarP(&opts.stopBits, "stop-bits", "s", 1, "number of stop bits (1 or 2)")
	f.BoolVarP(&opts.raw, "raw", "r", false, "write the input as-is instead of using XMODEM")
	f.Uint64Var(&opts.retries, "retries", 3, "number of retries of failed transfers")
	f.BoolVar(&opts.monitor, "monitor", false, "print the target's output after writing and exit with its test result")

	fs := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(fs)
	cmd.PersistentFlags().AddGoFlagSet(fs)

	return cmd
}

func (o *options) serialConfig(name string) (*serial.Config, error) {
	if o.width < 5 || o.width > 8 {
		return nil, fmt.Errorf("invalid character width %d", o.width)
	}
	var stop serial.StopBits
	switch o.stopBits {
	case 1:
		stop = serial.Stop1
	case 2:
		stop = serial.Stop2
	default:
		return nil, fmt.Errorf("invalid number of stop bits %d", o.stopBits)
	}
	if o.baud <= 0 {
		return nil, fmt.Errorf("invalid baud rate %d", o.baud)
	}
	return &serial.Config{
		Name:        name,
		Baud:        o.baud,
		ReadTimeout: time.Duration(o.timeout) * time.Second,
		Size:        byte(o.width),
		Parity:      serial.ParityNone,
		StopBits:    stop,
	}, nil
}

func run(stdout io.Writer, stdin io.Reader, tty string, opts *options) error {
	config, err := opts.serialConfig(tty)
	if err != nil {
		return err
	}

	in := stdin
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	port, err := openPort(config)
	if err != nil {
		return fmt.Errorf("opening %s: %w", tty, err)
	}
	defer port.Close()
	klog.V(1).Infof("opened %s at %d baud", tty, opts.baud)

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), opts.retries)
	n, err := upload(stdout, port, data, opts.raw, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d bytes to %s\n", n, tty)

	if opts.monitor {
		return monitor(stdout, &retryReader{port})
	}
	return nil
}

// retryReader hides read timeouts of an idle port, which are reported as
// io.EOF.
type retryReader struct {
	r io.Reader
}

func (r *retryReader) Read(p []byte) (int, error) {
	for {
		n, err := r.r.Read(p)
		if n > 0 || err != io.EOF {
			return n, err
		}
	}
}

func main() {
	defer klog.Flush()
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
