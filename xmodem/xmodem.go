// Package xmodem implements the XMODEM file transfer protocol with 128 byte
// packets and 8-bit checksums.
//
// The receiver starts a transfer by sending NAK. Every packet is answered
// with ACK, or NAK to request a retransmission. The end of the transfer is
// signaled by EOT, which is NAKed once and ACKed on repetition. Either side
// can abort with CAN.
//
// The last packet is padded with zeros, so the receiver always gets a
// multiple of PacketSize.
package xmodem

import (
	"errors"
	"fmt"
	"io"
)

const (
	SOH byte = 0x01
	EOT byte = 0x04
	ACK byte = 0x06
	NAK byte = 0x15
	CAN byte = 0x18
)

// PacketSize is the payload size of a packet.
const PacketSize = 128

// MaxRetries is the number of retransmissions of a packet before the transfer
// fails.
const MaxRetries = 10

var (
	ErrCanceled      = errors.New("xmodem: transfer canceled")
	ErrChecksum      = errors.New("xmodem: checksum mismatch")
	ErrPacketNumber  = errors.New("xmodem: unexpected packet number")
	ErrUnexpected    = errors.New("xmodem: unexpected byte")
	ErrTooManyErrors = errors.New("xmodem: too many retries")
	ErrShortBuffer   = errors.New("xmodem: destination buffer too small")
)

type Stage int

const (
	Waiting Stage = iota // waiting for the receiver to start
	Started
	Packet // packet was acknowledged
	Done
)

func (s Stage) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Started:
		return "started"
	case Packet:
		return "packet"
	case Done:
		return "done"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Progress is reported to a ProgressFunc during Transmit.
type Progress struct {
	Stage  Stage
	Packet uint8 // number of the acknowledged packet
	Bytes  int   // total bytes acknowledged
}

type ProgressFunc func(Progress)

// PaddedLen returns the number of bytes a receiver gets for an n byte
// transfer.
func PaddedLen(n int) int {
	return (n + PacketSize - 1) / PacketSize * PacketSize
}

func checksum(p []byte) (sum byte) {
	for _, b := range p {
		sum += b
	}
	return
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

// expect reads a byte and fails if it isn't b. CAN is reported as
// ErrCanceled.
func expect(r io.Reader, b byte) error {
	got, err := readByte(r)
	if err != nil {
		return err
	}
	switch got {
	case b:
		return nil
	case CAN:
		return ErrCanceled
	}
	return fmt.Errorf("%w %#02x, expected %#02x", ErrUnexpected, got, b)
}
