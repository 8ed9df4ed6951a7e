package xmodem

import (
	"fmt"
	"io"

	"github.com/clktmr/rpi/debug"
)

// Receive receives a file from rw into dst and returns the number of bytes
// received. Receive never writes beyond len(dst). If the file doesn't fit the
// transfer is canceled and ErrShortBuffer is returned.
//
// Receive doesn't time out by itself, the reads of rw must.
func Receive(rw io.ReadWriter, dst []byte) (n int, err error) {
	var packet [PacketSize + 3]byte // num, ^num, data, checksum
	expected := uint8(1)
	retries := 0

	if err = writeByte(rw, NAK); err != nil {
		return 0, err
	}

	for {
		start, err := readByte(rw)
		if err != nil {
			return n, err
		}

		switch start {
		case SOH:
		case EOT:
			if err = writeByte(rw, NAK); err != nil {
				return n, err
			}
			if err = expect(rw, EOT); err != nil {
				return n, err
			}
			debug.Assert(n%PacketSize == 0, "xmodem: partial packet")
			return n, writeByte(rw, ACK)
		case CAN:
			return n, ErrCanceled
		default:
			cancel(rw)
			return n, fmt.Errorf("%w %#02x, expected SOH", ErrUnexpected, start)
		}

		if _, err = io.ReadFull(rw, packet[:]); err != nil {
			return n, err
		}
		num, inv, data, sum := packet[0], packet[1], packet[2:PacketSize+2], packet[PacketSize+2]

		if num != ^inv {
			cancel(rw)
			return n, fmt.Errorf("%w: %d, complement %d", ErrPacketNumber, num, inv)
		}
		if checksum(data) != sum {
			retries++
			if retries > MaxRetries {
				cancel(rw)
				return n, fmt.Errorf("%w: %w in packet %d", ErrTooManyErrors, ErrChecksum, num)
			}
			if err = writeByte(rw, NAK); err != nil {
				return n, err
			}
			continue
		}

		if num == expected-1 {
			// Our ACK got lost, the packet was retransmitted.
			if err = writeByte(rw, ACK); err != nil {
				return n, err
			}
			continue
		}
		if num != expected {
			cancel(rw)
			return n, fmt.Errorf("%w: %d, expected %d", ErrPacketNumber, num, expected)
		}

		if len(dst)-n < PacketSize {
			cancel(rw)
			return n, ErrShortBuffer
		}
		n += copy(dst[n:], data)
		expected++
		retries = 0

		if err = writeByte(rw, ACK); err != nil {
			return n, err
		}
	}
}

func cancel(w io.Writer) {
	w.Write([]byte{CAN, CAN})
}
