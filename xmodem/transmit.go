package xmodem

import (
	"fmt"
	"io"
)

// Transmit sends everything read from src to the receiver on rw and returns
// the number of payload bytes sent. progress may be nil.
//
// While waiting for the receiver to start, bytes other than NAK are ignored.
// This includes CAN left over from a previous, canceled transfer.
func Transmit(src io.Reader, rw io.ReadWriter, progress ProgressFunc) (n int, err error) {
	report := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}

	report(Progress{Stage: Waiting})
	if err = waitForStart(rw); err != nil {
		return 0, err
	}
	report(Progress{Stage: Started})

	var packet [PacketSize + 4]byte // SOH, num, ^num, data, checksum
	num := uint8(1)
	for {
		data := packet[3 : PacketSize+3]
		nn, err := io.ReadFull(src, data)
		if err == io.EOF {
			break
		} else if err != nil && err != io.ErrUnexpectedEOF {
			cancel(rw)
			return n, err
		}
		clear(data[nn:])

		packet[0], packet[1], packet[2] = SOH, num, ^num
		packet[PacketSize+3] = checksum(data)
		if err = sendPacket(rw, packet[:]); err != nil {
			return n, err
		}

		n += nn
		report(Progress{Stage: Packet, Packet: num, Bytes: n})
		num++
	}

	if err = writeByte(rw, EOT); err != nil {
		return n, err
	}
	if err = expect(rw, NAK); err != nil {
		return n, err
	}
	if err = writeByte(rw, EOT); err != nil {
		return n, err
	}
	if err = expect(rw, ACK); err != nil {
		return n, err
	}

	report(Progress{Stage: Done, Bytes: n})
	return n, nil
}

func waitForStart(r io.Reader) error {
	for {
		b, err := readByte(r)
		if err != nil {
			return err
		}
		if b == NAK {
			return nil
		}
	}
}

func sendPacket(rw io.ReadWriter, packet []byte) error {
	for range MaxRetries + 1 {
		if _, err := rw.Write(packet); err != nil {
			return err
		}
		reply, err := readByte(rw)
		if err != nil {
			return err
		}
		switch reply {
		case ACK:
			return nil
		case NAK:
			continue
		case CAN:
			return ErrCanceled
		default:
			cancel(rw)
			return fmt.Errorf("%w %#02x, expected ACK", ErrUnexpected, reply)
		}
	}
	cancel(rw)
	return ErrTooManyErrors
}
