// Package firmware describes images transferred to the bootloader.
package firmware

import (
	"fmt"

	"github.com/sigurn/crc8"
)

var table = crc8.MakeTable(crc8.CRC8)

// Fingerprint returns the CRC-8 of p. It is printed by the bootloader and the
// upload tool, so an operator can tell whether the image arrived unchanged.
func Fingerprint(p []byte) uint8 {
	return crc8.Checksum(p, table)
}

// Summary identifies an image.
type Summary struct {
	Size int
	CRC  uint8
}

func Summarize(p []byte) Summary {
	return Summary{Size: len(p), CRC: Fingerprint(p)}
}

func (s Summary) String() string {
	return fmt.Sprintf("%d bytes, crc8 %#02x", s.Size, s.CRC)
}
