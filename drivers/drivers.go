// Builds upon the bcm package to provide shared access to the peripherals and
// common interfaces.
package drivers

import "io"

// TextWriter writes text to a serial terminal. Every line feed is preceded by
// a carriage return.
type TextWriter struct {
	W io.ByteWriter
}

func (w TextWriter) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if c == '\n' {
			if err = w.W.WriteByte('\r'); err != nil {
				return
			}
		}
		if err = w.W.WriteByte(c); err != nil {
			return
		}
		n++
	}
	return
}
