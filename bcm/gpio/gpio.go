package gpio

import (
	"fmt"

	"github.com/usbarmory/tamago/bits"

	"github.com/clktmr/rpi/debug"
)

// MaxPin is the highest pin number.
const MaxPin = 53

// Function selects what drives a pin.
type Function uint32

const (
	FuncInput  Function = 0b000
	FuncOutput Function = 0b001
	Alt0       Function = 0b100
	Alt1       Function = 0b101
	Alt2       Function = 0b110
	Alt3       Function = 0b111
	Alt4       Function = 0b011
	Alt5       Function = 0b010
)

const fselMask = 0b111

type handle struct {
	n    uint8
	regs *registers
}

// Number returns the pin number.
func (h handle) Number() uint8 { return h.n }

// Pin is a pin which wasn't configured yet. It must be turned into an Input,
// Output or Alt before it can be used. Each of these only provide the
// operations valid in their mode, so using a pin in the wrong mode doesn't
// compile.
//
// A Pin can only be configured once. Configuring it consumes the Pin, any
// further attempt panics.
type Pin struct {
	handle
	used bool
}

// New returns pin number n of the default bank. It panics if n exceeds
// MaxPin.
func New(n uint8) *Pin {
	return Default.Pin(n)
}

// Pin returns pin number n of b. It panics if n exceeds MaxPin.
func (b *Bank) Pin(n uint8) *Pin {
	if n > MaxPin {
		panic(fmt.Sprintf("gpio: pin %d exceeds maximum of %d", n, MaxPin))
	}
	return &Pin{handle: handle{n: n, regs: b.regs}}
}

func (p *Pin) take() handle {
	if p.used {
		panic(fmt.Sprintf("gpio: pin %d already configured", p.n))
	}
	p.used = true
	return p.handle
}

// IntoAlt routes the alternate function fn to the pin. The function select
// fields of the other pins sharing the register are preserved.
func (p *Pin) IntoAlt(fn Function) Alt {
	debug.Assert(uint32(fn) <= fselMask, "gpio: invalid function")
	h := p.take()
	reg := &h.regs.fsel[h.n/10]
	v := reg.Load()
	bits.SetN(&v, 3*int(h.n%10), fselMask, uint32(fn)&fselMask)
	reg.Store(v)
	return Alt{h}
}

// IntoOutput configures the pin as an output.
func (p *Pin) IntoOutput() Output {
	return Output(p.IntoAlt(FuncOutput))
}

// IntoInput configures the pin as an input.
func (p *Pin) IntoInput() Input {
	return Input(p.IntoAlt(FuncInput))
}

// Alt is a pin driven by one of the alternate functions.
type Alt struct{ handle }

// Output is a pin driven by software.
type Output struct{ handle }

// Set drives the pin high.
func (o Output) Set() {
	o.regs.set[o.n/32].Store(1 << (o.n % 32))
}

// Clear drives the pin low.
func (o Output) Clear() {
	o.regs.clr[o.n/32].Store(1 << (o.n % 32))
}

// Input is a pin which is sampled by software.
type Input struct{ handle }

// Level returns true if the pin is high.
func (i Input) Level() bool {
	return i.regs.lev[i.n/32].LoadBits(1<<(i.n%32)) != 0
}
