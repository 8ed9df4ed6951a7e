package gpio

import (
	"fmt"
	"testing"
	"unsafe"
)

func newTestBank() (*Bank, *registers) {
	r := &registers{}
	return NewBank(unsafe.Pointer(r)), r
}

func TestLayout(t *testing.T) {
	var r registers
	tests := []struct {
		name     string
		offset   uintptr
		expected uintptr
	}{
		{"fsel", unsafe.Offsetof(r.fsel), 0x00},
		{"set", unsafe.Offsetof(r.set), 0x1c},
		{"clr", unsafe.Offsetof(r.clr), 0x28},
		{"lev", unsafe.Offsetof(r.lev), 0x34},
		{"eds", unsafe.Offsetof(r.eds), 0x40},
		{"afen", unsafe.Offsetof(r.afen), 0x88},
		{"pud", unsafe.Offsetof(r.pud), 0x94},
		{"pudclk", unsafe.Offsetof(r.pudclk), 0x98},
	}
	for _, tc := range tests {
		if tc.offset != tc.expected {
			t.Errorf("%s: offset %#x, expected %#x", tc.name, tc.offset, tc.expected)
		}
	}
}

func TestSetClear(t *testing.T) {
	for n := uint8(0); n <= MaxPin; n++ {
		bank, r := newTestBank()
		out := bank.Pin(n).IntoOutput()
		if out.Number() != n {
			t.Fatalf("pin %d: Number() returned %d", n, out.Number())
		}

		reg, other := n/32, 1-n/32
		out.Set()
		if got := r.set[reg].Load(); got != 1<<(n%32) {
			t.Errorf("pin %d: SET%d = %#x", n, reg, got)
		}
		if got := r.set[other].Load(); got != 0 {
			t.Errorf("pin %d: SET%d modified: %#x", n, other, got)
		}
		if got := r.clr[reg].Load(); got != 0 {
			t.Errorf("pin %d: Set wrote CLR%d: %#x", n, reg, got)
		}

		out.Clear()
		if got := r.clr[reg].Load(); got != 1<<(n%32) {
			t.Errorf("pin %d: CLR%d = %#x", n, reg, got)
		}
		if got := r.clr[other].Load(); got != 0 {
			t.Errorf("pin %d: CLR%d modified: %#x", n, other, got)
		}
	}
}

func TestInvalidPin(t *testing.T) {
	for n := MaxPin + 1; n <= 255; n++ {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("pin %d: expected panic", n)
				}
			}()
			New(uint8(n))
		}()
	}
}

func TestFunctionSelect(t *testing.T) {
	functions := []Function{FuncInput, FuncOutput, Alt0, Alt1, Alt2, Alt3, Alt4, Alt5}
	const pattern = 0x2aaa_aaaa

	for n := uint8(0); n <= MaxPin; n++ {
		for _, fn := range functions {
			t.Run(fmt.Sprintf("pin%d/%03b", n, fn), func(t *testing.T) {
				bank, r := newTestBank()
				for i := range r.fsel {
					r.fsel[i].Store(pattern)
				}

				bank.Pin(n).IntoAlt(fn)

				for i := range r.fsel {
					got := r.fsel[i].Load()
					if i != int(n/10) {
						if got != pattern {
							t.Fatalf("FSEL%d modified: %#x", i, got)
						}
						continue
					}
					shift := 3 * uint32(n%10)
					if field := Function(got >> shift & 0b111); field != fn {
						t.Fatalf("field is %03b, expected %03b", field, fn)
					}
					mask := uint32(0b111) << shift
					if got&^mask != pattern&^mask {
						t.Fatalf("fields of other pins modified: %#x", got)
					}
				}
			})
		}
	}
}

func TestLevel(t *testing.T) {
	bank, r := newTestBank()
	in := bank.Pin(47).IntoInput()
	if in.Level() {
		t.Fatal("expected low")
	}
	r.lev[1].Store(1 << 15)
	if !in.Level() {
		t.Fatal("expected high")
	}
	r.lev[1].Store(^uint32(1 << 15))
	if in.Level() {
		t.Fatal("level of other pin reported")
	}
	if got := r.fsel[4].Load() >> 21 & 0b111; got != uint32(FuncInput) {
		t.Fatalf("function %03b", got)
	}
}

func TestConsumed(t *testing.T) {
	bank, _ := newTestBank()
	pin := bank.Pin(16)
	pin.IntoOutput()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second transition")
		}
	}()
	pin.IntoInput()
}
