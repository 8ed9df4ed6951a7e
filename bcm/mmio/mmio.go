// Package mmio provides typed access to memory mapped I/O registers.
//
// Every Load and Store is exactly one 32-bit bus access. The compiler must
// not cache, elide, merge or reorder them, so they are implemented with
// sync/atomic, which gives these guarantees for aligned 32-bit words on all
// targets. The bit manipulating methods are a Load followed by a Store. They
// are not atomic with respect to other bus masters, which is fine as long as
// a register is owned by a single driver.
package mmio

import (
	"sync/atomic"
	"unsafe"
)

// U32 is a 32-bit wide register.
type U32 struct {
	r uint32
}

//go:nosplit
func (r *U32) Load() uint32 {
	return atomic.LoadUint32(&r.r)
}

//go:nosplit
func (r *U32) Store(v uint32) {
	atomic.StoreUint32(&r.r, v)
}

// LoadBits returns the register value masked by mask.
func (r *U32) LoadBits(mask uint32) uint32 {
	return r.Load() & mask
}

// StoreBits replaces the bits selected by mask with the corresponding bits of
// v and leaves all other bits untouched.
func (r *U32) StoreBits(mask uint32, v uint32) {
	r.Store(r.Load()&^mask | v&mask)
}

func (r *U32) SetBits(mask uint32) {
	r.Store(r.Load() | mask)
}

func (r *U32) ClearBits(mask uint32) {
	r.Store(r.Load() &^ mask)
}

// Addr returns the address of the register.
func (r *U32) Addr() uintptr {
	return uintptr(unsafe.Pointer(r))
}

// R32 is a 32-bit wide register holding values of type T, usually a set of
// flags.
type R32[T ~uint32] struct {
	U32
}

//go:nosplit
func (r *R32[T]) Load() T {
	return T(r.U32.Load())
}

//go:nosplit
func (r *R32[T]) Store(v T) {
	r.U32.Store(uint32(v))
}

func (r *R32[T]) LoadBits(mask T) T {
	return T(r.U32.LoadBits(uint32(mask)))
}

func (r *R32[T]) StoreBits(mask T, v T) {
	r.U32.StoreBits(uint32(mask), uint32(v))
}

func (r *R32[T]) SetBits(mask T) {
	r.U32.SetBits(uint32(mask))
}

func (r *R32[T]) ClearBits(mask T) {
	r.U32.ClearBits(uint32(mask))
}
