//go:build !arm

package cpu

import "runtime"

func jump(addr uintptr) {
	panic("cpu: jump not supported on " + runtime.GOARCH)
}

// WaitForEvent puts the core into low-power state until the next event. On
// other architectures it only yields the processor.
func WaitForEvent() {
	runtime.Gosched()
}
