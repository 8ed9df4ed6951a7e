package cpu

func jump(addr uintptr)

// WaitForEvent puts the core into low-power state until the next event.
func WaitForEvent()
