package cpu

// Jump branches unconditionally to addr. No state is saved or flushed and
// there is no way back, so Jump never returns.
func Jump(addr uintptr) {
	jump(addr)
	for {
		WaitForEvent()
	}
}
