package kernel

// switchTo updates current to inIdx before invoking the HAL's save/
// restore primitive, so that an interrupt taken during the switch sees
// a coherent current (§4.3). This is the voluntary form: the outgoing
// process's registers are saved and it is resumed by a later switchTo
// naming it again. Must be called with the kernel mutex NOT held — the
// HAL may park the calling goroutine here until it is rescheduled.
func (k *Kernel) switchTo(inIdx int) {
	k.mu.Lock()
	outIdx := k.current
	k.current = inIdx
	outRegs := k.table[outIdx].Regs
	inRegs := k.table[inIdx].Regs
	k.mu.Unlock()

	k.hal.ContextSwitch(outRegs, inRegs)
}

// switchToTerminal is the terminal form: the outgoing process is gone
// for good, so a nil outgoing snapshot is passed to the HAL. Does not
// return.
func (k *Kernel) switchToTerminal(inIdx int) {
	k.mu.Lock()
	k.current = inIdx
	inRegs := k.table[inIdx].Regs
	k.mu.Unlock()

	k.hal.ContextSwitch(nil, inRegs)
}
