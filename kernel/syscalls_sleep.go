package kernel

// sleep implements sleep(seconds) (§4.6, syscall #4): block current on
// a time-based deadline and voluntarily switch away.
func sleep(k *Kernel) int64 {
	seconds := k.hal.ReadRegister(1)

	var cur int
	k.withLevel3(func() {
		cur = k.current
		k.table[cur].BlockStartTick = k.tickCount
		k.table[cur].BlockSeconds = seconds
		k.table[cur].BlockedOnRead = false
		k.table[cur].State = Blocked
		k.ready.RemoveElem(k.table, cur)
		k.blocked.InsertTail(k.table, cur)
	})

	next := k.pickNext()
	k.mu.Lock()
	k.table[next].State = Running
	k.mu.Unlock()

	k.switchTo(next)
	return 0
}

// times implements times(out_ptr) (§4.6, syscall #5): if out_ptr is
// non-null, mark the parameter-access window (consumed by memExc to
// distinguish a kernel-touches-user-buffer fault from a kernel bug) and
// write the caller's accounting counters, all under NIVEL_3. Always
// returns the global tick count.
func times(k *Kernel) int64 {
	handle := k.hal.ReadRegister(1)
	out := resolveTimesOut(k.hal, handle)

	var tickCount int64
	k.withLevel3(func() {
		cur := k.current
		if out != nil {
			k.paramAccess = true
			out.TicksUser = k.table[cur].TicksUser
			out.TicksSystem = k.table[cur].TicksSystem
			k.paramAccess = false
		}
		tickCount = k.tickCount
	})

	return tickCount
}
