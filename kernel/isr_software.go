package kernel

// softISR is installed against hal.SoftInt. It implements preemption:
// if preemptTarget still names the currently running process, that
// process is rotated to the tail of the ready list and a new current is
// dispatched. The target-id guard (§5) prevents a stale preemption from
// double-rotating the queue after a voluntary switch already moved
// current elsewhere.
func (k *Kernel) softISR() {
	preempted := -1

	k.withLevel3(func() {
		cur := k.current
		if cur < 0 || k.preemptTarget != k.table[cur].ID {
			return
		}
		k.ready.RemoveElem(k.table, cur)
		k.table[cur].State = Ready
		k.ready.InsertTail(k.table, cur)
		preempted = cur
	})

	if preempted < 0 {
		return
	}

	next := k.pickNext()
	k.mu.Lock()
	k.table[next].State = Running
	k.mu.Unlock()
	k.switchTo(next)
}
