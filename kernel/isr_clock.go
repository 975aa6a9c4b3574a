package kernel

// clockISR is installed against hal.ClockInt. It runs at the highest
// interrupt priority (§4.4): accounts the elapsed tick against current,
// requests preemption when its quantum is exhausted, advances the
// global tick counter, and wakes time-based sleepers whose deadline has
// elapsed.
func (k *Kernel) clockISR() {
	userMode := k.hal.CameFromUserMode()
	preempt := false

	k.withLevel3(func() {
		cur := k.current
		if cur >= 0 {
			if userMode {
				k.table[cur].TicksUser++
			} else {
				k.table[cur].TicksSystem++
			}
			if k.table[cur].QuantumRemaining <= 1 {
				k.preemptTarget = k.table[cur].ID
				preempt = true
			} else {
				k.table[cur].QuantumRemaining--
			}
		}
		k.tickCount++
		k.wakeDueSleepers()
	})

	if preempt {
		k.softISR()
	}
}

// wakeDueSleepers moves every blocked, time-based BCP whose deadline has
// elapsed to the ready list. Must be called with k.mu held.
//
// The original source only ever inspects the head of the blocked list
// (see DESIGN.md Open Question 1); that is preserved as an opt-in legacy
// mode via legacyHeadOnlyWake, but the default scans the whole list so
// that more than one concurrently sleeping process can actually wake.
func (k *Kernel) wakeDueSleepers() {
	idx := k.blocked.head
	for idx >= 0 {
		next := k.table[idx].next
		if k.dueToWakeLocked(idx) {
			k.blocked.RemoveElem(k.table, idx)
			k.table[idx].State = Ready
			k.ready.InsertTail(k.table, idx)
			if k.legacyHeadOnlyWake {
				return
			}
		} else if k.legacyHeadOnlyWake {
			return
		}
		idx = next
	}
}

// dueToWakeLocked reports whether the BCP at idx is a time-based
// sleeper whose deadline has elapsed. Must be called with k.mu held.
func (k *Kernel) dueToWakeLocked(idx int) bool {
	b := &k.table[idx]
	if b.BlockedOnRead {
		return false
	}
	deadline := b.BlockStartTick + b.BlockSeconds*int64(k.cfg.TicksPerSec)
	return deadline <= k.tickCount
}
