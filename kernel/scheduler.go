package kernel

import "github.com/k3xr/minikernel/hal"

// pickNext returns the index of the process that should run next. It
// peeks (never removes) the head of the ready list — per §4.2, the
// running process stays on the ready list at its head by convention; it
// is the caller's job to mark it RUNNING. If the ready list is empty it
// idles at NIVEL_1 and halts, re-checking on every resumption, exactly
// as §4.2 describes.
func (k *Kernel) pickNext() int {
	for {
		k.mu.Lock()
		idx := k.ready.head
		if idx >= 0 {
			k.table[idx].QuantumRemaining = k.cfg.TicksPerSlice
		}
		k.mu.Unlock()

		if idx >= 0 {
			return idx
		}

		prior := k.hal.SetIntLevel(hal.Nivel1)
		k.hal.Halt()
		k.hal.SetIntLevel(prior)
	}
}
