package kernel

import "github.com/k3xr/minikernel/hal"

// withLevel raises the interrupt-masking level to level, runs fn with
// the kernel's own mutex held (the real mutual-exclusion backing the
// conceptual interrupt level), then restores the prior level on every
// exit path — the scoped guard §9's REDESIGN FLAGS calls for. fn must
// not call anything that blocks on the HAL (context switch, halt): the
// lock must be released before the kernel can safely hand control to
// another goroutine.
func (k *Kernel) withLevel(level hal.Level, fn func()) {
	prior := k.hal.SetIntLevel(level)
	defer k.hal.SetIntLevel(prior)
	k.mu.Lock()
	defer k.mu.Unlock()
	fn()
}

// withLevel3 is the critical-section guard for any mutation of the
// ready/blocked lists, the mutex table, or the param-access flag (§5).
func (k *Kernel) withLevel3(fn func()) {
	k.withLevel(hal.Nivel3, fn)
}

// withLevel2 masks the terminal interrupt for the duration of consuming
// the terminal ring buffer (§4.6 read_char).
func (k *Kernel) withLevel2(fn func()) {
	k.withLevel(hal.Nivel2, fn)
}
