package kernel

import (
	"fmt"

	"github.com/k3xr/minikernel/hal"
	"github.com/k3xr/minikernel/kernelerr"
)

// Boot brings a freshly constructed Kernel up per §6's boot sequence:
// install the six interrupt/trap handlers, program the clock and
// keyboard, load the init process from initPath, dispatch it, and
// perform the first context switch. Boot does not return on success —
// control passes to init and never comes back, mirroring real hardware
// boot. It only returns if initPath fails to load, as an error rather
// than the panic the original firmware would raise, since a failed boot
// is something a Go caller can reasonably recover from before any user
// code has run.
func Boot(h hal.HAL, cfg Config, initPath string) (*Kernel, error) {
	k := New(h, cfg)

	h.InstallHandler(hal.ArithExc, k.arithExc)
	h.InstallHandler(hal.MemExc, k.memExc)
	h.InstallHandler(hal.ClockInt, k.clockISR)
	h.InstallHandler(hal.TerminalInt, k.terminalISR)
	h.InstallHandler(hal.SyscallTrap, k.syscallTrap)
	h.InstallHandler(hal.SoftInt, k.softISR)

	h.StartClock(cfg.TicksPerSec)
	h.StartKeyboard()

	if _, err := k.createProcessByPath(initPath); err != nil {
		if kernelerr.IsKind(err, kernelerr.ErrResource) {
			return nil, fmt.Errorf("kernel: boot: init image %q failed to load: %w", initPath, err)
		}
		return nil, fmt.Errorf("kernel: boot: failed to start init: %w", err)
	}

	next := k.pickNext()
	k.mu.Lock()
	k.table[next].State = Running
	k.mu.Unlock()

	k.switchToTerminal(next)

	// switchToTerminal never returns: the HAL parks the boot goroutine
	// forever once a nil outgoing snapshot is handed to ContextSwitch.
	// Reaching here would mean the HAL handed control back to the
	// kernel with nothing to resume, which the original firmware treats
	// as unrecoverable.
	k.hal.Panic("boot: control returned to kernel after first dispatch")
	return k, nil
}
