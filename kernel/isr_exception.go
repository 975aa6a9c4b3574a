package kernel

import "github.com/k3xr/minikernel/kernelerr"

// arithExc is installed against hal.ArithExc (§4.4). A fault from user
// mode terminates the offending process; a fault in kernel-mode code is
// unrecoverable.
func (k *Kernel) arithExc() {
	if k.hal.CameFromUserMode() {
		k.terminateFault("arith_exc", kernelerr.ErrArithFault)
		return
	}
	k.hal.Panic("arithmetic exception in kernel-mode code")
}

// memExc is installed against hal.MemExc (§4.4). Demoted to a
// user-process kill if the fault came from user mode, or if the
// kernel was in the middle of dereferencing a user-supplied pointer on
// that process's behalf (paramAccess set) — the same condition the
// original source applies, read as an additional allowance for memory
// faults rather than an extra requirement (see DESIGN.md Open
// Question 5). Otherwise unrecoverable.
func (k *Kernel) memExc() {
	userMode := k.hal.CameFromUserMode()

	k.mu.Lock()
	paramAccess := k.paramAccess
	k.mu.Unlock()

	if userMode || paramAccess {
		k.terminateFault("mem_exc", kernelerr.ErrMemFault)
		return
	}
	k.hal.Panic("memory exception in kernel-mode code")
}

// terminateFault logs cause against the current process's id through
// the process-scoped logger and runs it through the same termination
// path as terminate_process.
func (k *Kernel) terminateFault(op string, cause *kernelerr.KernelError) {
	k.logFault(k.currentID(), op, cause)
	k.terminateCurrent()
}
