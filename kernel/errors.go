package kernel

import (
	"github.com/k3xr/minikernel/kernelerr"
	"github.com/k3xr/minikernel/klog"
)

// currentID returns the BCP id of the process currently dispatched on
// the CPU, or -1 if none has been dispatched yet (boot, before the
// first context switch).
func (k *Kernel) currentID() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.current < 0 {
		return -1
	}
	return k.table[k.current].ID
}

// logFault classifies cause (falling back to ErrInternal for an error
// outside the kernelerr taxonomy), attaches op and pid, logs it through
// the process-scoped logger, and returns the classified error.
// Wrapping rather than mutating a sentinel keeps the package-level
// sentinels immutable and safe to share across goroutines, while
// errors.Is against the original sentinel still succeeds through
// Unwrap.
func (k *Kernel) logFault(pid int, op string, cause error) *kernelerr.KernelError {
	kind, ok := kernelerr.GetKind(cause)
	if !ok {
		kind = kernelerr.ErrInternal
	}
	err := kernelerr.WrapWithPid(cause, kind, op, pid)
	klog.WithProcess(k.log, pid).Warn(err.Error(), "kind", err.Kind.String())
	return err
}

// fail is logFault plus the bare int64 a syscall service hands back in
// register 0; the wire format has no room for anything richer than a
// small negative number, so the classified error only survives in the
// log.
func (k *Kernel) fail(pid int, op string, cause error, code int64) int64 {
	k.logFault(pid, op, cause)
	return code
}
