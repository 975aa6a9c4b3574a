package kernel

import (
	"github.com/k3xr/minikernel/hal"
	"github.com/k3xr/minikernel/kernelerr"
)

// syscallTrap is installed against hal.SyscallTrap (§4.6). Register 0
// carries the service number on entry and the return value on exit; an
// out-of-range number writes -1 rather than faulting, matching the
// original source's bounds check in tratar_llamsis.
func (k *Kernel) syscallTrap() {
	num := k.hal.ReadRegister(0)
	if num < 0 || int(num) >= len(k.services) || k.services[num] == nil {
		k.hal.WriteRegister(0, k.fail(k.currentID(), "syscall_trap", kernelerr.ErrUnknownSyscall, -1))
		return
	}
	k.hal.WriteRegister(0, k.services[num](k))
}

// installServices populates the service table at the fixed indices
// hal.SysX names, in the order of the §6 syscall table.
func (k *Kernel) installServices() {
	k.services[hal.SysCreateProcess] = createProcess
	k.services[hal.SysTerminateProcess] = terminateProcess
	k.services[hal.SysWrite] = write
	k.services[hal.SysGetPid] = getPid
	k.services[hal.SysSleep] = sleep
	k.services[hal.SysTimes] = times
	k.services[hal.SysCreateMutex] = createMutex
	k.services[hal.SysOpenMutex] = openMutex
	k.services[hal.SysLock] = lock
	k.services[hal.SysUnlock] = unlock
	k.services[hal.SysCloseMutex] = closeMutex
	k.services[hal.SysReadChar] = readChar
}
