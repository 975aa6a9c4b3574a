package sim

import (
	"time"

	"github.com/k3xr/minikernel/hal"
)

// TaskContext is the handle a TaskFunc uses to act like a running user
// program: issue syscalls, report elapsed ticks, and raise faults.
type TaskContext struct {
	cpu  *CPU
	regs *Regs
}

// Syscall traps into the kernel's installed SyscallTrap handler with num
// in register 0 and args in the following registers, and returns whatever
// the handler left in register 0. This is the simulated equivalent of a
// user program executing a trap instruction.
func (t *TaskContext) Syscall(num int64, args ...int64) int64 {
	t.cpu.cameFromUser = true
	t.cpu.live[0] = num
	for i, a := range args {
		if i+1 < len(t.cpu.live) {
			t.cpu.live[i+1] = a
		}
	}
	if h := t.cpu.handlers[hal.SyscallTrap]; h != nil {
		h()
	}
	return t.cpu.live[0]
}

// Tick reports that one clock period has elapsed while this task was
// running. It is the cooperative stand-in for an asynchronous hardware
// clock interrupt (see the sim package doc); a TaskFunc simulating a
// CPU-bound loop should call this once per iteration.
func (t *TaskContext) Tick() {
	t.cpu.cameFromUser = true

	t.cpu.levelMu.Lock()
	masked := t.cpu.level == hal.Nivel3
	t.cpu.levelMu.Unlock()

	if !masked {
		if h := t.cpu.handlers[hal.ClockInt]; h != nil {
			h()
		}
	}

	t.cpu.levelMu.Lock()
	t.cpu.cond.Broadcast()
	t.cpu.levelMu.Unlock()

	if t.cpu.paceDelay > 0 {
		time.Sleep(t.cpu.paceDelay)
	}
}

// CreateProcess issues the create_process syscall for the named image.
func (t *TaskContext) CreateProcess(path string) int64 {
	return t.Syscall(hal.SysCreateProcess, t.cpu.NewStringHandle(path))
}

// TerminateProcess issues the terminate_process syscall. It never
// returns.
func (t *TaskContext) TerminateProcess() {
	t.Syscall(hal.SysTerminateProcess)
}

// Write issues the write syscall with buf.
func (t *TaskContext) Write(buf []byte) int64 {
	return t.Syscall(hal.SysWrite, t.cpu.NewBufferHandle(buf), int64(len(buf)))
}

// GetPid issues the get_pid syscall.
func (t *TaskContext) GetPid() int64 {
	return t.Syscall(hal.SysGetPid)
}

// Sleep issues the sleep syscall for the given number of seconds.
func (t *TaskContext) Sleep(seconds int64) int64 {
	return t.Syscall(hal.SysSleep, seconds)
}

// Times issues the times syscall, filling out with the process's
// accounting counters unless out is nil.
func (t *TaskContext) Times(out *hal.TimesOut) int64 {
	var handle int64
	if out != nil {
		handle = t.cpu.NewTimesOutHandle(out)
	}
	return t.Syscall(hal.SysTimes, handle)
}

// ReadChar issues the read_char syscall.
func (t *TaskContext) ReadChar() int64 {
	return t.Syscall(hal.SysReadChar)
}

// CreateMutex issues the create_mutex syscall.
func (t *TaskContext) CreateMutex(name string, recursive bool) int64 {
	kind := int64(0)
	if recursive {
		kind = 1
	}
	return t.Syscall(hal.SysCreateMutex, t.cpu.NewStringHandle(name), kind)
}

// OpenMutex issues the open_mutex syscall.
func (t *TaskContext) OpenMutex(name string) int64 {
	return t.Syscall(hal.SysOpenMutex, t.cpu.NewStringHandle(name))
}

// Lock issues the lock syscall for the mutex handle returned by
// OpenMutex.
func (t *TaskContext) Lock(handle int64) int64 {
	return t.Syscall(hal.SysLock, handle)
}

// Unlock issues the unlock syscall.
func (t *TaskContext) Unlock(handle int64) int64 {
	return t.Syscall(hal.SysUnlock, handle)
}

// CloseMutex issues the close_mutex syscall.
func (t *TaskContext) CloseMutex(handle int64) int64 {
	return t.Syscall(hal.SysCloseMutex, handle)
}

// ArithFault raises EXC_ARITM, as though the task's own code divided by
// zero or executed some other illegal arithmetic operation.
func (t *TaskContext) ArithFault() {
	t.cpu.cameFromUser = true
	if h := t.cpu.handlers[hal.ArithExc]; h != nil {
		h()
	}
}

// MemFault raises EXC_MEM, as though the task's own code dereferenced an
// invalid address.
func (t *TaskContext) MemFault() {
	t.cpu.cameFromUser = true
	if h := t.cpu.handlers[hal.MemExc]; h != nil {
		h()
	}
}
