package kernel

import (
	"github.com/k3xr/minikernel/hal"
	"github.com/k3xr/minikernel/kernelerr"
)

// createProcess implements create_process(path) (§4.5, syscall #0).
func createProcess(k *Kernel) int64 {
	path := resolveString(k.hal, k.hal.ReadRegister(1))
	if _, err := k.createProcessByPath(path); err != nil {
		return -1
	}
	return 0
}

// createProcessByPath allocates a free slot, loads the image, allocates
// a stack, initializes the register snapshot, and appends the new
// process to the ready tail. Shared by the create_process syscall and
// the boot sequence's creation of the init process. The returned error
// is always a *kernelerr.KernelError, already logged against the
// caller's pid (-1 during boot, before any process is current).
func (k *Kernel) createProcessByPath(path string) (int, error) {
	pid := k.currentID()

	slot := k.allocSlot()
	if slot < 0 {
		err := k.logFault(pid, "create_process", kernelerr.ErrNoFreeSlot)
		return -1, err
	}

	image, entryPC, err := k.hal.CreateImage(path)
	if err != nil {
		k.freeSlot(slot)
		return -1, k.logFault(pid, "create_process", err)
	}

	stack := k.hal.CreateStack(k.cfg.StackSize)
	regs := k.hal.InitContext(image, stack, k.cfg.StackSize, entryPC)

	k.mu.Lock()
	k.table[slot].MemImage = image
	k.table[slot].Stack = stack
	k.table[slot].Regs = regs
	k.table[slot].State = Ready
	k.table[slot].MutexCount = 0
	k.mu.Unlock()

	k.withLevel3(func() {
		k.ready.InsertTail(k.table, slot)
	})

	return slot, nil
}

// allocSlot scans the process table for a free (UNUSED or TERMINATED)
// slot, per §4.5's lazy-reuse policy, and reserves it as READY pending
// image load. Returns -1 if the table is full.
func (k *Kernel) allocSlot() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i := range k.table {
		if k.table[i].State == Unused || k.table[i].State == Terminated {
			k.table[i].reset(i)
			k.table[i].State = Ready
			return i
		}
	}
	return -1
}

func (k *Kernel) freeSlot(idx int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.table[idx].reset(idx)
}

// terminateProcess implements terminate_process (§4.5, syscall #1): it
// never returns to its caller.
func terminateProcess(k *Kernel) int64 {
	k.terminateCurrent()
	return 0
}

// terminateCurrent releases the current process's resources, removes it
// from the ready list, dispatches a replacement, and context-switches
// with a null outgoing snapshot. Shared by terminate_process and the
// exception handlers' termination path.
func (k *Kernel) terminateCurrent() {
	k.mu.Lock()
	cur := k.current
	image := k.table[cur].MemImage
	stack := k.table[cur].Stack
	k.mu.Unlock()

	k.hal.FreeImage(image)

	k.withLevel3(func() {
		k.table[cur].State = Terminated
		k.ready.RemoveElem(k.table, cur)
	})

	next := k.pickNext()
	k.mu.Lock()
	k.table[next].State = Running
	k.mu.Unlock()

	k.hal.FreeStack(stack)
	k.switchToTerminal(next)
}

// getPid implements get_pid (§4.6, syscall #3).
func getPid(k *Kernel) int64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return int64(k.table[k.current].ID)
}

// write implements write(buf, len) (§4.8, syscall #2): forward to
// kernel_write, no buffering, no blocking.
func write(k *Kernel) int64 {
	buf := resolveBytes(k.hal, k.hal.ReadRegister(1))
	k.hal.KernelWrite(buf)
	return 0
}

func resolveString(h hal.HAL, handle int64) string {
	if bh, ok := h.(hal.BufferHost); ok {
		return bh.ResolveString(handle)
	}
	return ""
}

func resolveBytes(h hal.HAL, handle int64) []byte {
	if bh, ok := h.(hal.BufferHost); ok {
		return bh.ResolveBytes(handle)
	}
	return nil
}

func resolveTimesOut(h hal.HAL, handle int64) *hal.TimesOut {
	if bh, ok := h.(hal.BufferHost); ok {
		return bh.ResolveTimesOut(handle)
	}
	return nil
}
