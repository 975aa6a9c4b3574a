package kernel

import "github.com/k3xr/minikernel/kernelerr"

// createMutex implements create_mutex(name, recursive) (§4.7, syscall
// #6). name longer than MaxName is rejected outright (-1); a per-process
// cap (PerProcCap) on mutexes held open by a single process is rejected
// with -2; a name already in use is rejected with -3. If every slot is
// in use the caller blocks until one frees, then the whole check
// (including the name-uniqueness check) runs again from scratch — a
// slot freed by close_mutex says nothing about whether the name is
// still unique.
func createMutex(k *Kernel) int64 {
	name := resolveString(k.hal, k.hal.ReadRegister(1))
	recursive := k.hal.ReadRegister(2) != 0
	pid := k.currentID()

	if len(name) > k.cfg.MaxName {
		return k.fail(pid, "create_mutex", kernelerr.ErrMutexNameTooLong, -1)
	}

	for {
		result := int64(0)
		settled := false
		var waiter int = -1

		k.withLevel3(func() {
			cur := k.current
			if k.table[cur].MutexCount >= k.cfg.PerProcCap {
				result = k.fail(pid, "create_mutex", kernelerr.ErrMutexPerProcCap, -2)
				settled = true
				return
			}
			for i := range k.mutexes {
				if k.mutexes[i].inUse && k.mutexes[i].name == name {
					result = k.fail(pid, "create_mutex", kernelerr.ErrMutexNameCollision, -3)
					settled = true
					return
				}
			}
			if k.mutexInUse >= k.cfg.NumMut {
				k.table[cur].State = Blocked
				k.ready.RemoveElem(k.table, cur)
				k.blocked.InsertTail(k.table, cur)
				waiter = cur
				return
			}

			slot := k.freeMutexSlotLocked()
			k.mutexes[slot] = mutexSlot{
				inUse:     true,
				name:      name,
				recursive: recursive,
				owner:     -1,
				waiters:   newList(),
			}
			k.mutexInUse++
			k.table[cur].MutexCount++
			result = 0
			settled = true
		})

		if settled {
			return result
		}
		_ = waiter

		next := k.pickNext()
		k.mu.Lock()
		k.table[next].State = Running
		k.mu.Unlock()
		k.switchTo(next)
	}
}

// freeMutexSlotLocked finds the first unused mutex slot. Callers must
// hold k.mu and must have already verified mutexInUse < NumMut.
func (k *Kernel) freeMutexSlotLocked() int {
	for i := range k.mutexes {
		if !k.mutexes[i].inUse {
			return i
		}
	}
	return -1
}

// openMutex implements open_mutex(name) (§4.7, syscall #7): look up an
// existing mutex by name and return its handle, or -1 if none exists.
func openMutex(k *Kernel) int64 {
	name := resolveString(k.hal, k.hal.ReadRegister(1))

	k.mu.Lock()
	defer k.mu.Unlock()
	for i := range k.mutexes {
		if k.mutexes[i].inUse && k.mutexes[i].name == name {
			return int64(i)
		}
	}
	if k.current < 0 {
		return -1
	}
	return k.fail(k.table[k.current].ID, "open_mutex", kernelerr.ErrMutexNotFound, -1)
}

// lock implements lock(handle) (§4.7, syscall #8): acquire the mutex if
// free, recurse into it if already owned by the caller and it is
// recursive, or block on its FIFO wait queue otherwise. Locking a
// non-recursive mutex already owned by the caller is a caller error
// (-1): it would otherwise deadlock the caller against itself.
func lock(k *Kernel) int64 {
	handle := k.hal.ReadRegister(1)
	pid := k.currentID()

	for {
		outcome := int64(1) // 1 = keep waiting, 0 = acquired, <0 = error
		var waiter int = -1

		k.withLevel3(func() {
			if handle < 0 || int(handle) >= len(k.mutexes) || !k.mutexes[handle].inUse {
				outcome = k.fail(pid, "lock", kernelerr.ErrMutexNotFound, -1)
				return
			}
			m := &k.mutexes[handle]
			cur := k.current
			myID := k.table[cur].ID

			switch {
			case m.owner == -1:
				m.owner = myID
				m.depth = 1
				outcome = 0
			case m.owner == myID:
				if !m.recursive {
					outcome = k.fail(pid, "lock", kernelerr.ErrMutexNotRecursive, -1)
					return
				}
				m.depth++
				outcome = 0
			default:
				k.table[cur].State = Blocked
				k.ready.RemoveElem(k.table, cur)
				m.waiters.InsertTail(k.table, cur)
				waiter = cur
			}
		})

		if outcome == 0 || outcome < 0 {
			return outcome
		}
		_ = waiter

		next := k.pickNext()
		k.mu.Lock()
		k.table[next].State = Running
		k.mu.Unlock()
		k.switchTo(next)

		// unlock hands ownership straight to the head waiter, so by the
		// time this process is resumed it already holds the mutex.
		return 0
	}
}

// unlock implements unlock(handle) (§4.7, syscall #9): release one
// recursion level; on full release, hand ownership straight to the head
// of the mutex's own wait queue (FIFO), skipping the ready list — the
// woken process is already guaranteed the lock, there is nothing to
// contend for.
func unlock(k *Kernel) int64 {
	handle := k.hal.ReadRegister(1)
	pid := k.currentID()
	result := int64(0)

	k.withLevel3(func() {
		if handle < 0 || int(handle) >= len(k.mutexes) || !k.mutexes[handle].inUse {
			result = k.fail(pid, "unlock", kernelerr.ErrMutexNotFound, -1)
			return
		}
		m := &k.mutexes[handle]
		cur := k.current
		if m.owner != k.table[cur].ID {
			result = k.fail(pid, "unlock", kernelerr.ErrMutexNotOwned, -1)
			return
		}

		m.depth--
		if m.depth > 0 {
			return
		}

		m.owner = -1
		if woken := m.waiters.RemoveHead(k.table); woken >= 0 {
			m.owner = k.table[woken].ID
			m.depth = 1
			k.table[woken].State = Ready
			k.ready.InsertTail(k.table, woken)
		}
	})

	return result
}

// closeMutex implements close_mutex(handle) (§4.7, syscall #10): frees
// the slot if it is currently unlocked and nobody is waiting on it,
// decrementing both the global in-use count and the closer's own
// mutex_count. Returns -1 if the handle is invalid, still held, or still
// has waiters.
func closeMutex(k *Kernel) int64 {
	handle := k.hal.ReadRegister(1)
	pid := k.currentID()
	result := int64(0)

	k.withLevel3(func() {
		if handle < 0 || int(handle) >= len(k.mutexes) || !k.mutexes[handle].inUse {
			result = k.fail(pid, "close_mutex", kernelerr.ErrMutexNotFound, -1)
			return
		}
		m := &k.mutexes[handle]
		if m.owner != -1 || !m.waiters.Empty() {
			result = k.fail(pid, "close_mutex", kernelerr.ErrMutexInUse, -1)
			return
		}

		cur := k.current
		m.inUse = false
		k.mutexInUse--
		if k.table[cur].MutexCount > 0 {
			k.table[cur].MutexCount--
		}
	})

	return result
}
