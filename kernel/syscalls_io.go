package kernel

// readChar implements read_char (§4.6, syscall #11): block while the
// ring buffer is empty, then consume one character under NIVEL_2 (which
// masks the terminal ISR during consumption so it cannot observe a torn
// buffer).
func readChar(k *Kernel) int64 {
	for {
		k.mu.Lock()
		empty := k.charsInBuffer == 0
		k.mu.Unlock()
		if !empty {
			break
		}

		var cur int
		k.withLevel3(func() {
			cur = k.current
			k.table[cur].BlockedOnRead = true
			k.table[cur].State = Blocked
			k.ready.RemoveElem(k.table, cur)
			k.blocked.InsertTail(k.table, cur)
		})

		next := k.pickNext()
		k.mu.Lock()
		k.table[next].State = Running
		k.mu.Unlock()

		k.switchTo(next)
	}

	var ch byte
	k.withLevel2(func() {
		ch = k.termBuf[0]
		copy(k.termBuf, k.termBuf[1:k.charsInBuffer])
		k.charsInBuffer--
	})

	return int64(ch)
}
