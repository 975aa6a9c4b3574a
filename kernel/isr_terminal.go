package kernel

import "github.com/k3xr/minikernel/hal"

// terminalISR is installed against hal.TerminalInt. It reads one
// character from the terminal port, appends it to the ring buffer if
// there is room (dropping it silently otherwise, per the documented
// overflow policy), then wakes the first blocked reader it finds.
//
// The original source's reader scan has an off-by-one (DESIGN.md Open
// Question 2); this scans the entire blocked list for the first BCP
// with BlockedOnRead set, per the corrected behavior the REDESIGN FLAG
// calls for.
func (k *Kernel) terminalISR() {
	b := k.hal.ReadPort(hal.Terminal)

	k.withLevel3(func() {
		if k.charsInBuffer < len(k.termBuf) {
			k.termBuf[k.charsInBuffer] = b
			k.charsInBuffer++
		}

		idx := k.blocked.head
		for idx >= 0 {
			next := k.table[idx].next
			if k.table[idx].BlockedOnRead {
				k.blocked.RemoveElem(k.table, idx)
				k.table[idx].BlockedOnRead = false
				k.table[idx].State = Ready
				k.ready.InsertTail(k.table, idx)
				break
			}
			idx = next
		}
	})
}
