package sim

import (
	"sync"

	"github.com/k3xr/minikernel/hal"
)

// handleTable hands out int64 handles for values a TaskFunc wants to
// pass across a Syscall trap's plain register file (buffers, path
// strings, output structs) — the simulated stand-in for a real HAL
// resolving a register value against addressable memory.
type handleTable struct {
	mu   sync.Mutex
	next int64
	vals map[int64]any
}

func newHandleTable() *handleTable {
	return &handleTable{vals: make(map[int64]any)}
}

func (h *handleTable) put(v any) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	h.vals[id] = v
	return id
}

func (h *handleTable) get(id int64) any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.vals[id]
}

// NewBufferHandle registers buf and returns a handle resolvable via
// ResolveBytes.
func (c *CPU) NewBufferHandle(buf []byte) int64 { return c.handles.put(buf) }

// NewStringHandle registers s and returns a handle resolvable via
// ResolveString.
func (c *CPU) NewStringHandle(s string) int64 { return c.handles.put(s) }

// NewTimesOutHandle registers out and returns a handle resolvable via
// ResolveTimesOut.
func (c *CPU) NewTimesOutHandle(out *hal.TimesOut) int64 { return c.handles.put(out) }

// ResolveBytes implements hal.BufferHost.
func (c *CPU) ResolveBytes(handle int64) []byte {
	b, _ := c.handles.get(handle).([]byte)
	return b
}

// ResolveString implements hal.BufferHost.
func (c *CPU) ResolveString(handle int64) string {
	s, _ := c.handles.get(handle).(string)
	return s
}

// ResolveTimesOut implements hal.BufferHost.
func (c *CPU) ResolveTimesOut(handle int64) *hal.TimesOut {
	t, _ := c.handles.get(handle).(*hal.TimesOut)
	return t
}
