// Package sim provides a goroutine-driven software implementation of the
// hal.HAL contract. It stands in for real hardware: each user task runs on
// its own goroutine, "registers" are a single live array shared by whichever
// task is currently dispatched, and a context switch is a handoff between
// two goroutines over a buffered channel — the Go-idiomatic analogue of a
// register save/restore, grounded on the parent/child rendezvous idiom in
// the teacher's utils.SyncPipe (one side blocks until signaled by the
// other).
//
// Preemption can only be delivered at points where the running task calls
// back into the CPU (TaskContext.Tick, .Syscall, .ArithFault, .MemFault) —
// a goroutine cannot safely be suspended mid-statement from the outside
// without runtime support, so this software CPU asks cooperating task code
// to call Tick() at loop boundaries, exactly as a real CPU's instruction
// boundaries are where a hardware interrupt can be taken. This is
// documented as a deliberate simplification of the (out-of-scope, §1) HAL;
// it does not change anything about the kernel's own scheduling semantics,
// which are exercised identically whether a tick arrives this way or from
// real hardware.
//
// Terminal input has no such restriction: it never forces a context switch
// (spec.md §4.4 only ever moves a blocked reader to the ready list, it does
// not dispatch it), so it is safe to deliver asynchronously from a real
// background reader goroutine.
package sim

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/k3xr/minikernel/hal"
)

// Regs is the opaque register snapshot the kernel threads through
// hal.HAL.ContextSwitch. Its fields are only ever touched by sim's own
// code; the kernel treats values of this type as opaque.
type Regs struct {
	gp     [8]int64
	resume chan struct{}
}

func newRegs() *Regs {
	return &Regs{resume: make(chan struct{}, 1)}
}

// TaskFunc is a simulated user-mode program. It receives a TaskContext
// through which it issues syscalls, reports elapsed ticks, and raises
// faults — the simulated equivalent of the instructions a real user
// program executes.
type TaskFunc func(ctx *TaskContext)

// CPU is the software HAL. It implements hal.HAL.
type CPU struct {
	levelMu sync.Mutex
	cond    *sync.Cond
	level   hal.Level

	handlers [6]hal.HandlerFunc

	live         [8]int64
	cameFromUser bool
	termPort     byte

	loader  *ImageLoader
	handles *handleTable

	paceDelay time.Duration
	writer    io.Writer
	panicFunc func(string)
}

// NewCPU creates a software CPU with no registered task images.
func NewCPU() *CPU {
	c := &CPU{
		loader:  NewImageLoader(),
		handles: newHandleTable(),
		writer:  os.Stdout,
	}
	c.cond = sync.NewCond(&c.levelMu)
	c.panicFunc = func(msg string) { panic("kernel panic: " + msg) }
	return c
}

// Loader returns the image loader so callers can register TaskFuncs by
// name before booting the kernel.
func (c *CPU) Loader() *ImageLoader { return c.loader }

// SetPanicFunc overrides what hal.Panic does (tests use this to recover
// instead of crashing the process).
func (c *CPU) SetPanicFunc(fn func(string)) { c.panicFunc = fn }

// SetWriter overrides the sink hal.KernelWrite writes to.
func (c *CPU) SetWriter(w io.Writer) { c.writer = w }

// SetIntLevel implements hal.HAL.
func (c *CPU) SetIntLevel(level hal.Level) hal.Level {
	c.levelMu.Lock()
	prior := c.level
	c.level = level
	c.levelMu.Unlock()
	if level < prior {
		c.cond.Broadcast()
	}
	return prior
}

// Halt implements hal.HAL. It blocks until the next interrupt is
// delivered (a processed clock tick, a delivered character, or a level
// change), mirroring a hardware HLT instruction.
func (c *CPU) Halt() {
	c.levelMu.Lock()
	c.cond.Wait()
	c.levelMu.Unlock()
}

// InstallHandler implements hal.HAL. Must be called before StartClock,
// StartKeyboard, or any task is dispatched — the boot sequence installs
// all six handlers up front, exactly as spec.md §6 requires.
func (c *CPU) InstallHandler(vector hal.Vector, fn hal.HandlerFunc) {
	c.handlers[vector] = fn
}

// StartClock implements hal.HAL. The software CPU does not drive a
// background wall-clock ticker (see package doc); it records the rate so
// TaskContext.Tick can pace itself to approximate real time when running
// live (ticksPerSec <= 0 disables pacing, which is what tests want).
func (c *CPU) StartClock(ticksPerSec int) {
	if ticksPerSec > 0 {
		c.paceDelay = time.Second / time.Duration(ticksPerSec)
	}
}

// StartKeyboard implements hal.HAL. Real keystroke delivery is driven by
// StdinSource.Run (see terminal.go); this only marks the device as armed.
func (c *CPU) StartKeyboard() {}

// ContextSwitch implements hal.HAL.
func (c *CPU) ContextSwitch(out, in any) {
	inRegs := in.(*Regs)
	var outRegs *Regs
	if out != nil {
		outRegs = out.(*Regs)
		outRegs.gp = c.live
	}

	c.live = inRegs.gp
	inRegs.resume <- struct{}{}

	if outRegs == nil {
		// Terminal switch: the caller is gone for good.
		select {}
	}

	<-outRegs.resume
}

// ReadRegister implements hal.HAL.
func (c *CPU) ReadRegister(i int) int64 { return c.live[i] }

// WriteRegister implements hal.HAL.
func (c *CPU) WriteRegister(i int, v int64) { c.live[i] = v }

// ReadPort implements hal.HAL.
func (c *CPU) ReadPort(port hal.Port) byte {
	if port == hal.Terminal {
		return c.termPort
	}
	return 0
}

// CameFromUserMode implements hal.HAL.
func (c *CPU) CameFromUserMode() bool { return c.cameFromUser }

// Panic implements hal.HAL.
func (c *CPU) Panic(msg string) { c.panicFunc(msg) }

// KernelWrite implements hal.HAL.
func (c *CPU) KernelWrite(buf []byte) { c.writer.Write(buf) }

// DeliverChar feeds one byte to the terminal device, waiting if the
// current interrupt level masks TERMINAL_INT (NIVEL_2 or NIVEL_3), then
// invoking the installed handler. Safe to call from a background reader
// goroutine concurrently with a running task, because the terminal ISR
// never forces a context switch (see package doc).
func (c *CPU) DeliverChar(b byte) {
	c.levelMu.Lock()
	for c.level >= hal.Nivel2 {
		c.cond.Wait()
	}
	c.levelMu.Unlock()

	c.termPort = b
	if h := c.handlers[hal.TerminalInt]; h != nil {
		h()
	}

	c.levelMu.Lock()
	c.cond.Broadcast()
	c.levelMu.Unlock()
}

// InjectKernelFault synchronously invokes the handler for v as though the
// CPU were already executing kernel-mode code when the fault occurred.
// Used by tests to exercise the unrecoverable-panic path (spec.md §4.4:
// "Otherwise panic").
func (c *CPU) InjectKernelFault(v hal.Vector) {
	c.cameFromUser = false
	if h := c.handlers[v]; h != nil {
		h()
	}
}
