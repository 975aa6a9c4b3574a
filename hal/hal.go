// Package hal defines the hardware abstraction layer contract consumed by
// the minikernel. The kernel never reaches past this interface: CPU
// register save/restore, interrupt masking, port I/O, and image loading
// are all collaborators reached only through HAL, exactly as spec.md §6
// describes. Concrete implementations live in sibling packages (hal/sim
// provides a goroutine-driven software CPU); the kernel package imports
// only this file.
package hal

import "context"

// Level is an interrupt-masking priority. Higher levels mask more.
type Level int

const (
	// Nivel1 masks almost nothing; only the idle halt runs here.
	Nivel1 Level = iota
	// Nivel2 masks the terminal interrupt.
	Nivel2
	// Nivel3 masks everything, including the clock. The critical-section
	// level for any mutation of the ready/blocked lists or mutex table.
	Nivel3
)

func (l Level) String() string {
	switch l {
	case Nivel1:
		return "NIVEL_1"
	case Nivel2:
		return "NIVEL_2"
	case Nivel3:
		return "NIVEL_3"
	default:
		return "NIVEL_?"
	}
}

// Vector identifies an interrupt or trap source.
type Vector int

const (
	ArithExc Vector = iota
	MemExc
	ClockInt
	TerminalInt
	SyscallTrap
	SoftInt
)

func (v Vector) String() string {
	switch v {
	case ArithExc:
		return "EXC_ARITM"
	case MemExc:
		return "EXC_MEM"
	case ClockInt:
		return "INT_RELOJ"
	case TerminalInt:
		return "INT_TERMINAL"
	case SyscallTrap:
		return "LLAM_SIS"
	case SoftInt:
		return "INT_SW"
	default:
		return "VECTOR_?"
	}
}

// Port identifies a port-mapped device.
type Port int

// Terminal is the single port-mapped device the core needs.
const Terminal Port = 0

// HandlerFunc is an interrupt/trap handler. Handlers take no arguments;
// they read whatever state they need (registers, fault reason) through
// the HAL itself, exactly as the hardware's own ISR convention requires.
type HandlerFunc func()

// HAL is the hardware abstraction layer contract. Every method here
// corresponds to one row of spec.md §6's "HAL contract (consumed)" table.
type HAL interface {
	// SetIntLevel raises or lowers the interrupt-masking level and
	// returns the prior level.
	SetIntLevel(level Level) Level

	// Halt stops the CPU until the next interrupt.
	Halt()

	// InstallHandler registers the handler invoked when vector fires.
	InstallHandler(vector Vector, fn HandlerFunc)

	// StartClock begins periodic CLOCK_INT delivery at the given rate.
	StartClock(ticksPerSec int)

	// StartKeyboard begins delivering TERMINAL_INT on keystrokes.
	StartKeyboard()

	// ContextSwitch saves the outgoing register snapshot (if non-nil)
	// and restores the incoming one. It does not return until the
	// outgoing context is itself later resumed by a future
	// ContextSwitch call naming it as the incoming snapshot; if out is
	// nil (a terminal switch) it does not return at all.
	ContextSwitch(out, in any)

	// CreateImage loads the memory image at path and returns an opaque
	// image handle plus the entry program counter.
	CreateImage(path string) (image any, entryPC uint64, err error)

	// FreeImage releases a memory image obtained from CreateImage.
	FreeImage(image any)

	// CreateStack allocates a stack of the given size.
	CreateStack(size int) any

	// FreeStack releases a stack obtained from CreateStack.
	FreeStack(stack any)

	// InitContext returns a fresh register snapshot for a process about
	// to run image on stack for the first time, entering at entryPC.
	InitContext(image, stack any, stackSize int, entryPC uint64) any

	// ReadRegister reads CPU register i (syscall argument marshaling).
	ReadRegister(i int) int64

	// WriteRegister writes CPU register i.
	WriteRegister(i int, v int64)

	// ReadPort reads one byte from the given port.
	ReadPort(port Port) byte

	// CameFromUserMode reports whether the code interrupted by the
	// current handler invocation was running in user mode.
	CameFromUserMode() bool

	// Panic halts the kernel unrecoverably with the given message.
	Panic(msg string)

	// KernelWrite writes buf to the kernel's console/log sink.
	KernelWrite(buf []byte)
}

// Booter is implemented by HALs that need a context to bind their
// background drivers (clock ticker, terminal reader) to, so that
// cmd/minikernel can cancel them on SIGINT/SIGTERM.
type Booter interface {
	Run(ctx context.Context)
}

// Syscall service numbers, shared between the kernel's service table and
// any code issuing syscalls, mirroring the fixed numbering of the §6
// table.
const (
	SysCreateProcess = iota
	SysTerminateProcess
	SysWrite
	SysGetPid
	SysSleep
	SysTimes
	SysCreateMutex
	SysOpenMutex
	SysLock
	SysUnlock
	SysCloseMutex
	SysReadChar

	NumServices
)

// TimesOut is the caller-supplied struct the times() syscall fills in
// with a process's accounting counters.
type TimesOut struct {
	TicksUser   int64
	TicksSystem int64
}

// BufferHost is an optional capability a HAL may implement to exchange
// byte buffers, strings, and output structs with user code through the
// plain int64 register file, without the kernel needing to know how the
// HAL represents memory. A real HAL would resolve these against physical
// or virtual addresses written into a register; the simulated HAL
// resolves them against a small handle table (see hal/sim). Syscall
// services that need one of these type-assert the HAL they were given
// against this interface.
type BufferHost interface {
	ResolveBytes(handle int64) []byte
	ResolveString(handle int64) string
	ResolveTimesOut(handle int64) *TimesOut
}
