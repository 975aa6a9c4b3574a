// Package kernelerr provides predefined sentinel errors for common
// kernel failure cases.
package kernelerr

// Process lifecycle errors.
var (
	// ErrNoFreeSlot indicates the BCP table has no free (UNUSED or TERMINATED) entry.
	ErrNoFreeSlot = &KernelError{Pid: -1, Kind: ErrExhausted, Detail: "no free process slot"}

	// ErrImageLoad indicates the HAL could not load the requested image.
	ErrImageLoad = &KernelError{Pid: -1, Kind: ErrResource, Detail: "failed to load memory image"}

	// ErrProcessNotFound indicates the referenced process does not exist.
	ErrProcessNotFound = &KernelError{Pid: -1, Kind: ErrNotFound, Detail: "process not found"}
)

// Syscall dispatch errors.
var (
	// ErrUnknownSyscall indicates the service index is out of range.
	ErrUnknownSyscall = &KernelError{Pid: -1, Kind: ErrInvalidConfig, Detail: "unknown syscall number"}
)

// Mutex facility errors.
var (
	// ErrMutexNameTooLong indicates the name exceeds MAX_NAME.
	ErrMutexNameTooLong = &KernelError{Pid: -1, Kind: ErrInvalidConfig, Detail: "mutex name too long"}

	// ErrMutexPerProcCap indicates the caller already owns PER_PROC_CAP mutexes.
	ErrMutexPerProcCap = &KernelError{Pid: -1, Kind: ErrExhausted, Detail: "per-process mutex cap reached"}

	// ErrMutexNameCollision indicates a mutex with this name already exists.
	ErrMutexNameCollision = &KernelError{Pid: -1, Kind: ErrAlreadyExists, Detail: "mutex name already in use"}

	// ErrMutexNotFound indicates no mutex with the given name or handle exists.
	ErrMutexNotFound = &KernelError{Pid: -1, Kind: ErrNotFound, Detail: "mutex not found"}

	// ErrMutexNotOwned indicates the caller tried to unlock a mutex it does not hold.
	ErrMutexNotOwned = &KernelError{Pid: -1, Kind: ErrInvalidState, Detail: "mutex not owned by caller"}

	// ErrMutexInUse indicates close_mutex was called while the mutex is held (by any
	// process, the caller included) or has waiters.
	ErrMutexInUse = &KernelError{Pid: -1, Kind: ErrInvalidState, Detail: "mutex still in use"}

	// ErrMutexNotRecursive indicates lock was called again by the owner
	// of a non-recursive mutex, which would otherwise deadlock the
	// caller against itself.
	ErrMutexNotRecursive = &KernelError{Pid: -1, Kind: ErrInvalidState, Detail: "mutex is not recursive"}
)

// Fault errors: a user-mode process terminated by an ISR rather than a
// syscall return.
var (
	// ErrArithFault indicates a process raised an arithmetic exception.
	ErrArithFault = &KernelError{Pid: -1, Kind: ErrInvalidState, Detail: "arithmetic exception"}

	// ErrMemFault indicates a process raised a memory exception.
	ErrMemFault = &KernelError{Pid: -1, Kind: ErrInvalidState, Detail: "memory exception"}
)

// Kernel-internal errors.
var (
	// ErrKernelFault indicates a fault occurred while executing kernel code
	// (as opposed to user-mode code) and is unrecoverable.
	ErrKernelFault = &KernelError{Pid: -1, Kind: ErrInternal, Detail: "fault in kernel-mode code"}
)
