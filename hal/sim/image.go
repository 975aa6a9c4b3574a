package sim

import (
	"path/filepath"
	"sync"

	"github.com/k3xr/minikernel/kernelerr"
)

// ImageLoader is a registry of TaskFuncs keyed by name, standing in for a
// filesystem of executable images. CreateImage looks up the base name of
// the path it is given, the same way the original kernel's crear_tarea
// resolved a task by name.
type ImageLoader struct {
	mu    sync.Mutex
	tasks map[string]TaskFunc
}

// NewImageLoader returns an empty image loader.
func NewImageLoader() *ImageLoader {
	return &ImageLoader{tasks: make(map[string]TaskFunc)}
}

// Register makes fn loadable under name.
func (l *ImageLoader) Register(name string, fn TaskFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks[name] = fn
}

func (l *ImageLoader) lookup(name string) (TaskFunc, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn, ok := l.tasks[name]
	return fn, ok
}

// taskImage is the opaque handle CreateImage returns.
type taskImage struct {
	name string
	fn   TaskFunc
}

// stackHandle is the opaque handle CreateStack returns. The sim CPU has
// no real memory to allocate; it only records the requested size for
// bookkeeping/tests.
type stackHandle struct {
	size int
}

// CreateImage implements hal.HAL.
func (c *CPU) CreateImage(path string) (any, uint64, error) {
	name := filepath.Base(path)
	fn, ok := c.loader.lookup(name)
	if !ok {
		return nil, 0, kernelerr.WrapWithDetail(kernelerr.ErrImageLoad, kernelerr.ErrResource, "create_image", "no image registered for "+name)
	}
	return &taskImage{name: name, fn: fn}, 0, nil
}

// FreeImage implements hal.HAL. The sim CPU holds no resources to
// release beyond the Go garbage collector's reach.
func (c *CPU) FreeImage(image any) {}

// CreateStack implements hal.HAL.
func (c *CPU) CreateStack(size int) any {
	return &stackHandle{size: size}
}

// FreeStack implements hal.HAL.
func (c *CPU) FreeStack(stack any) {}

// InitContext implements hal.HAL. It spawns the goroutine that will run
// the task's code and returns the register snapshot the kernel threads
// back through ContextSwitch to dispatch it for the first time. entryPC
// is accepted for interface fidelity with a real HAL; the sim CPU has
// already bound the entry point to the image at CreateImage time.
func (c *CPU) InitContext(image, stack any, stackSize int, entryPC uint64) any {
	img := image.(*taskImage)
	regs := newRegs()

	go func() {
		<-regs.resume
		ctx := &TaskContext{cpu: c, regs: regs}
		// A well-behaved task always ends by issuing the terminate
		// syscall itself; img.fn is expected not to return otherwise.
		img.fn(ctx)
	}()

	return regs
}
