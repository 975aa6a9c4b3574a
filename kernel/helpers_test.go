package kernel

import (
	"testing"
	"time"

	"github.com/k3xr/minikernel/hal"
	"github.com/k3xr/minikernel/hal/sim"
)

// bootForTest wires a fresh Kernel against a sim.CPU and dispatches
// "init", without going through Boot's clock pacing — tests drive ticks
// cooperatively via TaskContext.Tick, never by waiting on wall-clock
// time, so StartClock is never called and sim's pacing stays disabled.
func bootForTest(t *testing.T, cfg Config, images map[string]sim.TaskFunc) (*Kernel, *sim.CPU) {
	t.Helper()

	cpu := sim.NewCPU()
	for name, fn := range images {
		cpu.Loader().Register(name, fn)
	}

	k := New(cpu, cfg)
	cpu.InstallHandler(hal.ArithExc, k.arithExc)
	cpu.InstallHandler(hal.MemExc, k.memExc)
	cpu.InstallHandler(hal.ClockInt, k.clockISR)
	cpu.InstallHandler(hal.TerminalInt, k.terminalISR)
	cpu.InstallHandler(hal.SyscallTrap, k.syscallTrap)
	cpu.InstallHandler(hal.SoftInt, k.softISR)

	if _, err := k.createProcessByPath("init"); err != nil {
		t.Fatalf("failed to load init image: %v", err)
	}

	next := k.pickNext()
	k.mu.Lock()
	k.table[next].State = Running
	k.mu.Unlock()

	go k.switchToTerminal(next)

	return k, cpu
}

func waitForTick(t *testing.T, k *Kernel, target int64, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for k.TickCount() < target {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for tick %d, currently at %d", target, k.TickCount())
		}
		time.Sleep(time.Millisecond)
	}
}

func waitForState(t *testing.T, k *Kernel, id int, want State, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for k.ProcessState(id) != want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for process %d to reach state %v, currently %v", id, want, k.ProcessState(id))
		}
		time.Sleep(time.Millisecond)
	}
}

// initSpawnThenExit returns an "init" TaskFunc that creates one process
// per name in images, in order, then terminates itself.
func initSpawnThenExit(images []string) sim.TaskFunc {
	return func(ctx *sim.TaskContext) {
		for _, img := range images {
			ctx.CreateProcess(img)
		}
		ctx.TerminateProcess()
	}
}

// cpuBoundTask returns a TaskFunc that ticks forever until stop is
// closed, the simulated equivalent of spec.md §8 scenario 1's tight
// CPU-bound loop.
func cpuBoundTask(stop <-chan struct{}) sim.TaskFunc {
	return func(ctx *sim.TaskContext) {
		for {
			select {
			case <-stop:
				ctx.TerminateProcess()
			default:
			}
			ctx.Tick()
		}
	}
}
