package main

import (
	"fmt"

	"github.com/k3xr/minikernel/hal"
	"github.com/k3xr/minikernel/hal/sim"
)

// registerDemoImages loads the bundled demo workload into loader: an
// init process that spawns a counter, an echo reader, and a pair of
// processes contending over a shared named mutex.
func registerDemoImages(loader *sim.ImageLoader) {
	loader.Register("init", initTask)
	loader.Register("counter", counterTask)
	loader.Register("echo", echoTask)
	loader.Register("mutex-a", mutexContenderTask("mutex-a: "))
	loader.Register("mutex-b", mutexContenderTask("mutex-b: "))
}

// initTask spawns the rest of the demo workload once, then spins
// forever ticking the clock so the scheduler has something driving
// time forward even while every other process is blocked.
func initTask(ctx *sim.TaskContext) {
	for _, img := range []string{"counter", "echo", "mutex-a", "mutex-b"} {
		if ctx.CreateProcess(img) != 0 {
			ctx.Write([]byte(fmt.Sprintf("init: failed to start %s\n", img)))
		}
	}

	for {
		ctx.Tick()
	}
}

// counterTask prints its own pid and accounting counters once a second,
// forever, exercising write, get_pid, times, and sleep.
func counterTask(ctx *sim.TaskContext) {
	pid := ctx.GetPid()

	for {
		var acc hal.TimesOut
		tick := ctx.Times(&acc)
		ctx.Write([]byte(fmt.Sprintf("counter[%d]: tick=%d user=%d sys=%d\n",
			pid, tick, acc.TicksUser, acc.TicksSystem)))
		ctx.Sleep(1)
	}
}

// echoTask blocks on read_char and writes back whatever it reads,
// exercising the terminal ring buffer and the blocking-read path.
func echoTask(ctx *sim.TaskContext) {
	for {
		c := ctx.ReadChar()
		ctx.Write([]byte{byte(c), '\n'})
	}
}

// mutexContenderTask returns a TaskFunc that opens a shared mutex
// (creating it if it doesn't exist yet, tolerating the name-collision
// race against its sibling), then repeatedly locks, does a little
// "work" by ticking, and unlocks — exercising the named-mutex facility
// under real contention between two processes.
func mutexContenderTask(label string) sim.TaskFunc {
	return func(ctx *sim.TaskContext) {
		const name = "demo-mutex"

		switch ctx.CreateMutex(name, false) {
		case 0, -3:
			// created it, or a sibling beat us to it — either way it
			// now exists under this name.
		default:
			ctx.Write([]byte(label + "create_mutex failed, giving up\n"))
			ctx.TerminateProcess()
		}

		handle := ctx.OpenMutex(name)
		if handle < 0 {
			ctx.Write([]byte(label + "open_mutex failed, giving up\n"))
			ctx.TerminateProcess()
		}

		for {
			ctx.Lock(handle)
			ctx.Write([]byte(label + "in critical section\n"))
			for i := 0; i < 3; i++ {
				ctx.Tick()
			}
			ctx.Unlock(handle)
			ctx.Sleep(2)
		}
	}
}
