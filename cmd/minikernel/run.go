package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/k3xr/minikernel/hal/sim"
	"github.com/k3xr/minikernel/kernel"
	"github.com/k3xr/minikernel/kernelerr"
)

var (
	runTicksPerSec int
	runQuantum     int
	runMaxProc     int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Boot the kernel with the bundled demo workload",
	Long: `Boots a simulated CPU, installs the six interrupt/trap handlers,
and dispatches the init process, which spawns a counter process, an
echo-on-keystroke process, and two processes contending over a shared
named mutex. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	def := kernel.DefaultConfig()
	runCmd.Flags().IntVar(&runTicksPerSec, "ticks-per-sec", def.TicksPerSec, "simulated clock rate")
	runCmd.Flags().IntVar(&runQuantum, "quantum", def.TicksPerSlice, "ticks per scheduling quantum")
	runCmd.Flags().IntVar(&runMaxProc, "max-proc", def.MaxProc, "process table size")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := GetContext()

	cpu := sim.NewCPU()
	registerDemoImages(cpu.Loader())

	term := sim.NewStdinSource(cpu, int(os.Stdin.Fd()), os.Stdin)
	go term.Run(ctx)

	cfg := kernel.DefaultConfig()
	cfg.TicksPerSec = runTicksPerSec
	cfg.TicksPerSlice = runQuantum
	cfg.MaxProc = runMaxProc

	bootErr := make(chan error, 1)
	go func() {
		_, err := kernel.Boot(cpu, cfg, "init")
		bootErr <- err
	}()

	select {
	case err := <-bootErr:
		if err != nil {
			if kind, ok := kernelerr.GetKind(err); ok {
				return fmt.Errorf("boot failed (%s): %w", kind, err)
			}
			return fmt.Errorf("boot: %w", err)
		}
		return nil
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "minikernel: shutting down")
		return nil
	}
}
