package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/k3xr/minikernel/klog"
)

// Version information, set at build time.
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

var (
	globalLogFile   string
	globalLogFormat string
	globalLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "minikernel",
	Short: "Educational process-control microkernel",
	Long: `minikernel simulates a single-CPU process-control subsystem: a
BCP table, a FIFO round-robin scheduler, interrupt-priority levels, and
a named-mutex facility, all driven over a software CPU rather than real
hardware.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetContext returns a context that cancels on SIGINT/SIGTERM, carrying
// the configured default logger so anything downstream that only has a
// context (the terminal driver) can still log consistently.
func GetContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return klog.ContextWithLogger(ctx, klog.Default())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalLogFile, "log", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&globalLogFormat, "log-format", "text", "log output format (text or json)")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func setupLogging() {
	out := os.Stderr
	if globalLogFile != "" {
		f, err := os.OpenFile(globalLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err == nil {
			out = f
		}
	}

	logger := klog.NewLogger(klog.Config{
		Level:  klog.ParseLevel(globalLogLevel),
		Format: globalLogFormat,
		Output: out,
	})
	klog.SetDefault(logger)
}
