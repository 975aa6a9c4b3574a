package klog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: &buf,
	})

	logger.Info("kernel booted", "ticks_per_sec", 10)

	output := buf.String()
	if !strings.Contains(output, "kernel booted") {
		t.Errorf("expected output to contain %q, got: %s", "kernel booted", output)
	}
	if !strings.Contains(output, "ticks_per_sec=10") {
		t.Errorf("expected output to contain ticks_per_sec=10, got: %s", output)
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "json",
		Output: &buf,
	})

	logger.Info("kernel booted", "ticks_per_sec", 10)

	output := buf.String()
	if !strings.Contains(output, `"msg":"kernel booted"`) {
		t.Errorf("expected JSON output to contain msg field, got: %s", output)
	}
	if !strings.Contains(output, `"ticks_per_sec":10`) {
		t.Errorf("expected JSON output to contain ticks_per_sec field, got: %s", output)
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelWarn,
		Format: "text",
		Output: &buf,
	})

	logger.Info("scheduler dispatched process")
	if strings.Contains(buf.String(), "scheduler dispatched process") {
		t.Error("info message should be filtered at warn level")
	}

	logger.Warn("arithmetic exception")
	if !strings.Contains(buf.String(), "arithmetic exception") {
		t.Error("warn message should be logged at warn level")
	}
}

func TestWithProcess(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: &buf,
	})

	procLogger := WithProcess(logger, 3)
	procLogger.Info("terminated")

	output := buf.String()
	if !strings.Contains(output, "pid=3") {
		t.Errorf("expected pid in output, got: %s", output)
	}
}

func TestWithOp(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: &buf,
	})

	opLogger := WithOp(logger, "create_mutex")
	opLogger.Info("mutex created")

	output := buf.String()
	if !strings.Contains(output, "op=create_mutex") {
		t.Errorf("expected op in output, got: %s", output)
	}
}

func TestChainedWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "json",
		Output: &buf,
	})

	chained := WithOp(WithProcess(logger, 4), "lock")
	chained.Info("blocked on mutex")

	output := buf.String()
	if !strings.Contains(output, `"pid":4`) {
		t.Errorf("missing pid in output: %s", output)
	}
	if !strings.Contains(output, `"op":"lock"`) {
		t.Errorf("missing op in output: %s", output)
	}
}

func TestContextWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: &buf,
	})

	ctx := ContextWithLogger(context.Background(), logger)
	retrieved := FromContext(ctx)

	if retrieved != logger {
		t.Error("expected to retrieve the same logger from context")
	}

	retrieved.Info("terminal driver started")
	if !strings.Contains(buf.String(), "terminal driver started") {
		t.Error("expected message to be logged via context logger")
	}
}

func TestFromContext_Default(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	if logger == nil {
		t.Error("expected non-nil default logger")
	}
	if logger != Default() {
		t.Error("expected default logger when no logger in context")
	}
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	newLogger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: &buf,
	})

	oldDefault := Default()
	SetDefault(newLogger)
	defer SetDefault(oldDefault)

	if Default() != newLogger {
		t.Error("SetDefault did not change the default logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelDebug,
		Format: "text",
		Output: &buf,
	})

	oldDefault := Default()
	SetDefault(logger)
	defer SetDefault(oldDefault)

	Info("info message")
	if !strings.Contains(buf.String(), "INFO") || !strings.Contains(buf.String(), "info message") {
		t.Errorf("Info() failed, output: %s", buf.String())
	}
	buf.Reset()

	Warn("warn message")
	if !strings.Contains(buf.String(), "WARN") || !strings.Contains(buf.String(), "warn message") {
		t.Errorf("Warn() failed, output: %s", buf.String())
	}
	buf.Reset()

	Error("error message")
	if !strings.Contains(buf.String(), "ERROR") || !strings.Contains(buf.String(), "error message") {
		t.Errorf("Error() failed, output: %s", buf.String())
	}
	buf.Reset()

	Debug("debug message")
	if !strings.Contains(buf.String(), "DEBUG") || !strings.Contains(buf.String(), "debug message") {
		t.Errorf("Debug() failed, output: %s", buf.String())
	}
}
