package sim

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/k3xr/minikernel/hal"
)

func TestStdinSourceDeliversBytesAndReturnsOnEOF(t *testing.T) {
	c := NewCPU()
	var got []byte
	done := make(chan struct{})
	c.InstallHandler(hal.TerminalInt, func() {
		got = append(got, c.ReadPort(hal.Terminal))
		if len(got) == 3 {
			close(done)
		}
	})

	src := NewStdinSource(c, -1, strings.NewReader("xyz"))

	runDone := make(chan struct{})
	go func() {
		src.Run(context.Background())
		close(runDone)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("did not observe all three delivered bytes")
	}

	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after its reader hit EOF")
	}

	if string(got) != "xyz" {
		t.Errorf("got %q, want %q", got, "xyz")
	}
}

func TestStdinSourceCancelledByContext(t *testing.T) {
	c := NewCPU()
	ctx, cancel := context.WithCancel(context.Background())

	blocker, writer := io.Pipe()
	defer writer.Close()
	src := NewStdinSource(c, -1, blocker)

	runDone := make(chan struct{})
	go func() {
		src.Run(ctx)
		close(runDone)
	}()

	cancel()

	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
