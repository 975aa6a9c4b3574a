package sim

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/term"

	"github.com/k3xr/minikernel/klog"
)

// StdinSource reads real keystrokes from fd (typically os.Stdin's file
// descriptor) in raw mode and delivers them one byte at a time to the
// CPU's terminal device, the live equivalent of the original hardware's
// keyboard controller. It implements hal.Booter so cmd/minikernel can
// cancel it on shutdown.
type StdinSource struct {
	cpu *CPU
	fd  int
	r   io.Reader
}

// NewStdinSource returns a terminal source that reads from r, putting the
// descriptor fd into raw mode for the duration of Run. Pass -1 for fd
// when r is not backed by a real terminal (e.g. in tests).
func NewStdinSource(cpu *CPU, fd int, r io.Reader) *StdinSource {
	return &StdinSource{cpu: cpu, fd: fd, r: r}
}

// Run reads bytes from the source and delivers each to the CPU until ctx
// is canceled or the source returns an error.
func (s *StdinSource) Run(ctx context.Context) {
	log := klog.FromContext(ctx)

	if s.fd >= 0 && term.IsTerminal(s.fd) {
		prior, err := term.MakeRaw(s.fd)
		if err != nil {
			log.Error("terminal: failed to enter raw mode", "error", err)
		} else {
			defer term.Restore(s.fd, prior)
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		br := bufio.NewReader(s.r)
		for {
			b, err := br.ReadByte()
			if err != nil {
				if err != io.EOF {
					log.Error("terminal: read error", "error", err)
				}
				return
			}
			s.cpu.DeliverChar(b)
		}
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
}
