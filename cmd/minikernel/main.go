// minikernel boots a simulated CPU and a process-control kernel on top
// of it, driving a small bundle of demo tasks through the scheduler,
// the named-mutex facility, and the terminal device.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "minikernel: %v\n", err)
		os.Exit(1)
	}
}
