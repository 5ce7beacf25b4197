package harness

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/uiverify/pkg/config"
)

// RunStandalone runs one named scenario with settings from ./uiverify.yaml
// and UIVERIFY_* variables, and returns the process exit code.
//
// The scenario outcome never affects the exit code: it is reported on
// stdout and in the output directory. Only a harness that cannot start
// (bad settings, missing browser) returns 1.
func RunStandalone(name string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Println("\n\nShutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	settings, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	h, err := New(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer h.Close()

	if _, err := h.Run(ctx, []string{name}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
