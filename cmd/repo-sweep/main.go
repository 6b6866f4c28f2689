package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"repo-sweep/internal/exitcodes"
	"repo-sweep/internal/sweep"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Execute(ctx); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps run outcomes onto the operational exit-code contract
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, sweep.ErrDeclined):
		return exitcodes.Declined
	case errors.Is(err, errInvalidConfig):
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitcodes.InvalidConfig
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitcodes.RuntimeError
	}
}
