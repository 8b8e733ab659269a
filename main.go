package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pguedes/gesticle/cli"
)

func main() {
	// cancel the running command on SIGINT/SIGTERM so the daemon releases
	// its bus name and control server before exiting
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute(ctx)
	}()

	if err := <-done; err != nil {
		// fang already reported the error
		stop()
		os.Exit(1)
	}
}
