package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-formsubmissions/pkg/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	if err := newRootCommand(a).ExecuteContext(ctx); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		a.logger().Error("command failed", "error", err)
		os.Exit(1)
	}
}
