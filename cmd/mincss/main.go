package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bennypowers.dev/mincss/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(app.ContextWithEnv(context.Background(), os.Stdout), os.Interrupt, syscall.SIGTERM)
	env := app.EnvFromContext(ctx)

	var err error
	// os.Exit skips deferred calls, so it must stay the last one
	defer func() {
		stop()
		if err != nil {
			// the log may not be set up yet when argument parsing fails
			if !env.ErrHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.New().Run(ctx, os.Args)
}
