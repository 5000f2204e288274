package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"recur/internal/app"
	"recur/internal/config"
)

func main() {
	// The first interrupt is observed, not fatal: the pass stops launching
	// tasks and still persists state. Unregistering right away lets a second
	// interrupt terminate the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	err := execute(os.Args, func(auto bool) error {
		mode := app.ModeInteractive
		if auto {
			mode = app.ModeAutomatic
		}
		_, err := app.Main(ctx, afero.NewOsFs(), config.ResolvePath(config.EnvPath, config.DefaultPath), app.Options{Mode: mode})
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "recur: %s\n", err.Error())
		os.Exit(1)
	}
}
