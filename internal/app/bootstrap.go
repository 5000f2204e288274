package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"recur/internal/config"
	"recur/internal/storage"
	"recur/internal/task/engine"
	logx "recur/pkg/logx"
)

// Main wires config, logging, storage and the runner, then performs one pass.
//
// Returned errors are fatal: an unusable config, an unopenable store, or a
// failed final save. Everything else is reported on opts.Out and absorbed.
func Main(ctx context.Context, fs afero.Fs, configPath string, opts Options) (Report, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cfg, err := config.Load(fs, configPath)
	if err != nil {
		return Report{}, fmt.Errorf("load config: %w", err)
	}

	logs, log := logx.New(mapLoggingConfig(cfg))
	defer logs.Close()

	sc, err := mapStorageConfig(cfg)
	if err != nil {
		return Report{}, fmt.Errorf("storage config: %w", err)
	}
	store, err := storage.Open(fs, sc, log)
	if err != nil {
		return Report{}, fmt.Errorf("open state %s: %w", sc.Path, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("state close failed", logx.Err(err))
		}
	}()

	runner := engine.New(engine.Config{Stdin: opts.In, Stdout: opts.Out}, log)
	a := New(cfg.Schedule, store, runner, log, opts)
	return a.Run(ctx)
}
