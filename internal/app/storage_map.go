package app

import (
	"os"
	"strings"

	"recur/internal/config"
	"recur/internal/storage"
	logx "recur/pkg/logx"
)

// mapStorageConfig resolves where state lives.
//
// Precedence: RECUR_STATE, then [storage].path, then .state.json.
// The driver follows [storage].driver, else the path extension.
func mapStorageConfig(cfg *config.Config) (storage.Config, error) {
	var sc config.StorageConfig
	if cfg != nil {
		sc = cfg.Storage
	}

	path := strings.TrimSpace(os.Getenv(storage.EnvPath))
	if path == "" {
		path = strings.TrimSpace(sc.Path)
	}
	if path == "" {
		path = storage.DefaultPath
	}

	busy, err := config.ParseDuration("storage.busy_timeout", sc.BusyTimeout, 0)
	if err != nil {
		return storage.Config{}, err
	}
	return storage.Config{
		Driver:      strings.ToLower(strings.TrimSpace(sc.Driver)),
		Path:        path,
		BusyTimeout: busy,
	}, nil
}

func mapLoggingConfig(cfg *config.Config) logx.Config {
	if cfg == nil {
		return logx.Config{}
	}
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	}
}
