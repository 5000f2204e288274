package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	logx "recur/pkg/logx"
)

// Store is the persistence API used by the app.
type Store interface {
	// Load returns the persisted state, or an empty one if it is absent or unusable.
	Load(ctx context.Context) State
	// Save replaces the persisted state with st.
	Save(ctx context.Context, st State) error
	Close() error
}

// Recorder is implemented by stores that keep an execution history.
type Recorder interface {
	Record(ctx context.Context, r RunRecord) error
}

// Open initializes the configured store.
//
// fs backs the file driver; the sqlite driver always uses the OS filesystem.
func Open(fs afero.Fs, cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, ErrNoPath
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	switch d := cfg.driver(); d {
	case DriverFile, "json":
		return openFile(fs, cfg, log.With(logx.String("store", DriverFile)))
	case DriverSQLite, "sqlite3":
		return openSQLite(cfg, log.With(logx.String("store", DriverSQLite)))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, d)
	}
}
