package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultPath is the state resource used when RECUR_STATE is unset.
	DefaultPath = ".state.json"
	// EnvPath overrides DefaultPath.
	EnvPath = "RECUR_STATE"

	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

var (
	ErrNoPath        = errors.New("storage path is required")
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrClosed        = errors.New("storage closed")
)

// Config configures storage.
//
// If Driver is empty it is inferred from the Path extension:
// ".db", ".sqlite" and ".sqlite3" select SQLite, anything else the JSON file.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

func (c Config) driver() string {
	d := strings.ToLower(strings.TrimSpace(c.Driver))
	if d != "" {
		return d
	}
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".db", ".sqlite", ".sqlite3":
		return DriverSQLite
	default:
		return DriverFile
	}
}

// LastRun maps a task name to the Unix time (seconds) of its last successful run.
type LastRun map[string]uint64

// Get returns the entry for name; ok=false means the task never succeeded.
func (m LastRun) Get(name string) (uint64, bool) {
	v, ok := m[name]
	return v, ok
}

// Clone returns an independent copy (never nil).
func (m LastRun) Clone() LastRun {
	out := make(LastRun, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// State is the persisted document.
type State struct {
	LastRun LastRun `json:"last_run"`
}

// Empty returns a fresh-start state.
func Empty() State { return State{LastRun: LastRun{}} }

func (s State) normalized() State {
	if s.LastRun == nil {
		s.LastRun = LastRun{}
	}
	return s
}

// RunRecord is one execution attempt, kept by stores that implement Recorder.
type RunRecord struct {
	RunID    string
	Task     string
	At       uint64 // the run's reference time, not the completion time
	OK       bool
	ExitCode int
	Error    string
	Took     time.Duration
}
