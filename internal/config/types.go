package config

import "errors"

const (
	// DefaultPath is the schedule read when RECUR_CONFIG is unset.
	DefaultPath = "schedule.toml"
	// EnvPath overrides DefaultPath.
	EnvPath = "RECUR_CONFIG"
)

// ErrInvalidConfig wraps every parse and validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Schedule is kept in document order; interactive numbering follows it.
	Schedule []Task `json:"schedule"`

	Logging LoggingConfig `json:"logging"`
	Storage StorageConfig `json:"storage"`
}

// Task is one named shell command with its recurrence window.
//
// Names are not required to be unique. Two tasks with the same name share a
// single last-run entry.
type Task struct {
	Name            string `json:"name"`
	Command         string `json:"command"`
	TimeWindowHours uint64 `json:"time_window_hours"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// StorageConfig selects where last-run state lives.
//
// Example (TOML):
//
//	[storage]
//	path = "~/.local/state/recur.db"
//	busy_timeout = "2s"
//
// Driver may be "file" or "sqlite"; when omitted it follows the path extension.
// The RECUR_STATE environment variable takes precedence over Path.
type StorageConfig struct {
	Driver      string `json:"driver,omitempty"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}
