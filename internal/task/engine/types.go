package engine

import (
	"io"
	"os"
	"time"
)

const (
	DefaultShell     = "sh"
	DefaultShellFlag = "-c"
)

// Config controls how commands are launched.
//
// Zero fields fall back to "sh -c" and the parent's standard streams.
type Config struct {
	Shell     string
	ShellFlag string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (c Config) withDefaults() Config {
	if c.Shell == "" {
		c.Shell = DefaultShell
	}
	if c.ShellFlag == "" {
		c.ShellFlag = DefaultShellFlag
	}
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	return c
}

type OutcomeKind int

const (
	Success OutcomeKind = iota
	Failure
	SpawnError
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case SpawnError:
		return "spawn_error"
	default:
		return "unknown"
	}
}

// UnknownExitCode is reported when the process died without an exit status
// (e.g. killed by a signal).
const UnknownExitCode = -1

// Outcome is the result of one command execution.
//
//   - Success: exit status 0
//   - Failure: non-zero exit; Code is UnknownExitCode on signal termination
//   - SpawnError: the shell could not be started; Err says why
type Outcome struct {
	Kind OutcomeKind
	Code int
	Err  error
	Took time.Duration
}

func (o Outcome) OK() bool { return o.Kind == Success }

// HasCode reports whether Code carries a real exit status.
func (o Outcome) HasCode() bool { return o.Kind != SpawnError && o.Code != UnknownExitCode }
