package app

import (
	"context"

	"recur/internal/task/engine"
)

// Mode is chosen once per invocation.
type Mode int

const (
	ModeInteractive Mode = iota
	ModeAutomatic
)

func (m Mode) String() string {
	if m == ModeAutomatic {
		return "automatic"
	}
	return "interactive"
}

// Executor runs one task command. *engine.Runner is the production implementation.
type Executor interface {
	Run(ctx context.Context, command string) engine.Outcome
}

// Report summarizes one invocation.
type Report struct {
	Mode Mode

	// Executed counts successful runs.
	Executed int
	Failed   int
	Skipped  int

	// Interrupted is set when ctx was cancelled before the pass finished.
	Interrupted bool

	// Selection is only meaningful in interactive mode.
	Selection Selection
}
