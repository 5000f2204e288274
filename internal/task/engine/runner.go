package engine

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	logx "recur/pkg/logx"
)

// Runner executes task commands through a shell, one at a time.
//
// Output is not captured: the child inherits the configured streams so the
// user sees it live. Only the exit status is observed.
type Runner struct {
	cfg Config
	log logx.Logger
}

func New(cfg Config, log logx.Logger) *Runner {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Runner{cfg: cfg.withDefaults(), log: log}
}

// Run launches command verbatim as a single shell command line and blocks
// until it exits.
//
// ctx only bounds logging; the child is never killed on cancellation, since
// tasks carry no timeout. A terminal interrupt still reaches the child
// through the shared process group.
func (r *Runner) Run(ctx context.Context, command string) Outcome {
	_ = ctx
	if r == nil {
		return Outcome{Kind: SpawnError, Code: UnknownExitCode, Err: ErrNilRunner}
	}
	if strings.TrimSpace(command) == "" {
		return Outcome{Kind: SpawnError, Code: UnknownExitCode, Err: ErrEmptyCommand}
	}

	cmd := exec.Command(r.cfg.Shell, r.cfg.ShellFlag, command)
	cmd.Stdin = r.cfg.Stdin
	cmd.Stdout = r.cfg.Stdout
	cmd.Stderr = r.cfg.Stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		r.log.Debug("command spawn failed", logx.String("shell", r.cfg.Shell), logx.Err(err))
		return Outcome{Kind: SpawnError, Code: UnknownExitCode, Err: fmt.Errorf("start %s: %w", r.cfg.Shell, err), Took: time.Since(start)}
	}
	err := cmd.Wait()
	took := time.Since(start)

	if err == nil {
		r.log.Debug("command finished", logx.Int("exit_code", 0), logx.Duration("took", took))
		return Outcome{Kind: Success, Code: 0, Took: took}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		r.log.Debug("command failed", logx.Int("exit_code", code), logx.Duration("took", took))
		return Outcome{Kind: Failure, Code: code, Took: took}
	}

	// Wait can also fail on stream copy errors; the status is then unknown.
	r.log.Debug("command wait failed", logx.Err(err), logx.Duration("took", took))
	return Outcome{Kind: Failure, Code: UnknownExitCode, Err: err, Took: took}
}
