package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"recur/internal/config"
	"recur/internal/storage"
	"recur/internal/task/engine"
	"recur/internal/task/scheduler"
	logx "recur/pkg/logx"
)

// ErrPersist wraps a failed final state save.
var ErrPersist = errors.New("persist state")

const timestampLayout = "2006-01-02 15:04:05"

// Options carries the per-invocation inputs. Zero fields get defaults.
type Options struct {
	Mode Mode

	// Now is the reference time shared by every task in the run.
	// Defaults to time.Now() at the start of Run.
	Now time.Time

	In  io.Reader
	Out io.Writer

	// RunID tags logs and history records. Defaults to a random UUID.
	RunID string

	// Location formats the automatic-mode timestamps. Defaults to time.Local.
	Location *time.Location
}

// App runs one scheduler pass: load state, dispatch the mode, persist state.
//
// The last-run map is owned by the App for the duration of Run and is never
// shared; tasks are executed strictly one after another.
type App struct {
	tasks []config.Task
	store storage.Store
	exec  Executor
	log   logx.Logger

	opts Options
	in   io.Reader
	out  io.Writer
	now  uint64

	st storage.State
}

func New(tasks []config.Task, store storage.Store, exec Executor, log logx.Logger, opts Options) *App {
	if log.IsZero() {
		log = logx.Nop()
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &App{
		tasks: tasks,
		store: store,
		exec:  exec,
		log:   log.With(logx.String("run_id", opts.RunID), logx.String("mode", opts.Mode.String())),
		opts:  opts,
		in:    opts.In,
		out:   opts.Out,
	}
}

// Run executes the selected mode and then saves state exactly once, whatever
// the mode did. Only the save can fail.
func (a *App) Run(ctx context.Context) (Report, error) {
	now := a.opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	a.now = unixSeconds(now)

	a.st = a.store.Load(ctx)
	if a.st.LastRun == nil {
		a.st.LastRun = storage.LastRun{}
	}
	a.log.Debug("run started", logx.Uint64("now", a.now), logx.Int("tasks", len(a.tasks)), logx.Int("known", len(a.st.LastRun)))

	var rep Report
	switch a.opts.Mode {
	case ModeAutomatic:
		rep = a.runAutomatic(ctx)
	default:
		rep = a.runInteractive(ctx)
	}
	rep.Mode = a.opts.Mode

	// Persist even when the run was interrupted; ctx only matters to the store.
	if err := a.store.Save(context.WithoutCancel(ctx), a.st); err != nil {
		a.log.Error("state save failed", logx.Err(err))
		return rep, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	a.log.Debug("run finished", logx.Int("executed", rep.Executed), logx.Int("failed", rep.Failed))
	return rep, nil
}

// State returns the in-memory state as of the last Run.
func (a *App) State() storage.State { return storage.State{LastRun: a.st.LastRun.Clone()} }

// execute runs one task and applies the outcome to state.
// Only a successful run moves the task's last-run entry, always to a.now.
func (a *App) execute(ctx context.Context, t config.Task) engine.Outcome {
	log := a.log.With(logx.String("task", t.Name))
	log.Info("task starting", logx.Uint64("window_hours", t.TimeWindowHours))

	o := a.exec.Run(ctx, t.Command)
	if o.OK() {
		a.st.LastRun[t.Name] = a.now
		log.Info("task succeeded", logx.Duration("took", o.Took))
	} else {
		log.Warn("task failed", logx.String("outcome", o.Kind.String()), logx.Int("exit_code", o.Code), logx.Err(o.Err))
	}
	a.record(ctx, t, o)
	return o
}

func (a *App) record(ctx context.Context, t config.Task, o engine.Outcome) {
	rec, ok := a.store.(storage.Recorder)
	if !ok {
		return
	}
	r := storage.RunRecord{
		RunID:    a.opts.RunID,
		Task:     t.Name,
		At:       a.now,
		OK:       o.OK(),
		ExitCode: o.Code,
		Took:     o.Took,
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	if err := rec.Record(context.WithoutCancel(ctx), r); err != nil {
		a.log.Warn("history record failed", logx.String("task", t.Name), logx.Err(err))
	}
}

func (a *App) verdict(t config.Task) scheduler.Verdict {
	last, ok := a.st.LastRun.Get(t.Name)
	return scheduler.Evaluate(a.now, t.TimeWindowHours, last, ok)
}

func (a *App) age(t config.Task) string {
	last, ok := a.st.LastRun.Get(t.Name)
	return scheduler.Age(a.now, last, ok)
}

func (a *App) timestamp() string {
	return time.Unix(int64(a.now), 0).In(a.opts.Location).Format(timestampLayout)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// failureLine describes a non-successful outcome for the user.
func failureLine(name string, o engine.Outcome) string {
	switch {
	case o.Kind == engine.SpawnError:
		return fmt.Sprintf("✗ %s: error executing command: %v", name, o.Err)
	case o.HasCode():
		return fmt.Sprintf("✗ %s: failed with exit code %d", name, o.Code)
	case o.Err != nil:
		return fmt.Sprintf("✗ %s: failed (exit code unknown): %v", name, o.Err)
	default:
		return fmt.Sprintf("✗ %s: failed (exit code unknown)", name)
	}
}

func unixSeconds(t time.Time) uint64 {
	s := t.Unix()
	if s < 0 {
		return 0
	}
	return uint64(s)
}
