package app

import (
	"context"

	"recur/internal/task/engine"
)

// runAutomatic walks the schedule in config order and runs every due task.
//
// Due-ness is checked against the live state, so a later task sharing a name
// with one that just succeeded sees the fresh entry.
func (a *App) runAutomatic(ctx context.Context) Report {
	var rep Report
	a.printf("[%s] Scheduler check\n", a.timestamp())

	for _, t := range a.tasks {
		if ctx.Err() != nil {
			a.printf("  - %s: skipped (interrupted)\n", t.Name)
			rep.Skipped++
			rep.Interrupted = true
			continue
		}

		v := a.verdict(t)
		switch {
		case v.Never:
			a.printf("  - %s: never run, executing now\n", t.Name)
		case v.Due:
			a.printf("  - %s: last run %dh ago (>%dh window), executing\n", t.Name, v.ElapsedHours(), v.WindowHours())
		default:
			a.printf("  - %s: not due yet (%dh remaining)\n", t.Name, v.RemainingHours())
			continue
		}

		o := a.execute(ctx, t)
		if o.Kind == engine.Success {
			a.printf("  ✓ %s: completed successfully\n", t.Name)
			rep.Executed++
			continue
		}
		a.printf("  %s\n", failureLine(t.Name, o))
		rep.Failed++
	}

	a.printf("[%s] Check complete: %d task(s) executed\n\n", a.timestamp(), rep.Executed)
	return rep
}
