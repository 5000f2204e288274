package app

import (
	"context"
	"errors"
	"io"
	"strings"

	logx "recur/pkg/logx"
)

// runInteractive lists the schedule and runs at most one task chosen by the
// user. Anything but a valid number is ignored without a message.
func (a *App) runInteractive(ctx context.Context) Report {
	for i, t := range a.tasks {
		a.printf("%d. %s (%s)\n", i+1, t.Name, a.age(t))
	}
	a.printf("\nTask #: ")

	line, err := a.readSelection(ctx)
	if err != nil {
		if ctx.Err() != nil {
			a.printf("\n")
			a.log.Debug("selection interrupted", logx.Err(err))
			return Report{Interrupted: true}
		}
		if !errors.Is(err, io.EOF) {
			a.log.Debug("selection read failed", logx.Err(err))
		}
	}

	sel := ParseSelection(line, len(a.tasks))
	rep := Report{Selection: sel}
	if sel.Kind != SelectionValid {
		a.log.Debug("selection ignored", logx.Int("kind", int(sel.Kind)))
		return rep
	}

	t := a.tasks[sel.Index]
	a.printf("Running: %s\n", t.Name)
	o := a.execute(ctx, t)
	if o.OK() {
		a.printf("✓\n")
		rep.Executed++
		return rep
	}
	a.printf("%s\n", failureLine(t.Name, o))
	rep.Failed++
	return rep
}

type lineResult struct {
	line string
	err  error
}

// readSelection waits for one input line or for ctx to end, whichever comes
// first. On cancellation the reader goroutine is abandoned; the process is
// about to exit.
func (a *App) readSelection(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := make(chan lineResult, 1)
	go func() {
		line, err := readLine(a.in)
		ch <- lineResult{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return r.line, r.err
	}
}

// readLine reads up to and including the first '\n' one byte at a time, so
// nothing past the line is consumed: the rest of stdin belongs to the task.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			return sb.String(), err
		}
	}
}
