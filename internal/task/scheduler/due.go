package scheduler

import (
	"math"
	"strconv"
)

// SecondsPerHour converts recurrence windows to seconds.
const SecondsPerHour = 3600

// Verdict is the outcome of a due check.
//
// Elapsed and Remaining are in seconds. Both are zero when Never is set.
type Verdict struct {
	Due       bool
	Never     bool
	Elapsed   uint64
	Remaining uint64
	Window    uint64
}

// ElapsedHours is Elapsed in whole hours, rounded down.
func (v Verdict) ElapsedHours() uint64 { return v.Elapsed / SecondsPerHour }

// RemainingHours is Remaining in whole hours, rounded down.
func (v Verdict) RemainingHours() uint64 { return v.Remaining / SecondsPerHour }

// WindowHours is the recurrence window in hours.
func (v Verdict) WindowHours() uint64 { return v.Window / SecondsPerHour }

// Window converts hours to seconds, saturating instead of wrapping.
func Window(hours uint64) uint64 {
	if hours > math.MaxUint64/SecondsPerHour {
		return math.MaxUint64
	}
	return hours * SecondsPerHour
}

// Elapsed returns now-last floored at zero, so a timestamp from the future
// (clock skew) reads as "just ran".
func Elapsed(now, last uint64) uint64 {
	if last > now {
		return 0
	}
	return now - last
}

// Evaluate reports whether a task with the given window is due at now.
//
// last/ok is the task's entry in the last-run map; ok=false means the task
// never succeeded and is always due. Otherwise the task is due iff the
// elapsed time reaches the window (inclusive).
func Evaluate(now uint64, windowHours uint64, last uint64, ok bool) Verdict {
	window := Window(windowHours)
	if !ok {
		return Verdict{Due: true, Never: true, Window: window}
	}
	elapsed := Elapsed(now, last)
	if elapsed >= window {
		return Verdict{Due: true, Elapsed: elapsed, Window: window}
	}
	return Verdict{Elapsed: elapsed, Remaining: window - elapsed, Window: window}
}

// Age renders a last-run entry for listings: "never" or "<N>h ago".
func Age(now, last uint64, ok bool) string {
	if !ok {
		return "never"
	}
	return strconv.FormatUint(Elapsed(now, last)/SecondsPerHour, 10) + "h ago"
}
