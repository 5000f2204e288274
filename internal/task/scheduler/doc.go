// Package scheduler decides which tasks are due.
//
// Due-ness is a pure function of the run's reference time, the task's last
// successful run and its recurrence window. The package never executes
// anything and never mutates state; the app layer owns both.
package scheduler
