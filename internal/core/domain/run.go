package domain

import (
	"fmt"
	"time"
)

// Status indicators shown while and after a finder pipeline runs.
const (
	StatusRunning  = ":run"
	StatusExited   = ":exit"
	StatusSignaled = ":signal"
)

// ExitStatus describes how a finder pipeline terminated.
type ExitStatus struct {
	// Code is the exit code. It is -1 when the process was signalled.
	Code int `json:"code"`

	// Signal is the description of the terminating signal, such as
	// "interrupt" or "killed". Empty for a normal exit.
	Signal string `json:"signal,omitempty"`
}

// Signaled reports whether the process was terminated by a signal.
func (s ExitStatus) Signaled() bool {
	return s.Signal != ""
}

// Success reports a normal exit with code zero.
func (s ExitStatus) Success() bool {
	return !s.Signaled() && s.Code == 0
}

// Description returns the status text used in the summary line.
func (s ExitStatus) Description() string {
	switch {
	case s.Signaled():
		return s.Signal
	case s.Code == 0:
		return "finished"
	default:
		return fmt.Sprintf("exited abnormally with code %d", s.Code)
	}
}

// Indicator returns the status indicator for a terminated process.
func (s ExitStatus) Indicator() string {
	if s.Signaled() {
		return StatusSignaled
	}
	return StatusExited
}

// SessionState is the lifecycle state of a process session.
type SessionState int

// Session states.
const (
	SessionIdle SessionState = iota
	SessionRunning
	SessionTerminating
)

// String returns the string representation.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionRunning:
		return "running"
	case SessionTerminating:
		return "terminating"
	default:
		return unknownDescription
	}
}

// RunResult is what a process session reports when a run completes.
type RunResult struct {
	Program    string
	Command    string
	Status     ExitStatus
	Entries    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the run took.
func (r RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunRecord is a finished run kept in history.
type RunRecord struct {
	ID         string      `json:"id"`
	Search     SearchState `json:"search"`
	Program    string      `json:"program"`
	Command    string      `json:"command"`
	Status     ExitStatus  `json:"status"`
	Entries    int         `json:"entries"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}

// StatusText returns the summary status of the run.
func (r RunRecord) StatusText() string {
	return r.Status.Description()
}
