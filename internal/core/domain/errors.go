package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProcessActive indicates a finder process is still running and the
	// user declined to kill it.
	ErrProcessActive = errors.New("a dupes process is running")

	// ErrNoSession indicates an operation needs a search that was never started.
	ErrNoSession = errors.New("no search session")

	// ErrEmptyDirectories indicates a search was requested without directories.
	ErrEmptyDirectories = errors.New("no directories to search")
)

// NotADirectoryError reports a search path that is missing or not a directory.
type NotADirectoryError struct {
	Path  string
	Cause error
}

func (e *NotADirectoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("not a directory: %s: %v", e.Path, e.Cause)
	}
	return "not a directory: " + e.Path
}

// Unwrap returns the underlying filesystem error, if any.
func (e *NotADirectoryError) Unwrap() error {
	return e.Cause
}

// ProgramNotFoundError reports a finder program that is not on PATH.
type ProgramNotFoundError struct {
	Program string
	Cause   error
}

func (e *ProgramNotFoundError) Error() string {
	return fmt.Sprintf("search program %q not found: %v", e.Program, e.Cause)
}

// Unwrap returns the lookup error.
func (e *ProgramNotFoundError) Unwrap() error {
	return e.Cause
}

// SpawnError reports a pipeline that could not be started.
type SpawnError struct {
	Command string
	Cause   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting %q: %v", e.Command, e.Cause)
}

// Unwrap returns the start error.
func (e *SpawnError) Unwrap() error {
	return e.Cause
}
