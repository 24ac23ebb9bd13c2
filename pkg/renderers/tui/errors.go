package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrSubmitterRequired is returned by New when no submitter is configured.
	ErrSubmitterRequired = errors.New("tui: submitter is required")
)
