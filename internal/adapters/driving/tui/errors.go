package tui

import "errors"

// ErrMissingSession is returned when the search session is not provided.
var ErrMissingSession = errors.New("tui: search session is required")

// ErrMissingActions is returned when the entry action service is not provided.
var ErrMissingActions = errors.New("tui: entry action service is required")

// ErrMissingBuffer is returned when the listing buffer is not provided.
var ErrMissingBuffer = errors.New("tui: listing buffer is required")
