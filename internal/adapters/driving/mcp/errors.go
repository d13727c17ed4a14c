// Package mcp provides an MCP (Model Context Protocol) server adapter for dupes.
// It lets AI assistants run duplicate searches and read the run history.
package mcp

import "errors"

// ErrMissingSessionFactory is returned when no session factory is provided.
var ErrMissingSessionFactory = errors.New("mcp: session factory is required")
