// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Daybook. It enables AI assistants like Claude to search the journal index
// and ask questions answered from journal entries.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
