package mcp

import (
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query provides semantic search over indexed journal chunks.
	Query driving.QueryService

	// Answer synthesizes answers from retrieved journal chunks.
	Answer driving.AnswerService

	// Admin exposes index listings and statistics.
	Admin driving.AdminService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Answer and Admin are optional; their tools and resources degrade
	// when unset.
	return nil
}
