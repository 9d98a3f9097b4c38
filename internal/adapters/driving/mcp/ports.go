package mcp

import (
	"github.com/custodia-labs/consolidator/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	Consolidation driving.ConsolidationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Consolidation == nil {
		return ErrMissingConsolidationService
	}
	return nil
}
