// Package tui provides an interactive terminal user interface for consolidator.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/consolidator/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Consolidation finds, rewrites and removes duplicate references.
	Consolidation driving.ConsolidationService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(consolidation driving.ConsolidationService) *Ports {
	return &Ports{Consolidation: consolidation}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Consolidation == nil {
		return ErrMissingConsolidationService
	}
	return nil
}
