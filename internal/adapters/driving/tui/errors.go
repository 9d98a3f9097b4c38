package tui

import "errors"

// ErrMissingConsolidationService is returned when the consolidation service is not provided.
var ErrMissingConsolidationService = errors.New("tui: consolidation service is required")
