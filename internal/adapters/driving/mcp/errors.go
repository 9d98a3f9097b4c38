// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the consolidator. It lets assistants inspect usages, plan rewrites and
// run the same replace and delete steps as the CLI.
package mcp

import "errors"

// ErrMissingConsolidationService is returned when the consolidation service is not provided.
var ErrMissingConsolidationService = errors.New("mcp: consolidation service is required")
