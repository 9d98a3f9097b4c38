// Package driving declares what front ends may ask of the engine: the
// CLI, the MCP server and the TUI all go through ConsolidationService.
// internal/core/services provides the implementation.
package driving
