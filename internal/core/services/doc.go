// Package services implements the driving port interfaces.
// Services contain the consolidation engine and orchestrate
// calls to driven ports (host adapters).
//
// The engine runs as a strict sequence of separate steps:
// index, plan, execute, rebuild the index, then gate deletion.
// Indexing and planning are pure reads. Only the executor mutates
// the host, and only through ConsumerReflection.SetSlot.
package services
