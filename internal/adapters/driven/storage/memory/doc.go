// Package memory provides in-memory implementations of the driven ports.
//
// Host models a minimal editor: an asset database keyed by path and a set
// of consumers whose slots hold asset references. It backs tests and
// dry runs against a manifest without touching the project database.
package memory
