// Package backend selects and constructs the snapshot store the ledger
// persists through.
package backend

import (
	"context"

	"tally/internal/ledger"
)

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result contains the constructed snapshot store and optional cleanup.
type Result struct {
	Snapshots ledger.SnapshotStore
	Cleanup   CleanupFunc
}

// Factory creates snapshot stores based on configuration.
type Factory interface {
	Create(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// File backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string
}

// Type identifies a snapshot store implementation.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{FileBackend, SQLiteBackend}
}

// TypeStrings returns all valid backend type names.
func TypeStrings() []string {
	types := Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}
