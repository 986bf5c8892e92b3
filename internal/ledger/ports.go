// Package ledger owns the canonical in-memory entry sequence and
// mediates every mutation through a snapshot store.
package ledger

import "context"

// SnapshotKey is the versioned logical key the ledger persists under.
// Bumping the version leaves older snapshots intact for migration.
const SnapshotKey = "transactions_v1"

// SnapshotStore is the persistence port. The ledger treats it as an
// opaque blob store under SnapshotKey.
type SnapshotStore interface {
	// Read returns the current snapshot, or nil when none exists yet.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the snapshot wholesale.
	Write(ctx context.Context, blob []byte) error
}
