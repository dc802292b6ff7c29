package domain

import "context"

// Snapshot is the complete durable representation of the store: all three
// collections serialized together. Every mutation rewrites the whole
// snapshot through a SnapshotBacking.
type Snapshot struct {
	Users  []User  `json:"users"`
	Boards []Board `json:"boards"`
	Tasks  []Task  `json:"tasks"`
}

// SnapshotBacking defines the durable storage contract for snapshots.
// Each implementation (flat file, SQLite, in-memory for tests) owns its
// own layout, keeping the entire backing swappable.
type SnapshotBacking interface {
	// Load returns the most recently saved snapshot, or ErrNotFound
	// when nothing has been persisted yet.
	Load(ctx context.Context) (*Snapshot, error)

	// Save durably replaces the previous snapshot.
	Save(ctx context.Context, snap *Snapshot) error
}
