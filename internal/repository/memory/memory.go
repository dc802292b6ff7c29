// Package memory implements domain.SnapshotBacking without any durable
// storage. It exists for tests that need store semantics in isolation.
package memory

import (
	"context"
	"sync"

	"github.com/msomdec/taskboard/internal/domain"
)

// Backing keeps the last saved snapshot in memory.
type Backing struct {
	mu    sync.Mutex
	snap  *domain.Snapshot
	saves int
}

// New creates an empty in-memory backing.
func New() *Backing {
	return &Backing{}
}

func (b *Backing) Load(ctx context.Context) (*domain.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.snap == nil {
		return nil, domain.ErrNotFound
	}
	snap := *b.snap
	return &snap, nil
}

func (b *Backing) Save(ctx context.Context, snap *domain.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	copied := *snap
	b.snap = &copied
	b.saves++
	return nil
}

// SaveCount reports how many saves have been observed.
func (b *Backing) SaveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}
