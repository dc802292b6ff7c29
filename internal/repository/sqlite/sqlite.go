// Package sqlite implements domain.SnapshotBacking on an embedded SQLite
// database. The snapshot is stored as one JSON document in a single-row
// table, preserving the whole-snapshot rewrite contract of the file
// backing while gaining transactional writes.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/msomdec/taskboard/internal/domain"
)

// snapshotRowID is the fixed primary key of the single snapshot row.
const snapshotRowID = 1

// Backing is a SQLite-backed snapshot store.
type Backing struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at the given path and
// prepares the snapshot table. It enables WAL mode and restricts the
// pool to a single connection, which SQLite handles best.
func New(path string) (*Backing, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS snapshot (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Backing{db: db}, nil
}

// Close releases the underlying database handle.
func (b *Backing) Close() error {
	return b.db.Close()
}

func (b *Backing) Load(ctx context.Context) (*domain.Snapshot, error) {
	var data string
	err := b.db.QueryRowContext(ctx,
		"SELECT data FROM snapshot WHERE id = ?", snapshotRowID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (b *Backing) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = b.db.ExecContext(ctx, `
		INSERT INTO snapshot (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		snapshotRowID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
