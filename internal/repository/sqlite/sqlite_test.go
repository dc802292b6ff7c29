package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/repository/sqlite"
)

func newTestBacking(t *testing.T) *sqlite.Backing {
	t.Helper()
	backing, err := sqlite.New(filepath.Join(t.TempDir(), "taskboard.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { backing.Close() })
	return backing
}

func TestLoad_EmptyDatabase(t *testing.T) {
	backing := newTestBacking(t)

	if _, err := backing.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty database, got %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	backing := newTestBacking(t)

	want := &domain.Snapshot{
		Users:  []domain.User{{ID: "u1", Email: "a@b.com", Password: "hash", Name: "A"}},
		Boards: []domain.Board{{ID: "b1", UserID: "u1", Title: "Work"}},
		Tasks:  []domain.Task{{ID: "t1", BoardID: "b1", UserID: "u1", Title: "Ship", Status: domain.TaskStatusPending}},
	}
	if err := backing.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := backing.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Users) != 1 || got.Users[0].ID != "u1" {
		t.Fatalf("unexpected users: %+v", got.Users)
	}
	if len(got.Boards) != 1 || got.Boards[0].Title != "Work" {
		t.Fatalf("unexpected boards: %+v", got.Boards)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Status != domain.TaskStatusPending {
		t.Fatalf("unexpected tasks: %+v", got.Tasks)
	}
}

func TestSave_UpsertsSingleRow(t *testing.T) {
	ctx := context.Background()
	backing := newTestBacking(t)

	if err := backing.Save(ctx, &domain.Snapshot{Users: []domain.User{{ID: "u1"}}}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := backing.Save(ctx, &domain.Snapshot{Users: []domain.User{{ID: "u1"}, {ID: "u2"}}}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := backing.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Users) != 2 {
		t.Fatalf("expected second save to replace the first, got %d users", len(got.Users))
	}
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "taskboard.db")

	backing, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := backing.Save(ctx, &domain.Snapshot{Boards: []domain.Board{{ID: "b1", Title: "Durable"}}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := backing.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(got.Boards) != 1 || got.Boards[0].Title != "Durable" {
		t.Fatalf("expected snapshot to survive reopen, got %+v", got.Boards)
	}
}
