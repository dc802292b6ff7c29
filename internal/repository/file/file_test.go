package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/repository/file"
)

func testSnapshot() *domain.Snapshot {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Snapshot{
		Users: []domain.User{
			{ID: "u1", Email: "a@b.com", Password: "$2a$04$hash", Name: "A", CreatedAt: now},
		},
		Boards: []domain.Board{
			{ID: "b1", UserID: "u1", Title: "Work", Order: 0, CreatedAt: now, UpdatedAt: now},
		},
		Tasks: []domain.Task{
			{ID: "t1", BoardID: "b1", UserID: "u1", Title: "Ship it", Status: domain.TaskStatusPending, Order: 0, CreatedAt: now, UpdatedAt: now},
		},
	}
}

func TestLoad_MissingFile(t *testing.T) {
	backing, err := file.New(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := backing.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing file, got %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	backing, err := file.New(filepath.Join(t.TempDir(), "snapshot.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := testSnapshot()
	if err := backing.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := backing.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Users) != 1 || got.Users[0].Email != "a@b.com" {
		t.Fatalf("unexpected users after round trip: %+v", got.Users)
	}
	if len(got.Boards) != 1 || got.Boards[0].Title != "Work" {
		t.Fatalf("unexpected boards after round trip: %+v", got.Boards)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Status != domain.TaskStatusPending {
		t.Fatalf("unexpected tasks after round trip: %+v", got.Tasks)
	}
}

func TestSave_Overwrites(t *testing.T) {
	ctx := context.Background()
	backing, err := file.New(filepath.Join(t.TempDir(), "snapshot.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := backing.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := backing.Save(ctx, &domain.Snapshot{Users: []domain.User{}, Boards: []domain.Board{}, Tasks: []domain.Task{}}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := backing.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Users) != 0 || len(got.Boards) != 0 || len(got.Tasks) != 0 {
		t.Fatalf("expected second save to replace the first, got %+v", got)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	backing, err := file.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Corruption degrades to absence so startup can proceed empty.
	if _, err := backing.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for corrupt file, got %v", err)
	}
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "snapshot.json")

	backing, err := file.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := backing.Save(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Save into created directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot file to exist: %v", err)
	}
}
