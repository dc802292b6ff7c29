// Package store holds the process-wide task/board dataset: an in-memory
// mirror of users, boards, and tasks that is re-serialized in full
// through a snapshot backing after every mutation.
//
// A single mutex serializes each operation end to end, including the
// synchronous durable write, so every request observes a consistent
// dataset. Concurrent reorders are last-writer-wins at full-collection
// granularity. Durability is best effort: a failed snapshot write keeps
// the in-memory mutation and logs a warning.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/taskboard/internal/domain"
)

// Store is the persistent dataset. Construct with New.
type Store struct {
	mu      sync.Mutex
	backing domain.SnapshotBacking

	users  map[string]*domain.User
	boards map[string]*domain.Board
	tasks  map[string]*domain.Task

	// Insertion-ordered id slices so snapshots serialize
	// deterministically and iteration matches creation history.
	userIDs  []string
	boardIDs []string
	taskIDs  []string

	bcryptCost int
}

// New builds a Store over the given backing. An existing snapshot is
// loaded; otherwise the store starts empty and immediately persists that
// empty state so the durable representation always exists.
func New(ctx context.Context, backing domain.SnapshotBacking, bcryptCost int) (*Store, error) {
	s := &Store{
		backing:    backing,
		users:      make(map[string]*domain.User),
		boards:     make(map[string]*domain.Board),
		tasks:      make(map[string]*domain.Task),
		bcryptCost: bcryptCost,
	}

	snap, err := backing.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		s.persist(ctx)
		return s, nil
	}

	for i := range snap.Users {
		u := snap.Users[i]
		s.users[u.ID] = &u
		s.userIDs = append(s.userIDs, u.ID)
	}
	for i := range snap.Boards {
		b := snap.Boards[i]
		s.boards[b.ID] = &b
		s.boardIDs = append(s.boardIDs, b.ID)
	}
	for i := range snap.Tasks {
		t := snap.Tasks[i]
		s.tasks[t.ID] = &t
		s.taskIDs = append(s.taskIDs, t.ID)
	}
	return s, nil
}

// persist re-serializes all three collections through the backing.
// Callers must hold s.mu. A backing failure is logged and swallowed:
// the in-memory mutation stands.
func (s *Store) persist(ctx context.Context) {
	snap := &domain.Snapshot{
		Users:  make([]domain.User, 0, len(s.userIDs)),
		Boards: make([]domain.Board, 0, len(s.boardIDs)),
		Tasks:  make([]domain.Task, 0, len(s.taskIDs)),
	}
	for _, id := range s.userIDs {
		snap.Users = append(snap.Users, *s.users[id])
	}
	for _, id := range s.boardIDs {
		snap.Boards = append(snap.Boards, *s.boards[id])
	}
	for _, id := range s.taskIDs {
		snap.Tasks = append(snap.Tasks, *s.tasks[id])
	}

	if err := s.backing.Save(ctx, snap); err != nil {
		slog.Warn("persist snapshot", "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a new user with a bcrypt-hashed password. The
// email is lowercase-normalized and must be unique.
func (s *Store) CreateUser(ctx context.Context, email, password, name string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email = normalizeEmail(email)
	for _, id := range s.userIDs {
		if s.users[id].Email == email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hash),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.userIDs = append(s.userIDs, user.ID)
	s.persist(ctx)

	u := *user
	return &u, nil
}

// FindUserByEmail looks a user up by lowercase-normalized email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = normalizeEmail(email)
	for _, id := range s.userIDs {
		if s.users[id].Email == email {
			u := *s.users[id]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// FindUserByID looks a user up by id.
func (s *Store) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := *user
	return &u, nil
}

// CheckPassword compares a plaintext password against a stored hash.
func (s *Store) CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// UserTourStatus reads the onboarding-tour flag.
func (s *Store) UserTourStatus(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return false, domain.ErrNotFound
	}
	return user.TourCompleted, nil
}

// SetUserTourStatus writes the onboarding-tour flag.
func (s *Store) SetUserTourStatus(ctx context.Context, userID string, completed bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return false, domain.ErrNotFound
	}
	user.TourCompleted = completed
	s.persist(ctx)
	return user.TourCompleted, nil
}
