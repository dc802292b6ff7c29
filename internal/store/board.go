package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/taskboard/internal/domain"
)

// CreateBoard appends a board at the end of the user's display order:
// order = 1 + max existing order, or 0 for the first board.
func (s *Store) CreateBoard(ctx context.Context, userID, title string) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := 0
	for _, id := range s.boardIDs {
		if b := s.boards[id]; b.UserID == userID && b.Order >= order {
			order = b.Order + 1
		}
	}

	now := time.Now().UTC()
	board := &domain.Board{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.boards[board.ID] = board
	s.boardIDs = append(s.boardIDs, board.ID)
	s.persist(ctx)

	b := *board
	return &b, nil
}

// BoardsByUser returns the user's boards ascending by order.
func (s *Store) BoardsByUser(ctx context.Context, userID string) []domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardsByUserLocked(userID)
}

// boardsByUserLocked collects and sorts the user's boards. Callers must
// hold s.mu. The stable sort keeps insertion order as the tie-break for
// equal order values.
func (s *Store) boardsByUserLocked(userID string) []domain.Board {
	boards := make([]domain.Board, 0)
	for _, id := range s.boardIDs {
		if b := s.boards[id]; b.UserID == userID {
			boards = append(boards, *b)
		}
	}
	sort.SliceStable(boards, func(i, j int) bool {
		return boards[i].Order < boards[j].Order
	})
	return boards
}

// BoardByID returns the board only when it exists and is owned by
// userID. Ownership mismatch and absence are indistinguishable: both
// report ErrNotFound. This is the authorization boundary for boards.
func (s *Store) BoardByID(ctx context.Context, id, userID string) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardByIDLocked(id, userID)
}

func (s *Store) boardByIDLocked(id, userID string) (*domain.Board, error) {
	board, ok := s.boards[id]
	if !ok || board.UserID != userID {
		return nil, domain.ErrNotFound
	}
	b := *board
	return &b, nil
}

// UpdateBoard renames an owned board.
func (s *Store) UpdateBoard(ctx context.Context, id, userID, title string) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[id]
	if !ok || board.UserID != userID {
		return nil, domain.ErrNotFound
	}

	board.Title = title
	board.UpdatedAt = time.Now().UTC()
	s.persist(ctx)

	b := *board
	return &b, nil
}

// ReorderBoards sets each listed board's order to its position in the
// sequence. Ids that do not resolve to a board owned by userID are
// silently skipped; the caller's boards omitted from the sequence keep
// their relative position. A compaction pass then reassigns dense
// 0..n-1 orders so stale values can never collide with new ones.
// Returns the user's boards in their new order.
func (s *Store) ReorderBoards(ctx context.Context, userID string, boardIDs []string) []domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for i, id := range boardIDs {
		board, ok := s.boards[id]
		if !ok || board.UserID != userID {
			continue
		}
		board.Order = i
		board.UpdatedAt = now
	}
	s.compactBoardOrdersLocked(userID)
	s.persist(ctx)

	return s.boardsByUserLocked(userID)
}

// compactBoardOrdersLocked rewrites the user's board orders to 0..n-1,
// preserving the current sorted sequence. Callers must hold s.mu.
func (s *Store) compactBoardOrdersLocked(userID string) {
	sorted := s.boardsByUserLocked(userID)
	for i := range sorted {
		s.boards[sorted[i].ID].Order = i
	}
}

// DeleteBoard removes an owned board and cascades to its tasks in the
// same in-memory batch before a single persist. Reports whether a
// deletion occurred.
func (s *Store) DeleteBoard(ctx context.Context, id, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[id]
	if !ok || board.UserID != userID {
		return false
	}

	remaining := s.taskIDs[:0]
	for _, taskID := range s.taskIDs {
		if s.tasks[taskID].BoardID == id {
			delete(s.tasks, taskID)
			continue
		}
		remaining = append(remaining, taskID)
	}
	s.taskIDs = remaining

	delete(s.boards, id)
	for i, boardID := range s.boardIDs {
		if boardID == id {
			s.boardIDs = append(s.boardIDs[:i], s.boardIDs[i+1:]...)
			break
		}
	}

	s.persist(ctx)
	return true
}
