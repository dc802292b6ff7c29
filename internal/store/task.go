package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/taskboard/internal/domain"
)

// CreateTask creates a task on a board owned by userID. The board is
// resolved through the ownership-scoped lookup first; a missing or
// foreign board reports ErrNotFound without creating anything. The new
// task lands at the end of the board's order.
func (s *Store) CreateTask(ctx context.Context, boardID, userID, title, description, dueDate string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.boardByIDLocked(boardID, userID); err != nil {
		return nil, err
	}

	order := 0
	for _, id := range s.taskIDs {
		if t := s.tasks[id]; t.BoardID == boardID && t.UserID == userID && t.Order >= order {
			order = t.Order + 1
		}
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		BoardID:     boardID,
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusPending,
		Order:       order,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	s.taskIDs = append(s.taskIDs, task.ID)
	s.persist(ctx)

	t := *task
	return &t, nil
}

// TasksByBoard returns the tasks on a board, filtered by both board and
// owning user, ascending by order.
func (s *Store) TasksByBoard(ctx context.Context, boardID, userID string) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasksByBoardLocked(boardID, userID)
}

func (s *Store) tasksByBoardLocked(boardID, userID string) []domain.Task {
	tasks := make([]domain.Task, 0)
	for _, id := range s.taskIDs {
		if t := s.tasks[id]; t.BoardID == boardID && t.UserID == userID {
			tasks = append(tasks, *t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})
	return tasks
}

// TaskByID returns the task only when it exists and is owned by userID.
func (s *Store) TaskByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrNotFound
	}
	t := *task
	return &t, nil
}

// UpdateTask applies the provided fields of a partial update to an
// owned task and bumps UpdatedAt. Nil fields are left untouched.
func (s *Store) UpdateTask(ctx context.Context, id, userID string, update domain.TaskUpdate) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrNotFound
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.DueDate != nil {
		task.DueDate = *update.DueDate
	}
	task.UpdatedAt = time.Now().UTC()
	s.persist(ctx)

	t := *task
	return &t, nil
}

// ReorderTasks mirrors ReorderBoards within one board. The board
// ownership check fails closed: a missing or foreign board reports
// ErrNotFound and nothing changes. Listed ids must be owned by userID
// and belong to boardID; ids failing either check are skipped. Orders
// are compacted after the pass. Returns the board's tasks re-sorted.
func (s *Store) ReorderTasks(ctx context.Context, boardID, userID string, taskIDs []string) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.boardByIDLocked(boardID, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i, id := range taskIDs {
		task, ok := s.tasks[id]
		if !ok || task.UserID != userID || task.BoardID != boardID {
			continue
		}
		task.Order = i
		task.UpdatedAt = now
	}

	sorted := s.tasksByBoardLocked(boardID, userID)
	for i := range sorted {
		s.tasks[sorted[i].ID].Order = i
	}
	s.persist(ctx)

	return s.tasksByBoardLocked(boardID, userID), nil
}

// DeleteTask removes an owned task. Reports whether a deletion occurred.
func (s *Store) DeleteTask(ctx context.Context, id, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return false
	}

	delete(s.tasks, id)
	for i, taskID := range s.taskIDs {
		if taskID == id {
			s.taskIDs = append(s.taskIDs[:i], s.taskIDs[i+1:]...)
			break
		}
	}
	s.persist(ctx)
	return true
}
