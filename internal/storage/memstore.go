package storage

import (
	"context"
	"fmt"
	"sync"

	"outlay/internal/core"
)

// MemoryStore keeps expenses in memory with the same observable semantics
// as the SQLite repository: monotonically assigned ids, newest-first
// listing, ErrNotFound on unknown ids. Used by the memory backend and by
// tests that do not need a database file.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense // ascending insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Create(_ context.Context, e core.Expense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e.ID, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, fmt.Errorf("get expense %d: %w", id, ErrNotFound)
}

func (s *MemoryStore) Update(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == e.ID {
			s.items[i] = e
			return nil
		}
	}
	return fmt.Errorf("update expense %d: %w", e.ID, ErrNotFound)
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete expense %d: %w", id, ErrNotFound)
}

func (s *MemoryStore) Close() error { return nil }
