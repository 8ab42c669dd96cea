package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"medsimplify/internal/report"
	"medsimplify/pkg"
)

// MemoryStore keeps history in process memory.  It is used by the CLI and in
// tests where no database is available.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []pkg.HistoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, e *pkg.HistoryEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *e)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*pkg.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

// List returns entries newest first, matching Repository.List.
func (s *MemoryStore) List(_ context.Context, limit, offset int) ([]pkg.HistoryEntry, error) {
	s.mu.RLock()
	sorted := make([]pkg.HistoryEntry, len(s.entries))
	copy(sorted, s.entries)
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if offset < 0 {
		offset = 0
	}
	if offset >= len(sorted) {
		return nil, nil
	}
	sorted = sorted[offset:]
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *MemoryStore) SummaryByStrategy(_ context.Context) ([]pkg.MethodSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.Summarize(s.entries), nil
}
