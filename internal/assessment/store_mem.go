package assessment

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	rows map[string]Assessment
}

// NewInMemoryStore backs the handlers in tests and single-shot tooling.
func NewInMemoryStore() Store {
	return &memoryStore{rows: map[string]Assessment{}}
}

func (m *memoryStore) Save(_ context.Context, a Assessment) (Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[a.ID] = a
	return a, nil
}

func (m *memoryStore) ListByUser(_ context.Context, userID int64) ([]Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Assessment{}
	for _, a := range m.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssessmentDate.After(out[j].AssessmentDate)
	})
	return out, nil
}
