package bank

import (
	"context"
	"sync"
	"time"

	"github.com/edukita/educbt-studio/internal/question"
)

type memoryStore struct {
	mu      sync.RWMutex
	lists   map[string][]question.Question
	updated map[string]int64
}

// NewInMemoryStore keeps workspaces in process memory only. Loading an
// unknown workspace yields an empty list rather than an error so a fresh
// session can start authoring immediately.
func NewInMemoryStore() Store {
	return &memoryStore{
		lists:   map[string][]question.Question{},
		updated: map[string]int64{},
	}
}

func (m *memoryStore) Load(_ context.Context, id string) ([]question.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneAll(m.lists[id]), nil
}

func (m *memoryStore) Replace(_ context.Context, id, op string, fn Mutator) ([]question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := fn(cloneAll(m.lists[id]))
	m.lists[id] = cloneAll(next)
	m.updated[id] = time.Now().Unix()
	_ = op
	return next, nil
}

func (m *memoryStore) List(_ context.Context) ([]WorkspaceSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]WorkspaceSummary, 0, len(m.lists))
	for id, qs := range m.lists {
		out = append(out, summarize(id, qs, m.updated[id]))
	}
	return out, nil
}
