package store

import (
	"context"
	"sync"

	"github.com/storyverse/server/models"
)

type MemoryStore struct {
	mu   sync.RWMutex
	days map[string]map[string]*models.WritingActivityDay
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{days: make(map[string]map[string]*models.WritingActivityDay)}
}

func (m *MemoryStore) Get(ctx context.Context, userID, date string) (*models.WritingActivityDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	day, ok := m.days[userID][date]
	if !ok {
		return nil, ErrNotFound
	}
	return day.Clone(), nil
}

func (m *MemoryStore) Put(ctx context.Context, userID string, day *models.WritingActivityDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.days[userID]
	if !ok {
		user = make(map[string]*models.WritingActivityDay)
		m.days[userID] = user
	}
	user[day.Date] = day.Clone()
	return nil
}

func (m *MemoryStore) List(ctx context.Context, userID string) ([]*models.WritingActivityDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.WritingActivityDay, 0, len(m.days[userID]))
	for _, day := range m.days[userID] {
		out = append(out, day.Clone())
	}
	return out, nil
}
