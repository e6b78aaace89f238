package chats

import (
	"context"
	"sort"
	"sync"
)

// memoryRepo keeps chats in process memory; used when no database is configured.
type memoryRepo struct {
	mu    sync.RWMutex
	chats map[string]Chat
}

func NewMemoryRepo() Repo {
	return &memoryRepo{chats: make(map[string]Chat)}
}

func (m *memoryRepo) Save(_ context.Context, chat *Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.chats[chat.ID]; ok {
		chat.CreatedAt = existing.CreatedAt
	}
	stored := *chat
	stored.Messages = append([]Message(nil), chat.Messages...)
	m.chats[chat.ID] = stored
	return nil
}

func (m *memoryRepo) List(_ context.Context) ([]Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Chat, 0, len(m.chats))
	for _, c := range m.chats {
		c.Messages = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (*Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.chats[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Messages = append([]Message(nil), c.Messages...)
	return &c, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.chats[id]; !ok {
		return ErrNotFound
	}
	delete(m.chats, id)
	return nil
}
