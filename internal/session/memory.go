package session

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]entry
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, data: map[string]entry{}}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (EditorState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[sessionID]
	if !ok {
		return EditorState{}, nil
	}
	if m.ttl > 0 && time.Now().After(e.expires) {
		delete(m.data, sessionID)
		return EditorState{}, nil
	}
	st := e.state
	st.Selected = append([]string(nil), st.Selected...)
	return st, nil
}

func (m *MemoryStore) Save(ctx context.Context, sessionID string, st EditorState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st.Selected = append([]string(nil), st.Selected...)
	m.data[sessionID] = entry{state: st, expires: time.Now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, sessionID)
	return nil
}
