package contract

import "sync"

// MockState is an in-memory State used by tests and by nodes started without a
// database path.
type MockState struct {
	mu sync.RWMutex
	db map[string]string
}

func NewMockState() *MockState {
	return &MockState{db: make(map[string]string)}
}

func (m *MockState) Set(key, value string) {
	m.mu.Lock()
	m.db[key] = value
	m.mu.Unlock()
}

func (m *MockState) Get(key string) *string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *MockState) Delete(key string) {
	m.mu.Lock()
	delete(m.db, key)
	m.mu.Unlock()
}

// Commit applies the batch under one lock so readers never see half of it.
func (m *MockState) Commit(writes []Write) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range writes {
		if w.Value == nil {
			delete(m.db, w.Key)
			continue
		}
		m.db[w.Key] = *w.Value
	}
	return nil
}

// Len reports how many keys are stored.
func (m *MockState) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}
