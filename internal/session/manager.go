package session

import "sync"

// Manager maps session ids to their isolated state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Get returns the state for a session id, if it exists.
func (m *Manager) Get(id string) (*State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[id]
	return state, ok
}

// GetOrCreate returns the state for a session id, creating it on first
// use.
func (m *Manager) GetOrCreate(id string) *State {
	m.mu.RLock()
	state, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return state
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.sessions[id]; ok {
		return state
	}
	state = NewState()
	m.sessions[id] = state
	return state
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
