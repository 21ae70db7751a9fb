package service

import (
	"context"
	"sync"
)

// EngineFactory constructs an engine for a session name; an empty name
// mints a provisional session
type EngineFactory func(sessionName string) *ConversationEngine

// Manager keeps one live engine per session so API callers never run two
// writers against the same file. All calls are serialized through a single
// mutex, matching the synchronous single-writer model.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*ConversationEngine
	factory EngineFactory
}

// NewManager creates an engine registry
func NewManager(factory EngineFactory) *Manager {
	return &Manager{
		engines: make(map[string]*ConversationEngine),
		factory: factory,
	}
}

// Open returns the live engine for the named session, constructing one if
// needed. An empty name opens a fresh provisional session.
func (m *Manager) Open(name string) *ConversationEngine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open(name)
}

func (m *Manager) open(name string) *ConversationEngine {
	if name != "" {
		if e, ok := m.engines[name]; ok {
			return e
		}
	}
	e := m.factory(name)
	m.engines[e.SessionName()] = e
	return e
}

// Send routes one input to the named session's engine and returns the
// reply plus the session's active name, which may differ from the request
// name after identity promotion.
func (m *Manager) Send(ctx context.Context, name, input string) (reply, activeName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.open(name)
	before := e.SessionName()
	reply = e.Send(ctx, input)
	after := e.SessionName()

	if after != before {
		delete(m.engines, before)
		m.engines[after] = e
	}
	return reply, after
}

// Export generates and exports the named session's summary
func (m *Manager) Export(ctx context.Context, name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open(name).ExportSummary(ctx)
}

// Drop forgets the live engine for a session, if any. Used after deletes
// so a stale engine cannot resurrect the file.
func (m *Manager) Drop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, name)
}
