package notifications

import (
	"sync"

	"craveconnect/internal/observability"
)

// PresenceEntry is who a relay session says it is.
type PresenceEntry struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// PresenceRegistry maps relay session ids to presence entries. It lives in memory only
// and is owned by the Relay it is passed to.
type PresenceRegistry struct {
	mu      sync.RWMutex
	entries map[string]PresenceEntry
	order   []string
}

// NewPresenceRegistry returns an empty registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{entries: make(map[string]PresenceEntry)}
}

// Put records the entry for a session. A session that is already present keeps its
// position in join order.
func (p *PresenceRegistry) Put(sessionID string, entry PresenceEntry) {
	p.mu.Lock()
	if _, ok := p.entries[sessionID]; !ok {
		p.order = append(p.order, sessionID)
	}
	p.entries[sessionID] = entry
	n := len(p.entries)
	p.mu.Unlock()

	observability.PresenceEntries.Set(float64(n))
}

// Remove deletes the session and returns the entry it held.
func (p *PresenceRegistry) Remove(sessionID string) (PresenceEntry, bool) {
	p.mu.Lock()
	entry, ok := p.entries[sessionID]
	if ok {
		delete(p.entries, sessionID)
		for i, id := range p.order {
			if id == sessionID {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
	}
	n := len(p.entries)
	p.mu.Unlock()

	observability.PresenceEntries.Set(float64(n))
	return entry, ok
}

func (p *PresenceRegistry) Get(sessionID string) (PresenceEntry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.entries[sessionID]
	return entry, ok
}

// Snapshot returns every entry in join order.
func (p *PresenceRegistry) Snapshot() []PresenceEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]PresenceEntry, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.entries[id])
	}
	return out
}

func (p *PresenceRegistry) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Reset drops every entry.
func (p *PresenceRegistry) Reset() {
	p.mu.Lock()
	p.entries = make(map[string]PresenceEntry)
	p.order = nil
	p.mu.Unlock()

	observability.PresenceEntries.Set(0)
}
