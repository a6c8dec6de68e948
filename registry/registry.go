// Package registry maps resolved participant names to live connections.
// It is populated once by discovery and read-only afterwards.
package registry

import (
	"sort"
	"strings"
	"sync"

	"courtside/a2a"
	"courtside/contract"
)

// Connection binds one resolved agent card to the client that talks to its
// endpoint. Endpoint is the configured URL the card was fetched from, which
// is what gets echoed back in dispatch results. Connections are never
// mutated after registration.
type Connection struct {
	Card     a2a.AgentCard
	Endpoint string
	Client   contract.MessageSender
}

// Registry holds at most one connection per case-folded agent name.
// Lookup is exact-key first with a case-folded secondary index behind it,
// so "jeff's agent" finds "Jeff's Agent" without a scan.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Connection
	folded map[string]string // folded name -> registered name
}

func New() *Registry {
	return &Registry{
		byName: make(map[string]*Connection),
		folded: make(map[string]string),
	}
}

// Add registers a connection under its card name. A later registration with
// the same folded name silently replaces the earlier one; the return value
// tells the caller a replacement happened so discovery can log it.
func (r *Registry) Add(conn *Connection) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := conn.Card.Name
	fold := strings.ToLower(name)
	if previous, ok := r.folded[fold]; ok {
		delete(r.byName, previous)
		replaced = true
	}
	r.byName[name] = conn
	r.folded[fold] = name
	return replaced
}

// Lookup resolves a participant name, exact match first and case-folded
// second. The second return is false when nothing matches.
func (r *Registry) Lookup(name string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if conn, ok := r.byName[name]; ok {
		return conn, true
	}
	registered, ok := r.folded[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	conn, ok := r.byName[registered]
	return conn, ok
}

// Names returns the registered participant names, sorted. Used to build
// "available agents" error payloads.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connections returns a snapshot of all registered connections, ordered by
// name.
func (r *Registry) Connections() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	conns := make([]*Connection, 0, len(names))
	for _, name := range names {
		conns = append(conns, r.byName[name])
	}
	return conns
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
