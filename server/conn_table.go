package server

import (
	"context"
	"net"
	"sync"

	"github.com/andaru/acs/session"
)

type connKey struct{}

// connFromContext returns the connection a request arrived on, as
// stored by Server.ConnContext
func connFromContext(ctx context.Context) (net.Conn, bool) {
	c, ok := ctx.Value(connKey{}).(net.Conn)
	return c, ok
}

// connTable maps connections to their sessions. Keys are net.Conn
// values, or the remote address when the connection is unknown.
type connTable struct {
	mu       sync.Mutex
	sessions map[interface{}]*session.Session
}

func newConnTable() *connTable {
	return &connTable{sessions: map[interface{}]*session.Session{}}
}

func (t *connTable) get(key interface{}) (*session.Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[key]
	return s, ok
}

func (t *connTable) put(key interface{}, s *session.Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[key] = s
}

// remove deletes key, returning the session it held
func (t *connTable) remove(key interface{}) (*session.Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[key]
	delete(t.sessions, key)
	return s, ok
}

func (t *connTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// removeSession deletes key if it still maps to s
func (t *connTable) removeSession(key interface{}, s *session.Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sessions[key] == s {
		delete(t.sessions, key)
	}
}
