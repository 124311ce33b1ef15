package pipeline

import (
	"context"
	"sync"

	"github.com/couchcryptid/streetlight-dashboard/internal/observability"
)

// Sessions is a bounded, thread-safe LRU of bindings keyed by session id.
// The least recently used session is dropped once maxEntries is exceeded;
// its next request starts again from the default selection.
type Sessions struct {
	dashboard  *Dashboard
	metrics    *observability.Metrics
	maxEntries int

	mu      sync.Mutex
	entries map[string]*session
	head    *session // most recently used
	tail    *session // least recently used
}

type session struct {
	id      string
	binding *Binding
	prev    *session
	next    *session
}

// NewSessions creates an empty session cache. maxEntries below 1 is treated as 1.
func NewSessions(d *Dashboard, metrics *observability.Metrics, maxEntries int) *Sessions {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Sessions{
		dashboard:  d,
		metrics:    metrics,
		maxEntries: maxEntries,
		entries:    make(map[string]*session),
	}
}

// Get returns the binding for id if it is still cached.
func (s *Sessions) Get(id string) (*Binding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	s.moveToFront(e)
	return e.binding, true
}

// GetOrCreate returns the binding for id, creating one on the default
// selection when id is unknown. created reports whether a new binding was made.
// The default frame is rendered without holding the cache lock; if another
// request created the same session meanwhile, its binding wins.
func (s *Sessions) GetOrCreate(ctx context.Context, id string) (b *Binding, created bool) {
	if b, ok := s.Get(id); ok {
		return b, false
	}

	fresh := NewBinding(ctx, s.dashboard)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok {
		s.moveToFront(e)
		return e.binding, false
	}

	e := &session{id: id, binding: fresh}
	s.entries[id] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
	s.metrics.SessionsActive.Set(float64(len(s.entries)))
	return e.binding, true
}

// Len returns the number of cached sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) moveToFront(e *session) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *Sessions) addToFront(e *session) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *Sessions) remove(e *session) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *Sessions) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.id)
	s.remove(s.tail)
	s.metrics.SessionEvictions.Inc()
}
