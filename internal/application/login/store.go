package login

import (
	"sync"
	"time"

	"github.com/pr1me-admin/internal/pkg/id"
)

type storeEntry struct {
	flow     *Flow
	lastSeen time.Time
}

// Store keeps one Flow per browser, keyed by an opaque ULID, and drops flows
// idle for longer than ttl.
type Store struct {
	mu    sync.Mutex
	flows map[string]*storeEntry
	ttl   time.Duration
	deps  FlowDeps
	done  chan struct{}
	once  sync.Once
}

func NewStore(deps FlowDeps, ttl time.Duration) *Store {
	s := &Store{
		flows: make(map[string]*storeEntry),
		ttl:   ttl,
		deps:  deps,
		done:  make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Get returns the flow for flowID, refreshing its idle timer.
func (s *Store) Get(flowID string) (*Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.flows[flowID]
	if !ok || time.Since(e.lastSeen) > s.ttl {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.flow, true
}

// Create starts a new flow at AwaitingCredentials.
func (s *Store) Create() (string, *Flow) {
	flowID := id.New()
	f := NewFlow(s.deps)
	s.mu.Lock()
	s.flows[flowID] = &storeEntry{flow: f, lastSeen: time.Now()}
	s.mu.Unlock()
	return flowID, f
}

// Delete forgets a flow, e.g. once it has produced a session.
func (s *Store) Delete(flowID string) {
	s.mu.Lock()
	delete(s.flows, flowID)
	s.mu.Unlock()
}

// Len is the number of live flows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}

// Close stops the background sweep.
func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Store) cleanup() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for flowID, e := range s.flows {
		if time.Since(e.lastSeen) > s.ttl && !e.flow.Busy() {
			delete(s.flows, flowID)
		}
	}
}
