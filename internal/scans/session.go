package scans

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// session holds the mutable collection for one scan. Every mutation bumps
// updatedAt and publishes a snapshot to subscribers. generation advances on
// clear so that in-flight batches can detect they are stale.
type session struct {
	mu          sync.Mutex
	id          uuid.UUID
	generation  int
	records     []Record
	createdAt   time.Time
	updatedAt   time.Time
	subscribers map[int]chan Session
	nextSub     int
	closed      bool
}

func newSession() *session {
	now := time.Now().UTC()
	return &session{
		id:          uuid.New(),
		records:     []Record{},
		createdAt:   now,
		updatedAt:   now,
		subscribers: make(map[int]chan Session),
	}
}

func (s *session) currentGeneration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// append adds records when gen is still current. It returns the records
// appended and the number discarded.
func (s *session) append(gen int, records []Record) ([]Record, int) {
	if len(records) == 0 {
		return nil, 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.closed {
		return nil, len(records)
	}

	s.records = append(s.records, records...)
	s.updatedAt = time.Now().UTC()
	s.publish()

	return records, 0
}

func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.records = []Record{}
	s.updatedAt = time.Now().UTC()
	s.publish()
}

func (s *session) snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// subscribe registers a channel that always holds the latest snapshot.
// The current snapshot is delivered immediately.
func (s *session) subscribe() (<-chan Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Session, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch
	ch <- s.view()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}

	return ch, cancel
}

// close ends every subscription and rejects further appends.
func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}

// publish must be called with mu held. A slow subscriber only ever sees the
// newest snapshot.
func (s *session) publish() {
	snap := s.view()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *session) view() Session {
	return Session{
		ID:         s.id,
		Generation: s.generation,
		Records:    slices.Clone(s.records),
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
}
