package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/quota"
)

// Store keeps sessions in memory only; nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
	newQuota func() *quota.Tracker
}

func NewStore(dailyLimit int) *Store {
	return &Store{
		sessions: make(map[string]*State),
		newQuota: func() *quota.Tracker {
			return quota.NewTracker(quota.WithLimit(dailyLimit))
		},
	}
}

// Create opens a session under a fresh random id.
func (s *Store) Create() *State {
	return s.GetOrCreate(uuid.New().String())
}

func (s *Store) Get(id string) (*State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[id]
	return st, ok
}

func (s *Store) GetOrCreate(id string) *State {
	s.mu.RLock()
	st, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.sessions[id]; ok {
		return st
	}
	st = New(id, s.newQuota())
	s.sessions[id] = st
	return st
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
