package build

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Build status values recorded at dispatch time.
const (
	StatusRunning = "running"
)

// ActiveBuild is the last dispatched build remembered for a user.
type ActiveBuild struct {
	ID        uuid.UUID
	UserID    int64
	Config    Config
	StartedAt time.Time
	Status    string
}

// Store keeps at most one ActiveBuild per user. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(userID int64) (ActiveBuild, bool)
	Put(b ActiveBuild)
	All() []ActiveBuild
}

type memoryStore struct {
	mu     sync.RWMutex
	builds map[int64]ActiveBuild
}

// NewMemoryStore returns a process-lifetime in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{builds: make(map[int64]ActiveBuild)}
}

func (s *memoryStore) Get(userID int64) (ActiveBuild, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.builds[userID]
	return b, ok
}

// Put overwrites any previous build recorded for the same user.
func (s *memoryStore) Put(b ActiveBuild) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds[b.UserID] = b
}

func (s *memoryStore) All() []ActiveBuild {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ActiveBuild, 0, len(s.builds))
	for _, b := range s.builds {
		out = append(out, b)
	}
	return out
}
