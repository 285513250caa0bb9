package memory

import (
	"context"
	"sync"

	"github.com/votingapp/api/internal/core/ports"
)

// DevSeed mirrors the tallies the service ships with in development mode.
var DevSeed = map[string]int{
	"outback":     15,
	"bucadibeppo": 8,
	"ihop":        12,
	"chipotle":    23,
}

type voteStore struct {
	mu    sync.RWMutex
	votes map[string]int
}

// NewVoteStore builds an in-memory counter store, copying the seed so callers
// cannot mutate the store behind its lock. A nil seed starts every counter at
// zero.
func NewVoteStore(seed map[string]int) ports.VoteStore {
	votes := make(map[string]int, len(seed))
	for name, count := range seed {
		votes[name] = count
	}
	return &voteStore{votes: votes}
}

// Read never fails; a name with no record counts as zero.
func (s *voteStore) Read(_ context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.votes[name], nil
}

func (s *voteStore) Write(_ context.Context, name string, count int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[name] = count
	return count, nil
}
