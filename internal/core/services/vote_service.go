package services

import (
	"context"
	"fmt"
	"time"

	"github.com/votingapp/api/internal/core/domain"
	"github.com/votingapp/api/internal/core/ports"
)

type voteService struct {
	store        ports.VoteStore
	restaurants  []string
	onBallot     map[string]struct{}
	storeTimeout time.Duration
}

func NewVoteService(store ports.VoteStore, restaurants []string, storeTimeout time.Duration) ports.VoteService {
	onBallot := make(map[string]struct{}, len(restaurants))
	for _, name := range restaurants {
		onBallot[name] = struct{}{}
	}
	return &voteService{
		store:        store,
		restaurants:  restaurants,
		onBallot:     onBallot,
		storeTimeout: storeTimeout,
	}
}

// CastVote increments the tally for a restaurant and returns the new count.
//
// The increment is a read-modify-write against the store, not an atomic add:
// two concurrent casts for the same restaurant can both read the same base
// count and each write base+1, losing one vote. That matches the behavior of
// the store contract (absolute Write only) and is accepted; callers that need
// an exact tally under contention do not exist in this system.
func (s *voteService) CastVote(ctx context.Context, name string) (int, error) {
	if _, ok := s.onBallot[name]; !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidRestaurant, name)
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	count, err := s.store.Read(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("reading votes for %s: %w", name, err)
	}

	count++

	newCount, err := s.store.Write(ctx, name, count)
	if err != nil {
		return 0, fmt.Errorf("writing votes for %s: %w", name, err)
	}

	return newCount, nil
}

// AllVotes reads every restaurant's tally in configured ballot order.
func (s *voteService) AllVotes(ctx context.Context) ([]domain.RestaurantVotes, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	votes := make([]domain.RestaurantVotes, 0, len(s.restaurants))
	for _, name := range s.restaurants {
		count, err := s.store.Read(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("reading votes for %s: %w", name, err)
		}
		votes = append(votes, domain.RestaurantVotes{Name: name, Votes: count})
	}

	return votes, nil
}
