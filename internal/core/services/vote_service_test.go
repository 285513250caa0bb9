package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votingapp/api/internal/adapters/repository/memory"
	"github.com/votingapp/api/internal/core/domain"
)

var ballot = []string{"outback", "bucadibeppo", "ihop", "chipotle"}

func newTestVoteService(seed map[string]int) *voteService {
	store := memory.NewVoteStore(seed)
	return NewVoteService(store, ballot, 5*time.Second).(*voteService)
}

func TestCastVoteIncrementsByOne(t *testing.T) {
	svc := newTestVoteService(map[string]int{"outback": 15})

	count, err := svc.CastVote(context.Background(), "outback")
	require.NoError(t, err)
	assert.Equal(t, 16, count)

	stored, err := svc.store.Read(context.Background(), "outback")
	require.NoError(t, err)
	assert.Equal(t, 16, stored)
}

func TestCastVoteStartsFromZero(t *testing.T) {
	svc := newTestVoteService(nil)

	count, err := svc.CastVote(context.Background(), "ihop")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCastVoteRejectsUnknownRestaurant(t *testing.T) {
	svc := newTestVoteService(map[string]int{"outback": 15})

	_, err := svc.CastVote(context.Background(), "sushi")
	require.ErrorIs(t, err, domain.ErrInvalidRestaurant)

	// No counter moved.
	votes, err := svc.AllVotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.RestaurantVotes{
		{Name: "outback", Votes: 15},
		{Name: "bucadibeppo", Votes: 0},
		{Name: "ihop", Votes: 0},
		{Name: "chipotle", Votes: 0},
	}, votes)
}

func TestAllVotesKeepsBallotOrder(t *testing.T) {
	svc := newTestVoteService(map[string]int{
		"outback":     15,
		"bucadibeppo": 8,
		"ihop":        12,
		"chipotle":    23,
	})

	votes, err := svc.AllVotes(context.Background())
	require.NoError(t, err)

	require.Len(t, votes, len(ballot))
	for i, name := range ballot {
		assert.Equal(t, name, votes[i].Name)
	}
	assert.Equal(t, 15, votes[0].Votes)
	assert.Equal(t, 23, votes[3].Votes)
}

// The increment is a read-modify-write, so concurrent casts may lose updates.
// The final count still lands strictly above the base and never above base+N,
// and the shared map itself stays consistent under the race detector.
func TestConcurrentCastVotes(t *testing.T) {
	const base, n = 10, 50
	svc := newTestVoteService(map[string]int{"chipotle": base})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CastVote(context.Background(), "chipotle")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := svc.store.Read(context.Background(), "chipotle")
	require.NoError(t, err)
	assert.Greater(t, final, base)
	assert.LessOrEqual(t, final, base+n)
}

type failingStore struct {
	err error
}

func (s failingStore) Read(context.Context, string) (int, error)       { return 0, s.err }
func (s failingStore) Write(context.Context, string, int) (int, error) { return 0, s.err }

func TestCastVoteSurfacesStoreErrors(t *testing.T) {
	storeErr := errors.New("table on fire")
	svc := NewVoteService(failingStore{err: storeErr}, ballot, time.Second)

	_, err := svc.CastVote(context.Background(), "outback")
	require.ErrorIs(t, err, storeErr)

	_, err = svc.AllVotes(context.Background())
	require.ErrorIs(t, err, storeErr)
}

type blockingStore struct{}

func (blockingStore) Read(ctx context.Context, _ string) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func (blockingStore) Write(ctx context.Context, _ string, _ int) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestCastVoteTimesOutOnSlowStore(t *testing.T) {
	svc := NewVoteService(blockingStore{}, ballot, 50*time.Millisecond)

	start := time.Now()
	_, err := svc.CastVote(context.Background(), "outback")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
