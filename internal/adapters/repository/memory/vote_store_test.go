package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSeededCount(t *testing.T) {
	store := NewVoteStore(map[string]int{"outback": 15})

	count, err := store.Read(context.Background(), "outback")
	require.NoError(t, err)
	assert.Equal(t, 15, count)
}

func TestReadUnknownNameIsZero(t *testing.T) {
	store := NewVoteStore(nil)

	count, err := store.Read(context.Background(), "sushi")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestReadIsIdempotent(t *testing.T) {
	store := NewVoteStore(map[string]int{"ihop": 12})

	first, err := store.Read(context.Background(), "ihop")
	require.NoError(t, err)
	second, err := store.Read(context.Background(), "ihop")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteUpserts(t *testing.T) {
	store := NewVoteStore(nil)

	written, err := store.Write(context.Background(), "chipotle", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, written)

	count, err := store.Read(context.Background(), "chipotle")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestWriteOverwrites(t *testing.T) {
	store := NewVoteStore(map[string]int{"chipotle": 23})

	_, err := store.Write(context.Background(), "chipotle", 24)
	require.NoError(t, err)

	count, err := store.Read(context.Background(), "chipotle")
	require.NoError(t, err)
	assert.Equal(t, 24, count)
}

func TestSeedIsCopied(t *testing.T) {
	seed := map[string]int{"outback": 1}
	store := NewVoteStore(seed)
	seed["outback"] = 99

	count, err := store.Read(context.Background(), "outback")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConcurrentWritesDoNotCorrupt(t *testing.T) {
	store := NewVoteStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Write(ctx, "outback", n)
			assert.NoError(t, err)
			_, err = store.Read(ctx, "outback")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := store.Read(ctx, "outback")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 0)
	assert.Less(t, count, 100)
}
