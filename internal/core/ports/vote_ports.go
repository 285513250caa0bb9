package ports

import (
	"context"

	"github.com/votingapp/api/internal/core/domain"
)

// VoteStore is the counter persistence contract shared by the in-memory and
// DynamoDB implementations. Read returns 0 for a name with no stored record;
// Write is an absolute set with upsert semantics and echoes the value written.
type VoteStore interface {
	Read(ctx context.Context, name string) (int, error)
	Write(ctx context.Context, name string, count int) (int, error)
}

type VoteService interface {
	CastVote(ctx context.Context, name string) (int, error)
	AllVotes(ctx context.Context) ([]domain.RestaurantVotes, error)
}
