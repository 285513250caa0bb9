package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// record is the table's row layout: one item per restaurant, keyed by name.
type record struct {
	Name  string `dynamodbav:"name"`
	Count int    `dynamodbav:"restaurantcount"`
}

type VoteStore struct {
	client *ddb.Client
	table  string
}

// NewVoteStore loads AWS configuration from the environment and verifies the
// table is reachable before returning. Callers treat a construction error as
// a signal to fall back to the in-memory store.
func NewVoteStore(ctx context.Context, region, table string) (*VoteStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	store := NewVoteStoreWithClient(ddb.NewFromConfig(cfg), table)

	if _, err := store.client.DescribeTable(ctx, &ddb.DescribeTableInput{
		TableName: aws.String(table),
	}); err != nil {
		return nil, fmt.Errorf("describing table %s: %w", table, err)
	}

	return store, nil
}

// NewVoteStoreWithClient skips configuration loading; tests use it to point
// the store at a local endpoint.
func NewVoteStoreWithClient(client *ddb.Client, table string) *VoteStore {
	return &VoteStore{client: client, table: table}
}

// Read fetches the counter for a restaurant. A missing item reads as zero so
// the two store implementations agree on fresh tables.
func (s *VoteStore) Read(ctx context.Context, name string) (int, error) {
	out, err := s.client.GetItem(ctx, &ddb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("getting item %s: %w", name, err)
	}

	if len(out.Item) == 0 {
		return 0, nil
	}

	var rec record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return 0, fmt.Errorf("unmarshaling item %s: %w", name, err)
	}

	return rec.Count, nil
}

// Write sets the counter unconditionally, creating the item when absent.
func (s *VoteStore) Write(ctx context.Context, name string, count int) (int, error) {
	value, err := attributevalue.Marshal(count)
	if err != nil {
		return 0, fmt.Errorf("marshaling count for %s: %w", name, err)
	}

	out, err := s.client.UpdateItem(ctx, &ddb.UpdateItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
		UpdateExpression: aws.String("SET restaurantcount = :value"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": value,
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("updating item %s: %w", name, err)
	}

	var written int
	if err := attributevalue.Unmarshal(out.Attributes["restaurantcount"], &written); err != nil {
		return 0, fmt.Errorf("unmarshaling updated count for %s: %w", name, err)
	}

	return written, nil
}
