package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcdynamodb "github.com/testcontainers/testcontainers-go/modules/dynamodb"
)

const testTable = "votingapp-restaurants-test"

func setupStore(t *testing.T) *VoteStore {
	t.Helper()

	ctx := context.Background()

	container, err := tcdynamodb.Run(ctx, "amazon/dynamodb-local:2.2.1")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("DUMMYIDEXAMPLE", "DUMMYEXAMPLEKEY", ""),
		),
	)
	require.NoError(t, err)

	client := ddb.NewFromConfig(cfg, func(o *ddb.Options) {
		o.BaseEndpoint = aws.String("http://" + endpoint)
	})

	_, err = client.CreateTable(ctx, &ddb.CreateTableInput{
		TableName: aws.String(testTable),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("name"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("name"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	require.NoError(t, err)

	waiter := ddb.NewTableExistsWaiter(client)
	require.NoError(t, waiter.Wait(ctx, &ddb.DescribeTableInput{
		TableName: aws.String(testTable),
	}, time.Minute))

	return NewVoteStoreWithClient(client, testTable)
}

func TestMissingItemReadsAsZero(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	store := setupStore(t)

	count, err := store.Read(context.Background(), "outback")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestWriteCreatesAndReadsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	store := setupStore(t)
	ctx := context.Background()

	written, err := store.Write(ctx, "chipotle", 23)
	require.NoError(t, err)
	assert.Equal(t, 23, written)

	count, err := store.Read(ctx, "chipotle")
	require.NoError(t, err)
	assert.Equal(t, 23, count)

	// Second read with no intervening write returns the same value.
	again, err := store.Read(ctx, "chipotle")
	require.NoError(t, err)
	assert.Equal(t, count, again)
}

func TestWriteOverwritesExistingCount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Write(ctx, "ihop", 12)
	require.NoError(t, err)

	written, err := store.Write(ctx, "ihop", 13)
	require.NoError(t, err)
	assert.Equal(t, 13, written)

	count, err := store.Read(ctx, "ihop")
	require.NoError(t, err)
	assert.Equal(t, 13, count)
}
