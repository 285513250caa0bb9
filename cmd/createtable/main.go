// Command createtable provisions the DynamoDB votes table and seeds a zero
// counter for every configured restaurant. Run it once before starting the
// server in production mode.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"github.com/votingapp/api/internal/adapters/repository/dynamodb"
	"github.com/votingapp/api/internal/config"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.DDBRegion))
	if err != nil {
		logrus.WithError(err).Fatal("loading aws config")
	}
	client := ddb.NewFromConfig(awsCfg)

	if err := createTable(ctx, client, cfg.DDBTableName); err != nil {
		logrus.WithError(err).Fatal("creating table")
	}

	store := dynamodb.NewVoteStoreWithClient(client, cfg.DDBTableName)
	for _, name := range cfg.Restaurants {
		count, err := store.Read(ctx, name)
		if err != nil {
			logrus.WithError(err).WithField("restaurant", name).Fatal("reading counter")
		}
		if count > 0 {
			logrus.WithField("restaurant", name).Info("counter already present, skipping seed")
			continue
		}
		if _, err := store.Write(ctx, name, 0); err != nil {
			logrus.WithError(err).WithField("restaurant", name).Fatal("seeding counter")
		}
		logrus.WithField("restaurant", name).Info("seeded counter")
	}

	logrus.WithField("table", cfg.DDBTableName).Info("table ready")
}

func createTable(ctx context.Context, client *ddb.Client, table string) error {
	_, err := client.CreateTable(ctx, &ddb.CreateTableInput{
		TableName: aws.String(table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("name"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("name"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var exists *types.ResourceInUseException
		if errors.As(err, &exists) {
			logrus.WithField("table", table).Info("table already exists")
			return nil
		}
		return err
	}

	waiter := ddb.NewTableExistsWaiter(client)
	return waiter.Wait(ctx, &ddb.DescribeTableInput{TableName: aws.String(table)}, time.Minute)
}
