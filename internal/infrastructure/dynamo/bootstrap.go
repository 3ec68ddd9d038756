package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pr1me-admin/internal/config"
)

type indexSpec struct {
	name, hash, sort string
}

// tableSpec declares one table. All key attributes are strings.
type tableSpec struct {
	name       string
	hash, sort string
	indexes    []indexSpec
	ttl        string
}

func tableSpecs(tables config.DynamoTables) []tableSpec {
	return []tableSpec{
		{name: tables.Users, hash: "user_id", indexes: []indexSpec{
			{name: usernameIndex, hash: "username"},
			{name: emailIndex, hash: fieldEmail},
		}},
		{name: tables.Sessions, hash: "session_id"},
		{name: tables.OTPVerifications, hash: fieldEmail, sort: "type", ttl: "expires_at"},
		{name: tables.Todos, hash: "todo_id", indexes: []indexSpec{
			{name: todosByCreatorIndex, hash: fieldCreatedBy, sort: "created_at"},
		}},
		{name: tables.Withdrawals, hash: "withdrawal_id"},
		{name: tables.Merchants, hash: "merchant_id"},
	}
}

// Bootstrap creates every table and index that does not exist yet and turns
// on TTL where declared. Failures are logged, not fatal.
func Bootstrap(ctx context.Context, client *dynamodb.Client, tables config.DynamoTables) {
	for _, spec := range tableSpecs(tables) {
		createTable(ctx, client, spec.createInput())
		if spec.ttl != "" {
			enableTTL(ctx, client, spec.name, spec.ttl)
		}
	}
}

func keySchema(hash, sort string) []types.KeySchemaElement {
	ks := []types.KeySchemaElement{{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash}}
	if sort != "" {
		ks = append(ks, types.KeySchemaElement{AttributeName: aws.String(sort), KeyType: types.KeyTypeRange})
	}
	return ks
}

func (s tableSpec) createInput() *dynamodb.CreateTableInput {
	seen := map[string]bool{}
	var attrs []types.AttributeDefinition
	define := func(names ...string) {
		for _, n := range names {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(n), AttributeType: types.ScalarAttributeTypeS})
		}
	}

	define(s.hash, s.sort)
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(s.name),
		BillingMode: types.BillingModePayPerRequest,
		KeySchema:   keySchema(s.hash, s.sort),
	}
	for _, idx := range s.indexes {
		define(idx.hash, idx.sort)
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(idx.name),
			KeySchema:  keySchema(idx.hash, idx.sort),
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	in.AttributeDefinitions = attrs
	return in
}

func createTable(ctx context.Context, client *dynamodb.Client, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	var inUse *types.ResourceInUseException
	switch {
	case err == nil:
		slog.Info("created table", "table", aws.ToString(input.TableName))
	case errors.As(err, &inUse):
		// already there
	default:
		slog.Warn("could not create table", "table", aws.ToString(input.TableName), "err", err)
	}
}

func enableTTL(ctx context.Context, client *dynamodb.Client, tableName, ttlAttr string) {
	_, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(tableName),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			Enabled:       aws.Bool(true),
			AttributeName: aws.String(ttlAttr),
		},
	})
	if err != nil {
		slog.Warn("could not enable TTL", "table", tableName, "err", err)
	}
}
