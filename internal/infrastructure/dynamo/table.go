package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pr1me-admin/internal/domain"
)

// DB is the part of *dynamodb.Client the repositories call.
type DB interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	dynamodb.QueryAPIClient
	dynamodb.ScanAPIClient
}

// table binds a DB to one table. entity names the item kind in errors.
type table struct {
	db     DB
	name   string
	entity string
}

// put writes v. A non-empty cond becomes the ConditionExpression; its
// failure is reported as ErrConflict.
func (t table) put(ctx context.Context, v interface{}, cond string) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", t.entity, err)
	}
	in := &dynamodb.PutItemInput{TableName: aws.String(t.name), Item: item}
	if cond != "" {
		in.ConditionExpression = aws.String(cond)
	}
	_, err = t.db.PutItem(ctx, in)
	if isConditionFailed(err) {
		return fmt.Errorf("%s exists: %w", t.entity, domain.ErrConflict)
	}
	return err
}

// update applies a SET of updates plus updated_at to an existing item.
func (t table) update(ctx context.Context, keyAttr, keyValue string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = t.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       strKey(keyAttr, keyValue),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String(fmt.Sprintf("attribute_exists(%s)", keyAttr)),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if isConditionFailed(err) {
		return fmt.Errorf("%s not found: %w", t.entity, domain.ErrNotFound)
	}
	return err
}

func (t table) delete(ctx context.Context, key map[string]types.AttributeValue) error {
	_, err := t.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: aws.String(t.name), Key: key})
	return err
}

// getItem loads one item by primary key.
func getItem[T any](ctx context.Context, t table, key map[string]types.AttributeValue, consistent bool) (*T, error) {
	out, err := t.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            key,
		ConsistentRead: aws.Bool(consistent),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%s not found: %w", t.entity, domain.ErrNotFound)
	}
	var v T
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", t.entity, err)
	}
	return &v, nil
}

// queryAll reads every page of a query. TableName is filled in from t.
func queryAll[T any](ctx context.Context, t table, in *dynamodb.QueryInput) ([]T, error) {
	in.TableName = aws.String(t.name)
	var all []T
	p := dynamodb.NewQueryPaginator(t.db, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", t.entity, err)
		}
		all = append(all, page...)
	}
	return all, nil
}

// scanAll reads every page of the table.
func scanAll[T any](ctx context.Context, t table) ([]T, error) {
	var all []T
	p := dynamodb.NewScanPaginator(t.db, &dynamodb.ScanInput{TableName: aws.String(t.name)})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", t.entity, err)
		}
		all = append(all, page...)
	}
	return all, nil
}

// eqString is a key condition on a single string attribute.
func eqString(attr, value string) (string, map[string]string, map[string]types.AttributeValue) {
	return "#k = :k",
		map[string]string{"#k": attr},
		map[string]types.AttributeValue{":k": &types.AttributeValueMemberS{Value: value}}
}
