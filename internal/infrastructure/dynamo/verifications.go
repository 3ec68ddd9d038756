package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pr1me-admin/internal/domain"
)

// VerificationRepo stores issued one-time passwords, one per email and type.
// Items expire through the expires_at TTL.
type VerificationRepo struct {
	t table
}

func NewVerificationRepo(db DB, tableName string) *VerificationRepo {
	return &VerificationRepo{t: table{db: db, name: tableName, entity: "verification"}}
}

// Put replaces any code previously issued for the same email and type.
func (r *VerificationRepo) Put(ctx context.Context, v *domain.OTPVerification) error {
	return r.t.put(ctx, v, "")
}

// Get reads consistently, so a code is visible right after Put. TTL deletion
// is lazy: callers must still check ExpiresAt.
func (r *VerificationRepo) Get(ctx context.Context, email, verType string) (*domain.OTPVerification, error) {
	return getItem[domain.OTPVerification](ctx, r.t, compositeKey(fieldEmail, email, "type", verType), true)
}

func (r *VerificationRepo) Delete(ctx context.Context, email, verType string) error {
	return r.t.delete(ctx, compositeKey(fieldEmail, email, "type", verType))
}

// AddAttempt atomically counts one wrong code against a pending verification
// and returns the new total.
func (r *VerificationRepo) AddAttempt(ctx context.Context, email, verType string) (int, error) {
	out, err := r.t.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.t.name),
		Key:                      compositeKey(fieldEmail, email, "type", verType),
		UpdateExpression:         aws.String("ADD #a :one"),
		ConditionExpression:      aws.String("attribute_exists(#e)"),
		ExpressionAttributeNames: map[string]string{"#a": "attempts", "#e": fieldEmail},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if isConditionFailed(err) {
		return 0, fmt.Errorf("%s not found: %w", r.t.entity, domain.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	var got struct {
		Attempts int `dynamodbav:"attempts"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &got); err != nil {
		return 0, fmt.Errorf("unmarshal %s: %w", r.t.entity, err)
	}
	return got.Attempts, nil
}
