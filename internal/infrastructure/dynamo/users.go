package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pr1me-admin/internal/domain"
)

const (
	usernameIndex = "username-index"
	emailIndex    = "email-index"
)

// UserRepo reads and updates admin and team-member accounts. Accounts are
// provisioned outside this app; there is no delete.
type UserRepo struct {
	t table
}

func NewUserRepo(db DB, tableName string) *UserRepo {
	return &UserRepo{t: table{db: db, name: tableName, entity: "user"}}
}

func (r *UserRepo) Put(ctx context.Context, u *domain.User) error {
	return r.t.put(ctx, u, "")
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	return getItem[domain.User](ctx, r.t, strKey("user_id", userID), false)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getByIndex(ctx, usernameIndex, "username", username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByIndex(ctx, emailIndex, fieldEmail, email)
}

// UpdateProfile sets the display name and email of an existing user.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID, name, email string) error {
	return r.t.update(ctx, "user_id", userID, map[string]interface{}{
		fieldName:  name,
		fieldEmail: email,
	})
}

// getByIndex expects the index attribute to be unique.
func (r *UserRepo) getByIndex(ctx context.Context, index, attr, value string) (*domain.User, error) {
	cond, names, values := eqString(attr, value)
	users, err := queryAll[domain.User](ctx, r.t, &dynamodb.QueryInput{
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String(cond),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return &users[0], nil
}
