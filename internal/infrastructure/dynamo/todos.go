package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pr1me-admin/internal/domain"
)

const todosByCreatorIndex = "created_by-created_at-index"

// TodoRepo stores the per-admin todo list.
type TodoRepo struct {
	t table
}

func NewTodoRepo(db DB, tableName string) *TodoRepo {
	return &TodoRepo{t: table{db: db, name: tableName, entity: "todo"}}
}

// Create inserts t, failing with ErrConflict when the id is already taken.
func (r *TodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	return r.t.put(ctx, t, "attribute_not_exists(todo_id)")
}

// ListByUser returns the todos created by userID, oldest first.
func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	cond, names, values := eqString(fieldCreatedBy, userID)
	return queryAll[domain.Todo](ctx, r.t, &dynamodb.QueryInput{
		IndexName:                 aws.String(todosByCreatorIndex),
		KeyConditionExpression:    aws.String(cond),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(true),
	})
}
