package todo

import (
	"context"
	"time"

	"github.com/pr1me-admin/internal/domain"
)

type Service interface {
	Create(ctx context.Context, userID, todoID, title string) error
	List(ctx context.Context, userID string) ([]domain.Todo, error)
}

type todoStore interface {
	Create(ctx context.Context, t *domain.Todo) error
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)
}

type service struct {
	repo todoStore
}

func NewService(repo todoStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID, todoID, title string) error {
	return s.repo.Create(ctx, &domain.Todo{
		TodoID:    todoID,
		Title:     title,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	todos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}
