package handler

import (
	"context"

	"github.com/pr1me-admin/internal/application/todo"
	"github.com/pr1me-admin/internal/rpc/contract"
)

// TodoHandler implements the todo resource. Todos are private to their creator.
type TodoHandler struct {
	svc todo.Service
}

func NewTodoHandler(svc todo.Service) *TodoHandler { return &TodoHandler{svc: svc} }

func (h *TodoHandler) Create(ctx context.Context, in contract.TodoInput) (contract.MessageOutput, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return contract.MessageOutput{}, err
	}
	if err := h.svc.Create(ctx, claims.UserID, in.ID, in.Title); err != nil {
		return contract.MessageOutput{}, err
	}
	return contract.MessageOutput{Message: "todo created"}, nil
}

func (h *TodoHandler) List(ctx context.Context, _ contract.Empty) (contract.TodoList, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return contract.TodoList{}, err
	}
	todos, err := h.svc.List(ctx, claims.UserID)
	if err != nil {
		return contract.TodoList{}, err
	}
	out := contract.TodoList{Todos: make([]contract.Todo, len(todos))}
	for i, t := range todos {
		out.Todos[i] = contract.Todo{ID: t.TodoID, Title: t.Title}
	}
	return out, nil
}
