package handler

import (
	"context"

	"github.com/pr1me-admin/internal/application/account"
	"github.com/pr1me-admin/internal/rpc/contract"
)

// UserHandler implements the user resource and the root "$get".
type UserHandler struct {
	svc account.Service
}

func NewUserHandler(svc account.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) GetProfile(ctx context.Context, _ contract.Empty) (contract.Profile, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return contract.Profile{}, err
	}
	p, err := h.svc.Profile(ctx, claims.UserID)
	if err != nil {
		return contract.Profile{}, err
	}
	return contract.Profile{ID: p.ID, Name: p.Name, Email: p.Email}, nil
}

func (h *UserHandler) UpdateProfile(ctx context.Context, in contract.UpdateProfileInput) (contract.SuccessOutput, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return contract.SuccessOutput{}, err
	}
	if err := h.svc.UpdateProfile(ctx, claims.UserID, in.Name, in.Email); err != nil {
		return contract.SuccessOutput{}, err
	}
	return contract.SuccessOutput{Success: true}, nil
}
