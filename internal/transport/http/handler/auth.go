package handler

import (
	"context"

	"github.com/pr1me-admin/internal/application/account"
	"github.com/pr1me-admin/internal/rpc/contract"
)

// AuthHandler implements the auth resource.
type AuthHandler struct {
	svc account.Service
}

func NewAuthHandler(svc account.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(ctx context.Context, in contract.LoginInput) (contract.LoginOutput, error) {
	tok, err := h.svc.Login(ctx, in.Email, in.Password)
	if err != nil {
		return contract.LoginOutput{}, err
	}
	return contract.LoginOutput{Token: tok}, nil
}

func (h *AuthHandler) Logout(ctx context.Context, _ contract.Empty) (contract.SuccessOutput, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return contract.SuccessOutput{}, err
	}
	if err := h.svc.Logout(ctx, claims.SessionID); err != nil {
		return contract.SuccessOutput{}, err
	}
	return contract.SuccessOutput{Success: true}, nil
}

// CheckAdmin answers with a bare boolean; lookup failures other than an
// unknown user surface as errors.
func (h *AuthHandler) CheckAdmin(ctx context.Context, in contract.CheckAdminInput) (contract.CheckAdminOutput, error) {
	ok, err := h.svc.CheckAdmin(ctx, in.UserName, in.Password)
	if err != nil {
		return contract.CheckAdminOutput{}, err
	}
	return contract.CheckAdminOutput{OK: ok}, nil
}
