// Package ledger serves the read-only withdrawal and merchant listings shown
// on the admin dashboard.
package ledger

import (
	"context"
	"sort"

	"github.com/pr1me-admin/internal/domain"
)

type Service interface {
	Withdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	Merchants(ctx context.Context) ([]domain.Merchant, error)
}

type withdrawalStore interface {
	Scan(ctx context.Context) ([]domain.Withdrawal, error)
}

type merchantStore interface {
	Scan(ctx context.Context) ([]domain.Merchant, error)
}

type service struct {
	withdrawals withdrawalStore
	merchants   merchantStore
}

type ServiceDeps struct {
	WithdrawalRepo withdrawalStore
	MerchantRepo   merchantStore
}

func NewService(deps ServiceDeps) Service {
	return &service{withdrawals: deps.WithdrawalRepo, merchants: deps.MerchantRepo}
}

// Withdrawals returns every withdrawal, newest first.
func (s *service) Withdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	ws, err := s.withdrawals.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].CreatedAt.After(ws[j].CreatedAt) })
	if ws == nil {
		ws = []domain.Withdrawal{}
	}
	return ws, nil
}

// Merchants returns every merchant account, newest first.
func (s *service) Merchants(ctx context.Context) ([]domain.Merchant, error) {
	ms, err := s.merchants.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].CreatedAt.After(ms[j].CreatedAt) })
	if ms == nil {
		ms = []domain.Merchant{}
	}
	return ms, nil
}
