package handler

import (
	"context"

	"github.com/pr1me-admin/internal/application/ledger"
	"github.com/pr1me-admin/internal/rpc/contract"
)

// LedgerHandler implements the withdrawal and merchant listings.
type LedgerHandler struct {
	svc ledger.Service
}

func NewLedgerHandler(svc ledger.Service) *LedgerHandler { return &LedgerHandler{svc: svc} }

func (h *LedgerHandler) Withdrawals(ctx context.Context, _ contract.Empty) (contract.WithdrawalList, error) {
	ws, err := h.svc.Withdrawals(ctx)
	if err != nil {
		return contract.WithdrawalList{}, err
	}
	out := contract.WithdrawalList{Withdrawals: make([]contract.Withdrawal, len(ws))}
	for i, w := range ws {
		out.Withdrawals[i] = contract.Withdrawal{
			ID: w.WithdrawalID, MemberID: w.MemberID, Amount: w.Amount,
			Method: w.Method, Status: w.Status, CreatedAt: w.CreatedAt,
		}
	}
	return out, nil
}

func (h *LedgerHandler) Merchants(ctx context.Context, _ contract.Empty) (contract.MerchantList, error) {
	ms, err := h.svc.Merchants(ctx)
	if err != nil {
		return contract.MerchantList{}, err
	}
	out := contract.MerchantList{Merchants: make([]contract.Merchant, len(ms))}
	for i, m := range ms {
		out.Merchants[i] = contract.Merchant{
			ID: m.MerchantID, AccountName: m.AccountName, AccountNumber: m.AccountNumber,
			BankName: m.BankName, CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}
