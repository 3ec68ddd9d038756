package dynamo

import (
	"context"

	"github.com/pr1me-admin/internal/domain"
)

// WithdrawalRepo reads the withdrawals table. Withdrawals are written by the
// member-facing platform; the admin side only lists them.
type WithdrawalRepo struct {
	t table
}

func NewWithdrawalRepo(db DB, tableName string) *WithdrawalRepo {
	return &WithdrawalRepo{t: table{db: db, name: tableName, entity: "withdrawal"}}
}

func (r *WithdrawalRepo) Scan(ctx context.Context) ([]domain.Withdrawal, error) {
	return scanAll[domain.Withdrawal](ctx, r.t)
}

// MerchantRepo reads the merchants table.
type MerchantRepo struct {
	t table
}

func NewMerchantRepo(db DB, tableName string) *MerchantRepo {
	return &MerchantRepo{t: table{db: db, name: tableName, entity: "merchant"}}
}

func (r *MerchantRepo) Scan(ctx context.Context) ([]domain.Merchant, error) {
	return scanAll[domain.Merchant](ctx, r.t)
}
