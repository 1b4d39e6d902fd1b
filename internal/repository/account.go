package repository

import (
	"context"
	"errors"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotEnoughBalance is returned by Debit when the guarded update matched
// no row, meaning the account is missing or cannot cover the amount.
var ErrNotEnoughBalance = errors.New("account balance is not enough")

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByAddress(ctx context.Context, address string) (*entity.Account, error)

	// Debit atomically checks and deducts: the row is updated only if its
	// balance covers the amount.
	Debit(ctx context.Context, address string, amount uint64) error

	// Credit adds to the account, creating the row if it does not exist.
	Credit(ctx context.Context, address string, amount uint64) error
}

type accountRepository struct{}

func NewAccountRepository() *accountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return xcontext.DB(ctx).Create(account).Error
}

func (r *accountRepository) GetByAddress(ctx context.Context, address string) (*entity.Account, error) {
	var result entity.Account
	if err := xcontext.DB(ctx).Take(&result, "address=?", address).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *accountRepository) Debit(ctx context.Context, address string, amount uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.Account{}).
		Where("address=? AND balance >= ?", address, amount).
		Update("balance", gorm.Expr("balance-?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNotEnoughBalance
	}

	return nil
}

func (r *accountRepository) Credit(ctx context.Context, address string, amount uint64) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.Assignments(map[string]any{"balance": gorm.Expr("balance+?", amount)}),
	}).Create(&entity.Account{
		Base:    entity.Base{ID: uuid.NewString()},
		Address: address,
		Balance: amount,
	}).Error
}
