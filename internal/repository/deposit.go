package repository

import (
	"context"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type DepositRepository interface {
	Create(ctx context.Context, deposit *entity.Deposit) error
	GetByID(ctx context.Context, id int64) (*entity.Deposit, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Deposit, error)

	// Invalidate flips valid to false; it only matches a still-valid row, so
	// a deposit can transition exactly once.
	Invalidate(ctx context.Context, id int64) error

	CreateClaimed(ctx context.Context, claimed *entity.ClaimedDeposit) error
	IsClaimed(ctx context.Context, id int64) (bool, error)
}

type depositRepository struct{}

func NewDepositRepository() *depositRepository {
	return &depositRepository{}
}

func (r *depositRepository) Create(ctx context.Context, deposit *entity.Deposit) error {
	return xcontext.DB(ctx).Create(deposit).Error
}

func (r *depositRepository) GetByID(ctx context.Context, id int64) (*entity.Deposit, error) {
	var result entity.Deposit
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *depositRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Deposit, error) {
	var result []entity.Deposit
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *depositRepository) Invalidate(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Deposit{}).
		Where("id=? AND valid=?", id, true).
		Update("valid", false)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *depositRepository) CreateClaimed(ctx context.Context, claimed *entity.ClaimedDeposit) error {
	return xcontext.DB(ctx).Create(claimed).Error
}

func (r *depositRepository) IsClaimed(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ClaimedDeposit{}).
		Where("deposit_id=?", id).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
