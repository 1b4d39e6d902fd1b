package repository

import (
	"context"
	"errors"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ClaimRepository interface {
	CreateRecord(ctx context.Context, record *entity.ClaimRecord) error
	GetRecord(ctx context.Context, poolID, userID string) (*entity.ClaimRecord, error)
	HasClaimed(ctx context.Context, poolID, userID string) (bool, error)

	CreateFeePaid(ctx context.Context, record *entity.FeePaidRecord) error
	HasPaidFee(ctx context.Context, userID string) (bool, error)
}

type claimRepository struct{}

func NewClaimRepository() *claimRepository {
	return &claimRepository{}
}

func (r *claimRepository) CreateRecord(ctx context.Context, record *entity.ClaimRecord) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *claimRepository) GetRecord(ctx context.Context, poolID, userID string) (*entity.ClaimRecord, error) {
	var result entity.ClaimRecord
	err := xcontext.DB(ctx).Take(&result, "pool_id=? AND user_id=?", poolID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *claimRepository) HasClaimed(ctx context.Context, poolID, userID string) (bool, error) {
	record, err := r.GetRecord(ctx, poolID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return record.Claimed, nil
}

func (r *claimRepository) CreateFeePaid(ctx context.Context, record *entity.FeePaidRecord) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *claimRepository) HasPaidFee(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.FeePaidRecord{}).
		Where("user_id=?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
