package repository

import (
	"context"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	Get(ctx context.Context, poolID, userID string) (*entity.Membership, error)
	Delete(ctx context.Context, poolID, userID string) error
	Count(ctx context.Context, poolID string) (int64, error)
	GetByPoolID(ctx context.Context, poolID string) ([]entity.Membership, error)
}

type membershipRepository struct{}

func NewMembershipRepository() *membershipRepository {
	return &membershipRepository{}
}

func (r *membershipRepository) Create(ctx context.Context, membership *entity.Membership) error {
	return xcontext.DB(ctx).Create(membership).Error
}

func (r *membershipRepository) Get(ctx context.Context, poolID, userID string) (*entity.Membership, error) {
	var result entity.Membership
	err := xcontext.DB(ctx).Take(&result, "pool_id=? AND user_id=?", poolID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *membershipRepository) Delete(ctx context.Context, poolID, userID string) error {
	tx := xcontext.DB(ctx).
		Where("pool_id=? AND user_id=?", poolID, userID).
		Delete(&entity.Membership{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *membershipRepository) Count(ctx context.Context, poolID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Membership{}).
		Where("pool_id=?", poolID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *membershipRepository) GetByPoolID(ctx context.Context, poolID string) ([]entity.Membership, error) {
	var result []entity.Membership
	if err := xcontext.DB(ctx).Find(&result, "pool_id=?", poolID).Error; err != nil {
		return nil, err
	}

	return result, nil
}
