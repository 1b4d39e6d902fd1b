package repository

import (
	"context"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PoolRepository interface {
	Create(ctx context.Context, pool *entity.Pool) error
	GetByID(ctx context.Context, id string) (*entity.Pool, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Pool, error)

	// IncreaseBalance adds to the tracked pool balance.
	IncreaseBalance(ctx context.Context, id string, amount uint64) error

	// DecreaseBalance deducts from the tracked balance only if it covers the
	// amount; gorm.ErrRecordNotFound signals it does not.
	DecreaseBalance(ctx context.Context, id string, amount uint64) error

	IncreasePlayers(ctx context.Context, id string, delta int) error
	SetSponsored(ctx context.Context, id string) error
}

type poolRepository struct{}

func NewPoolRepository() *poolRepository {
	return &poolRepository{}
}

func (r *poolRepository) Create(ctx context.Context, pool *entity.Pool) error {
	return xcontext.DB(ctx).Create(pool).Error
}

func (r *poolRepository) GetByID(ctx context.Context, id string) (*entity.Pool, error) {
	var result entity.Pool
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *poolRepository) GetByHandle(ctx context.Context, handle string) (*entity.Pool, error) {
	var result entity.Pool
	if err := xcontext.DB(ctx).Take(&result, "handle=?", handle).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *poolRepository) IncreaseBalance(ctx context.Context, id string, amount uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.Pool{}).
		Where("id=?", id).
		Update("balance", gorm.Expr("balance+?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *poolRepository) DecreaseBalance(ctx context.Context, id string, amount uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.Pool{}).
		Where("id=? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance-?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *poolRepository) IncreasePlayers(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).Model(&entity.Pool{}).
		Where("id=?", id).
		Update("total_players", gorm.Expr("total_players+?", delta))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *poolRepository) SetSponsored(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Model(&entity.Pool{}).
		Where("id=?", id).
		Update("sponsored", true).Error
}
