package repository

import (
	"context"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/pkg/xcontext"
)

type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByAddress(ctx context.Context, address string) ([]entity.Transfer, error)
}

type transferRepository struct{}

func NewTransferRepository() *transferRepository {
	return &transferRepository{}
}

func (r *transferRepository) Create(ctx context.Context, transfer *entity.Transfer) error {
	return xcontext.DB(ctx).Create(transfer).Error
}

func (r *transferRepository) GetByAddress(ctx context.Context, address string) ([]entity.Transfer, error) {
	var result []entity.Transfer
	err := xcontext.DB(ctx).
		Where("from_address=? OR to_address=?", address, address).
		Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
