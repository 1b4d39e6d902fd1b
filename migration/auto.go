package migration

import (
	"context"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Account{},
		&entity.Pool{},
		&entity.Membership{},
		&entity.ClaimRecord{},
		&entity.FeePaidRecord{},
		&entity.Deposit{},
		&entity.ClaimedDeposit{},
		&entity.Transfer{},
	)
}
