package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/escrow"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/pkg/errorx"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"gorm.io/gorm"
)

func requestUser(ctx context.Context, userRepo repository.UserRepository) (*entity.User, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

func poolByHandle(ctx context.Context, poolRepo repository.PoolRepository, handle string) (*entity.Pool, error) {
	pool, err := poolRepo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PoolNotFound, "Not found pool")
		}

		xcontext.Logger(ctx).Errorf("Cannot get pool: %v", err)
		return nil, errorx.Unknown
	}

	return pool, nil
}

// decodeSignature parses a hex signature with or without the 0x prefix and
// requires the 65-byte recoverable form.
func decodeSignature(signature string) ([]byte, error) {
	if !strings.HasPrefix(signature, "0x") {
		signature = "0x" + signature
	}

	b, err := hexutil.Decode(signature)
	if err != nil {
		return nil, err
	}

	if len(b) != escrow.SignatureLength {
		return nil, errors.New("signature must be 65 bytes")
	}

	return b, nil
}
