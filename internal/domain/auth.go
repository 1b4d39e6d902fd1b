package domain

import (
	"bytes"
	"context"
	"errors"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/model"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/pkg/crypto"
	"github.com/escrowpool/backend/pkg/errorx"
	"github.com/escrowpool/backend/pkg/jwt"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum/accounts"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	WalletLogin(context.Context, *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	WalletVerify(context.Context, *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
}

type authDomain struct {
	userRepo    repository.UserRepository
	accessToken *jwt.Engine[model.AccessToken]
	nonceToken  *jwt.Engine[model.NonceToken]
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	accessToken *jwt.Engine[model.AccessToken],
	nonceToken *jwt.Engine[model.NonceToken],
) *authDomain {
	return &authDomain{
		userRepo:    userRepo,
		accessToken: accessToken,
		nonceToken:  nonceToken,
	}
}

// WalletLogin hands out a random nonce the wallet must sign. The nonce rides
// inside a short-lived token, so no server-side session is needed.
func (d *authDomain) WalletLogin(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if !ethcommon.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random string: %v", err)
		return nil, errorx.Unknown
	}

	token, err := d.nonceToken.Generate(req.Address, model.NonceToken{
		Address: req.Address,
		Nonce:   nonce,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate nonce token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{
		Address:    req.Address,
		Nonce:      nonce,
		NonceToken: token,
	}, nil
}

func (d *authDomain) WalletVerify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	nonceToken, err := d.nonceToken.Verify(req.NonceToken)
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired nonce")
	}

	hash := accounts.TextHash([]byte(nonceToken.Nonce))
	signature, err := hexutil.Decode(req.Signature)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode signature: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Malformed signature")
	}

	if len(signature) != ethcrypto.SignatureLength {
		return nil, errorx.New(errorx.BadRequest, "Malformed signature")
	}

	// Transform yellow paper V from 27/28 to 0/1.
	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27
	}

	recovered, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot recover signature to address: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Malformed signature")
	}

	recoveredAddr := ethcrypto.PubkeyToAddress(*recovered)
	if !bytes.Equal(recoveredAddr.Bytes(), ethcommon.HexToAddress(nonceToken.Address).Bytes()) {
		return nil, errorx.New(errorx.BadRequest, "Mismatched address")
	}

	user, err := d.userRepo.GetByAddress(ctx, nonceToken.Address)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		user = &entity.User{
			Base:    entity.Base{ID: uuid.NewString()},
			Address: nonceToken.Address,
			Name:    nonceToken.Address,
		}
		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}
	}

	token, err := d.accessToken.Generate(user.ID, model.AccessToken{
		ID:      user.ID,
		Name:    user.Name,
		Address: user.Address,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{
		AccessToken: token,
		User:        model.ConvertUser(user),
	}, nil
}
