package domain

import (
	"context"
	"errors"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/escrow"
	"github.com/escrowpool/backend/internal/model"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/pkg/errorx"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepositDomain interface {
	Deposit(context.Context, *model.CreateDepositRequest) (*model.CreateDepositResponse, error)
	Claim(context.Context, *model.ClaimDepositRequest) (*model.ClaimDepositResponse, error)
	MarkLost(context.Context, *model.MarkDepositLostRequest) (*model.MarkDepositLostResponse, error)
	GetDeposit(context.Context, *model.GetDepositRequest) (*model.GetDepositResponse, error)
	GetMyDeposits(context.Context, *model.GetMyDepositsRequest) (*model.GetMyDepositsResponse, error)
}

type depositDomain struct {
	depositRepo repository.DepositRepository
	poolRepo    repository.PoolRepository
	userRepo    repository.UserRepository

	guard    *escrow.Guard
	verifier escrow.Verifier
	ledger   escrow.Transferrer
	tokens   escrow.TokenTransferrerFactory
}

func NewDepositDomain(
	depositRepo repository.DepositRepository,
	poolRepo repository.PoolRepository,
	userRepo repository.UserRepository,
	guard *escrow.Guard,
	verifier escrow.Verifier,
	ledger escrow.Transferrer,
	tokens escrow.TokenTransferrerFactory,
) *depositDomain {
	return &depositDomain{
		depositRepo: depositRepo,
		poolRepo:    poolRepo,
		userRepo:    userRepo,
		guard:       guard,
		verifier:    verifier,
		ledger:      ledger,
		tokens:      tokens,
	}
}

func (d *depositDomain) transferrerFor(pool *entity.Pool) escrow.Transferrer {
	if pool.TokenAddress != "" && d.tokens != nil {
		return d.tokens.Transferrer(pool.TokenAddress)
	}

	return d.ledger
}

// Deposit is an independent funded entry: every call creates a new record
// under a fresh monotonically increasing id.
func (d *depositDomain) Deposit(
	ctx context.Context, req *model.CreateDepositRequest,
) (*model.CreateDepositResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	if req.Amount == 0 {
		return nil, errorx.New(errorx.InvalidAmount, "The deposit must be a positive amount")
	}

	ordinal := xcontext.Snowflake(ctx).Generate().Int64()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.transferrerFor(pool).Transfer(
		ctx, user.Address, pool.EscrowAddress, req.Amount, entity.TransferReasonDeposit)
	if err != nil {
		if errors.Is(err, escrow.ErrInsufficientBalance) {
			return nil, errorx.New(errorx.InsufficientFunds, "Your balance cannot cover the deposit")
		}

		xcontext.Logger(ctx).Errorf("Cannot transfer deposit: %v", err)
		return nil, errorx.New(errorx.TransferFailed, "Cannot transfer the deposit")
	}

	if err := d.poolRepo.IncreaseBalance(ctx, pool.ID, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase pool balance: %v", err)
		return nil, errorx.Unknown
	}

	deposit := &entity.Deposit{
		ID:          ordinal,
		PoolID:      pool.ID,
		UserID:      user.ID,
		Amount:      req.Amount,
		Valid:       true,
		DepositedAt: ordinal,
	}
	if err := d.depositRepo.Create(ctx, deposit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create deposit: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateDepositResponse{DepositID: deposit.ID}, nil
}

func (d *depositDomain) Claim(
	ctx context.Context, req *model.ClaimDepositRequest,
) (*model.ClaimDepositResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	deposit, err := d.depositRepo.GetByID(ctx, req.DepositID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.DepositNotFound, "Not found deposit")
		}

		xcontext.Logger(ctx).Errorf("Cannot get deposit: %v", err)
		return nil, errorx.Unknown
	}

	// Deposits are keyed by participant and id; someone else's deposit is
	// indistinguishable from a missing one.
	if deposit.UserID != user.ID {
		return nil, errorx.New(errorx.DepositNotFound, "Not found deposit")
	}

	pool, err := d.poolRepo.GetByID(ctx, deposit.PoolID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pool of deposit: %v", err)
		return nil, errorx.Unknown
	}

	release, err := d.guard.Acquire(pool.ID)
	if err != nil {
		return nil, errorx.New(errorx.Reentrancy, "Another operation on this pool is executing")
	}
	defer release()

	if !deposit.Valid {
		return nil, errorx.New(errorx.DepositNotValid, "The deposit is no longer valid")
	}

	claimed, err := d.depositRepo.IsClaimed(ctx, deposit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check claimed deposit: %v", err)
		return nil, errorx.Unknown
	}

	if claimed {
		return nil, errorx.New(errorx.DepositAlreadyClaimed, "The deposit was already claimed")
	}

	hash, err := escrow.ClaimMessage{
		Amount:    req.Amount,
		Recipient: user.Address,
		DepositID: &deposit.ID,
	}.Hash()
	if err != nil {
		return nil, errorx.New(errorx.InvalidFormat, "Cannot serialize the claim message")
	}

	signature, err := decodeSignature(req.Signature)
	if err != nil {
		return nil, errorx.New(errorx.InvalidSignature, "The signature is malformed")
	}

	if !d.verifier.Verify(hash, signature) {
		return nil, errorx.New(errorx.InvalidSignature, "The claim is not authorized")
	}

	if req.Amount == 0 {
		return nil, errorx.New(errorx.InvalidAmount, "The payout must be a positive amount")
	}

	if req.Amount > pool.Balance {
		return nil, errorx.New(errorx.MaximumRewardExceeded, "The payout exceeds the pool balance")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The payout is the signed amount, not the deposited one; the outcome is
	// computed off-chain and only authorized here.
	err = d.transferrerFor(pool).Transfer(
		ctx, pool.EscrowAddress, user.Address, req.Amount, entity.TransferReasonDepositClaim)
	if err != nil {
		if errors.Is(err, escrow.ErrInsufficientBalance) {
			return nil, errorx.New(errorx.InsufficientFunds, "The pool cannot cover the payout")
		}

		xcontext.Logger(ctx).Errorf("Cannot transfer payout: %v", err)
		return nil, errorx.New(errorx.TransferFailed, "Cannot transfer the payout")
	}

	if err := d.poolRepo.DecreaseBalance(ctx, pool.ID, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease pool balance: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.depositRepo.Invalidate(ctx, deposit.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot invalidate deposit: %v", err)
		return nil, errorx.Unknown
	}

	err = d.depositRepo.CreateClaimed(ctx, &entity.ClaimedDeposit{
		Base:      entity.Base{ID: uuid.NewString()},
		DepositID: deposit.ID,
		UserID:    user.ID,
		Amount:    req.Amount,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create claimed deposit: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ClaimDepositResponse{}, nil
}

// MarkLost invalidates a deposit without payout. It is how an off-chain
// process forfeits a deposit.
func (d *depositDomain) MarkLost(
	ctx context.Context, req *model.MarkDepositLostRequest,
) (*model.MarkDepositLostResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	deposit, err := d.depositRepo.GetByID(ctx, req.DepositID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.DepositNotFound, "Not found deposit")
		}

		xcontext.Logger(ctx).Errorf("Cannot get deposit: %v", err)
		return nil, errorx.Unknown
	}

	if deposit.UserID != req.UserID {
		return nil, errorx.New(errorx.DepositNotFound, "Not found deposit")
	}

	pool, err := d.poolRepo.GetByID(ctx, deposit.PoolID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pool of deposit: %v", err)
		return nil, errorx.Unknown
	}

	if user.ID != pool.OwnerID {
		return nil, errorx.New(errorx.Unauthorized, "Only the pool owner can mark a deposit lost")
	}

	if !deposit.Valid {
		return nil, errorx.New(errorx.DepositNotValid, "The deposit is no longer valid")
	}

	if err := d.depositRepo.Invalidate(ctx, deposit.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.DepositNotValid, "The deposit is no longer valid")
		}

		xcontext.Logger(ctx).Errorf("Cannot invalidate deposit: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkDepositLostResponse{}, nil
}

func (d *depositDomain) GetDeposit(
	ctx context.Context, req *model.GetDepositRequest,
) (*model.GetDepositResponse, error) {
	deposit, err := d.depositRepo.GetByID(ctx, req.DepositID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.DepositNotFound, "Not found deposit")
		}

		xcontext.Logger(ctx).Errorf("Cannot get deposit: %v", err)
		return nil, errorx.Unknown
	}

	pool, err := d.poolRepo.GetByID(ctx, deposit.PoolID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pool of deposit: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetDepositResponse{Deposit: model.ConvertDeposit(deposit, pool.Handle)}, nil
}

func (d *depositDomain) GetMyDeposits(
	ctx context.Context, req *model.GetMyDepositsRequest,
) (*model.GetMyDepositsResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	deposits, err := d.depositRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get deposits: %v", err)
		return nil, errorx.Unknown
	}

	handles := map[string]string{}
	result := make([]model.Deposit, 0, len(deposits))
	for i := range deposits {
		handle, ok := handles[deposits[i].PoolID]
		if !ok {
			pool, err := d.poolRepo.GetByID(ctx, deposits[i].PoolID)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get pool of deposit: %v", err)
				return nil, errorx.Unknown
			}

			handle = pool.Handle
			handles[pool.ID] = handle
		}

		result = append(result, model.ConvertDeposit(&deposits[i], handle))
	}

	return &model.GetMyDepositsResponse{Deposits: result}, nil
}
