package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/escrow"
	"github.com/escrowpool/backend/internal/model"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/pkg/enum"
	"github.com/escrowpool/backend/pkg/errorx"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PoolDomain interface {
	CreatePool(context.Context, *model.CreatePoolRequest) (*model.CreatePoolResponse, error)
	Join(context.Context, *model.JoinPoolRequest) (*model.JoinPoolResponse, error)
	Leave(context.Context, *model.LeavePoolRequest) (*model.LeavePoolResponse, error)
	Kick(context.Context, *model.KickPlayerRequest) (*model.KickPlayerResponse, error)
	ClaimReward(context.Context, *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
	Fund(context.Context, *model.FundPoolRequest) (*model.FundPoolResponse, error)
	Withdraw(context.Context, *model.WithdrawPoolRequest) (*model.WithdrawPoolResponse, error)

	GetPool(context.Context, *model.GetPoolRequest) (*model.GetPoolResponse, error)
	GetTotalPlayers(context.Context, *model.GetTotalPlayersRequest) (*model.GetTotalPlayersResponse, error)
	GetPoolBalance(context.Context, *model.GetPoolBalanceRequest) (*model.GetPoolBalanceResponse, error)
	HasPlayerJoined(context.Context, *model.HasPlayerJoinedRequest) (*model.HasPlayerJoinedResponse, error)
	HasClaimedReward(context.Context, *model.HasClaimedRewardRequest) (*model.HasClaimedRewardResponse, error)
	HasPaidEntryFee(context.Context, *model.HasPaidEntryFeeRequest) (*model.HasPaidEntryFeeResponse, error)
	HasPaidPlatformFee(context.Context, *model.HasPaidPlatformFeeRequest) (*model.HasPaidPlatformFeeResponse, error)
}

type poolDomain struct {
	poolRepo       repository.PoolRepository
	membershipRepo repository.MembershipRepository
	claimRepo      repository.ClaimRepository
	accountRepo    repository.AccountRepository
	userRepo       repository.UserRepository

	guard    *escrow.Guard
	verifier escrow.Verifier
	ledger   escrow.Transferrer
	tokens   escrow.TokenTransferrerFactory
}

func NewPoolDomain(
	poolRepo repository.PoolRepository,
	membershipRepo repository.MembershipRepository,
	claimRepo repository.ClaimRepository,
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	guard *escrow.Guard,
	verifier escrow.Verifier,
	ledger escrow.Transferrer,
	tokens escrow.TokenTransferrerFactory,
) *poolDomain {
	return &poolDomain{
		poolRepo:       poolRepo,
		membershipRepo: membershipRepo,
		claimRepo:      claimRepo,
		accountRepo:    accountRepo,
		userRepo:       userRepo,
		guard:          guard,
		verifier:       verifier,
		ledger:         ledger,
		tokens:         tokens,
	}
}

func (d *poolDomain) transferrerFor(pool *entity.Pool) escrow.Transferrer {
	if pool.TokenAddress != "" && d.tokens != nil {
		return d.tokens.Transferrer(pool.TokenAddress)
	}

	return d.ledger
}

func (d *poolDomain) CreatePool(
	ctx context.Context, req *model.CreatePoolRequest,
) (*model.CreatePoolResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	if req.Handle == "" {
		return nil, errorx.New(errorx.BadRequest, "Pool handle must not be empty")
	}

	feeModel, err := enum.ToEnum[entity.PoolFeeModelType](req.FeeModel)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid fee model %s", req.FeeModel)
	}

	if feeModel != entity.PoolFeeModelNone && req.EntryFee == 0 {
		return nil, errorx.New(errorx.InvalidFee, "Entry fee must be a positive amount")
	}

	_, err = d.poolRepo.GetByHandle(ctx, req.Handle)
	if err == nil {
		return nil, errorx.New(errorx.PoolAlreadyExists, "Pool %s already exists", req.Handle)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check pool existence: %v", err)
		return nil, errorx.Unknown
	}

	pool := &entity.Pool{
		Base:         entity.Base{ID: uuid.NewString()},
		Handle:       req.Handle,
		OwnerID:      user.ID,
		FeeModel:     feeModel,
		EntryFee:     req.EntryFee,
		TokenAddress: req.TokenAddress,
	}
	pool.EscrowAddress = fmt.Sprintf("pool:%s", pool.ID)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.poolRepo.Create(ctx, pool); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create pool: %v", err)
		return nil, errorx.Unknown
	}

	err = d.accountRepo.Create(ctx, &entity.Account{
		Base:    entity.Base{ID: uuid.NewString()},
		Address: pool.EscrowAddress,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create escrow account: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp := model.ConvertPool(pool)
	return &model.CreatePoolResponse{Pool: resp}, nil
}

func (d *poolDomain) Join(
	ctx context.Context, req *model.JoinPoolRequest,
) (*model.JoinPoolResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	release, err := d.guard.Acquire(pool.ID)
	if err != nil {
		return nil, errorx.New(errorx.Reentrancy, "Another operation on this pool is executing")
	}
	defer release()

	_, err = d.membershipRepo.Get(ctx, pool.ID, user.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyJoined, "You already joined this pool")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check membership: %v", err)
		return nil, errorx.Unknown
	}

	isSponsor := false
	var contributed uint64

	switch pool.FeeModel {
	case entity.PoolFeeModelFixed:
		contributed = pool.EntryFee

	case entity.PoolFeeModelSponsored:
		if user.ID == pool.OwnerID {
			// The sponsor seeds the pool with the full pool size.
			isSponsor = true
			contributed = pool.EntryFee
		} else if pool.TotalPlayers == 0 {
			return nil, errorx.New(errorx.NotJoinable, "The pool is waiting for its sponsor")
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if contributed > 0 {
		reason := entity.TransferReasonEntryFee
		if isSponsor {
			reason = entity.TransferReasonSponsorship
		}

		err := d.transferrerFor(pool).Transfer(ctx, user.Address, pool.EscrowAddress, contributed, reason)
		if err != nil {
			if errors.Is(err, escrow.ErrInsufficientBalance) {
				return nil, errorx.New(errorx.InsufficientFunds, "Your balance cannot cover the entry fee")
			}

			xcontext.Logger(ctx).Errorf("Cannot transfer entry fee: %v", err)
			return nil, errorx.New(errorx.TransferFailed, "Cannot transfer the entry fee")
		}

		if err := d.poolRepo.IncreaseBalance(ctx, pool.ID, contributed); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase pool balance: %v", err)
			return nil, errorx.Unknown
		}
	}

	err = d.membershipRepo.Create(ctx, &entity.Membership{
		Base:        entity.Base{ID: uuid.NewString()},
		PoolID:      pool.ID,
		UserID:      user.ID,
		JoinedAt:    xcontext.Snowflake(ctx).Generate().Int64(),
		Contributed: contributed,
		IsSponsor:   isSponsor,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create membership: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.poolRepo.IncreasePlayers(ctx, pool.ID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase total players: %v", err)
		return nil, errorx.Unknown
	}

	if isSponsor {
		if err := d.poolRepo.SetSponsored(ctx, pool.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark pool as sponsored: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.JoinPoolResponse{}, nil
}

func (d *poolDomain) Leave(
	ctx context.Context, req *model.LeavePoolRequest,
) (*model.LeavePoolResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	release, err := d.guard.Acquire(pool.ID)
	if err != nil {
		return nil, errorx.New(errorx.Reentrancy, "Another operation on this pool is executing")
	}
	defer release()

	membership, err := d.membershipRepo.Get(ctx, pool.ID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotJoined, "You did not join this pool")
		}

		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return nil, errorx.Unknown
	}

	// The refund is fixed per role: the entry contribution for a regular
	// player, the whole pool for the sponsor, who must also be the last one
	// out.
	var refund uint64
	if membership.IsSponsor {
		if pool.TotalPlayers > 1 {
			return nil, errorx.New(errorx.PoolNotEmpty, "The sponsor can only leave an empty pool")
		}

		refund = pool.Balance
	} else {
		refund = membership.Contributed
	}

	hash, err := escrow.ClaimMessage{
		Amount:    refund,
		Recipient: user.Address,
		PoolID:    pool.ID,
	}.Hash()
	if err != nil {
		return nil, errorx.New(errorx.InvalidFormat, "Cannot serialize the refund message")
	}

	signature, err := decodeSignature(req.Signature)
	if err != nil {
		return nil, errorx.New(errorx.InvalidSignature, "The signature is malformed")
	}

	if !d.verifier.Verify(hash, signature) {
		return nil, errorx.New(errorx.InvalidSignature, "The refund is not authorized")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if refund > 0 {
		err := d.transferrerFor(pool).Transfer(
			ctx, pool.EscrowAddress, user.Address, refund, entity.TransferReasonRefund)
		if err != nil {
			if errors.Is(err, escrow.ErrInsufficientBalance) {
				return nil, errorx.New(errorx.InsufficientFunds, "The pool cannot cover the refund")
			}

			xcontext.Logger(ctx).Errorf("Cannot transfer refund: %v", err)
			return nil, errorx.New(errorx.TransferFailed, "Cannot transfer the refund")
		}

		if err := d.poolRepo.DecreaseBalance(ctx, pool.ID, refund); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease pool balance: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.membershipRepo.Delete(ctx, pool.ID, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete membership: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.poolRepo.IncreasePlayers(ctx, pool.ID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease total players: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.LeavePoolResponse{RefundAmount: refund}, nil
}

func (d *poolDomain) Kick(
	ctx context.Context, req *model.KickPlayerRequest,
) (*model.KickPlayerResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	if user.ID != pool.OwnerID {
		return nil, errorx.New(errorx.Unauthorized, "Only the pool owner can kick players")
	}

	if req.UserID == user.ID {
		return nil, errorx.New(errorx.Unauthorized, "The owner cannot kick themselves")
	}

	release, err := d.guard.Acquire(pool.ID)
	if err != nil {
		return nil, errorx.New(errorx.Reentrancy, "Another operation on this pool is executing")
	}
	defer release()

	membership, err := d.membershipRepo.Get(ctx, pool.ID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotJoined, "The player did not join this pool")
		}

		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return nil, errorx.Unknown
	}

	claimed, err := d.claimRepo.HasClaimed(ctx, pool.ID, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check claim record: %v", err)
		return nil, errorx.Unknown
	}

	if claimed {
		return nil, errorx.New(errorx.RewardAlreadyClaimed,
			"Cannot kick a player whose reward was already claimed")
	}

	target, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get target user: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if pool.RefundsOnKick() && membership.Contributed > 0 {
		err := d.transferrerFor(pool).Transfer(
			ctx, pool.EscrowAddress, target.Address, membership.Contributed, entity.TransferReasonRefund)
		if err != nil {
			if errors.Is(err, escrow.ErrInsufficientBalance) {
				return nil, errorx.New(errorx.InsufficientFunds, "The pool cannot cover the refund")
			}

			xcontext.Logger(ctx).Errorf("Cannot transfer refund: %v", err)
			return nil, errorx.New(errorx.TransferFailed, "Cannot transfer the refund")
		}

		if err := d.poolRepo.DecreaseBalance(ctx, pool.ID, membership.Contributed); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease pool balance: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.membershipRepo.Delete(ctx, pool.ID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete membership: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.poolRepo.IncreasePlayers(ctx, pool.ID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease total players: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.KickPlayerResponse{}, nil
}

func (d *poolDomain) ClaimReward(
	ctx context.Context, req *model.ClaimRewardRequest,
) (*model.ClaimRewardResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	release, err := d.guard.Acquire(pool.ID)
	if err != nil {
		return nil, errorx.New(errorx.Reentrancy, "Another operation on this pool is executing")
	}
	defer release()

	claimed, err := d.claimRepo.HasClaimed(ctx, pool.ID, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check claim record: %v", err)
		return nil, errorx.Unknown
	}

	if claimed {
		return nil, errorx.New(errorx.RewardAlreadyClaimed, "You already claimed your reward")
	}

	if req.Amount > pool.Balance {
		return nil, errorx.New(errorx.MaximumRewardExceeded,
			"The reward exceeds the pool balance")
	}

	hash, err := escrow.ClaimMessage{
		Amount:    req.Amount,
		Recipient: user.Address,
		PoolID:    pool.ID,
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
		return nil, errorx.New(errorx.InvalidAmount, "The reward must be a positive amount")
	}

	feePaid, err := d.claimRepo.HasPaidFee(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check fee record: %v", err)
		return nil, errorx.Unknown
	}

	// Both transfers and every ledger write commit as one unit, so a failed
	// reward transfer also unwinds an already-executed fee transfer.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	transferrer := d.transferrerFor(pool)
	feeWallet := xcontext.Configs(ctx).Escrow.FeeWalletAddress
	feePercent := xcontext.Configs(ctx).Escrow.FeePercent

	var fee uint64
	net := req.Amount
	if !feePaid {
		fee = req.Amount * feePercent / 100
		net = req.Amount - fee

		if fee > 0 {
			err := transferrer.Transfer(
				ctx, pool.EscrowAddress, feeWallet, fee, entity.TransferReasonPlatformFee)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot transfer platform fee: %v", err)
				return nil, errorx.New(errorx.FeeTransferFailed, "Cannot transfer the platform fee")
			}

			err = d.claimRepo.CreateFeePaid(ctx, &entity.FeePaidRecord{
				Base:   entity.Base{ID: uuid.NewString()},
				UserID: user.ID,
			})
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot create fee record: %v", err)
				return nil, errorx.Unknown
			}
		}
	}

	err = transferrer.Transfer(ctx, pool.EscrowAddress, user.Address, net, entity.TransferReasonReward)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot transfer reward: %v", err)
		return nil, errorx.New(errorx.TransferFailed, "Cannot transfer the reward")
	}

	err = d.claimRepo.CreateRecord(ctx, &entity.ClaimRecord{
		Base:    entity.Base{ID: uuid.NewString()},
		PoolID:  pool.ID,
		UserID:  user.ID,
		Claimed: true,
		Amount:  req.Amount,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create claim record: %v", err)
		return nil, errorx.Unknown
	}

	// The tracked balance drops by the gross amount; the fee left the
	// escrow too.
	if err := d.poolRepo.DecreaseBalance(ctx, pool.ID, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease pool balance: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ClaimRewardResponse{Fee: fee, Net: net}, nil
}

func (d *poolDomain) Fund(
	ctx context.Context, req *model.FundPoolRequest,
) (*model.FundPoolResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	if req.Amount == 0 {
		return nil, errorx.New(errorx.InvalidAmount, "The contribution must be a positive amount")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.transferrerFor(pool).Transfer(
		ctx, user.Address, pool.EscrowAddress, req.Amount, entity.TransferReasonSponsorship)
	if err != nil {
		if errors.Is(err, escrow.ErrInsufficientBalance) {
			return nil, errorx.New(errorx.InsufficientFunds, "Your balance cannot cover the contribution")
		}

		xcontext.Logger(ctx).Errorf("Cannot transfer contribution: %v", err)
		return nil, errorx.New(errorx.TransferFailed, "Cannot transfer the contribution")
	}

	if err := d.poolRepo.IncreaseBalance(ctx, pool.ID, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase pool balance: %v", err)
		return nil, errorx.Unknown
	}

	if user.ID == pool.OwnerID && !pool.Sponsored {
		if err := d.poolRepo.SetSponsored(ctx, pool.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark pool as sponsored: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.FundPoolResponse{}, nil
}

func (d *poolDomain) Withdraw(
	ctx context.Context, req *model.WithdrawPoolRequest,
) (*model.WithdrawPoolResponse, error) {
	user, err := requestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	if user.ID != pool.OwnerID {
		return nil, errorx.New(errorx.Unauthorized, "Only the pool owner can withdraw")
	}

	if req.Amount == 0 {
		return nil, errorx.New(errorx.InvalidAmount, "The withdrawal must be a positive amount")
	}

	if req.Amount > pool.Balance {
		return nil, errorx.New(errorx.InsufficientFunds, "The pool cannot cover the withdrawal")
	}

	release, err := d.guard.Acquire(pool.ID)
	if err != nil {
		return nil, errorx.New(errorx.Reentrancy, "Another operation on this pool is executing")
	}
	defer release()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.transferrerFor(pool).Transfer(
		ctx, pool.EscrowAddress, user.Address, req.Amount, entity.TransferReasonWithdrawal)
	if err != nil {
		if errors.Is(err, escrow.ErrInsufficientBalance) {
			return nil, errorx.New(errorx.InsufficientFunds, "The pool cannot cover the withdrawal")
		}

		xcontext.Logger(ctx).Errorf("Cannot transfer withdrawal: %v", err)
		return nil, errorx.New(errorx.TransferFailed, "Cannot transfer the withdrawal")
	}

	if err := d.poolRepo.DecreaseBalance(ctx, pool.ID, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease pool balance: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.WithdrawPoolResponse{}, nil
}

func (d *poolDomain) GetPool(
	ctx context.Context, req *model.GetPoolRequest,
) (*model.GetPoolResponse, error) {
	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	return &model.GetPoolResponse{Pool: model.ConvertPool(pool)}, nil
}

func (d *poolDomain) GetTotalPlayers(
	ctx context.Context, req *model.GetTotalPlayersRequest,
) (*model.GetTotalPlayersResponse, error) {
	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	return &model.GetTotalPlayersResponse{TotalPlayers: pool.TotalPlayers}, nil
}

func (d *poolDomain) GetPoolBalance(
	ctx context.Context, req *model.GetPoolBalanceRequest,
) (*model.GetPoolBalanceResponse, error) {
	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	return &model.GetPoolBalanceResponse{Balance: pool.Balance}, nil
}

func (d *poolDomain) HasPlayerJoined(
	ctx context.Context, req *model.HasPlayerJoinedRequest,
) (*model.HasPlayerJoinedResponse, error) {
	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	_, err = d.membershipRepo.Get(ctx, pool.ID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.HasPlayerJoinedResponse{Joined: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return nil, errorx.Unknown
	}

	return &model.HasPlayerJoinedResponse{Joined: true}, nil
}

func (d *poolDomain) HasClaimedReward(
	ctx context.Context, req *model.HasClaimedRewardRequest,
) (*model.HasClaimedRewardResponse, error) {
	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	record, err := d.claimRepo.GetRecord(ctx, pool.ID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.HasClaimedRewardResponse{Claimed: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get claim record: %v", err)
		return nil, errorx.Unknown
	}

	return &model.HasClaimedRewardResponse{Claimed: record.Claimed, Amount: record.Amount}, nil
}

func (d *poolDomain) HasPaidEntryFee(
	ctx context.Context, req *model.HasPaidEntryFeeRequest,
) (*model.HasPaidEntryFeeResponse, error) {
	pool, err := poolByHandle(ctx, d.poolRepo, req.PoolHandle)
	if err != nil {
		return nil, err
	}

	membership, err := d.membershipRepo.Get(ctx, pool.ID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.HasPaidEntryFeeResponse{Paid: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return nil, errorx.Unknown
	}

	return &model.HasPaidEntryFeeResponse{Paid: membership.Contributed > 0}, nil
}

func (d *poolDomain) HasPaidPlatformFee(
	ctx context.Context, req *model.HasPaidPlatformFeeRequest,
) (*model.HasPaidPlatformFeeResponse, error) {
	paid, err := d.claimRepo.HasPaidFee(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check fee record: %v", err)
		return nil, errorx.Unknown
	}

	return &model.HasPaidPlatformFeeResponse{Paid: paid}, nil
}
