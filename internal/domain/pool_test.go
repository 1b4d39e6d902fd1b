package domain

import (
	"context"
	"strings"
	"testing"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/escrow"
	"github.com/escrowpool/backend/internal/model"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/pkg/errorx"
	"github.com/escrowpool/backend/pkg/testutil"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestPoolDomain(ctx context.Context) PoolDomain {
	accountRepo := repository.NewAccountRepository()
	ledger := escrow.NewLedgerTransferrer(accountRepo, repository.NewTransferRepository())

	return NewPoolDomain(
		repository.NewPoolRepository(),
		repository.NewMembershipRepository(),
		repository.NewClaimRepository(),
		accountRepo,
		repository.NewUserRepository(),
		escrow.NewGuard(),
		escrow.NewVerifier(xcontext.Configs(ctx).Escrow.TrustedSignerAddress),
		ledger,
		nil,
	)
}

func signClaim(amount uint64, recipient, poolID string) string {
	hash, err := escrow.ClaimMessage{Amount: amount, Recipient: recipient, PoolID: poolID}.Hash()
	if err != nil {
		panic(err)
	}

	return testutil.Sign(testutil.TrustedSigner(), hash)
}

func asUser(ctx context.Context, user *entity.User) context.Context {
	return xcontext.WithRequestUserID(ctx, user.ID)
}

func requireErrCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, code, errx.Code)
}

func TestPoolDomain_CreatePool(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPoolDomain(ctx)
	owner, _ := testutil.SampleUser(ctx, nil)

	resp, err := d.CreatePool(asUser(ctx, &owner), &model.CreatePoolRequest{
		Handle:   "season-1",
		FeeModel: "fixed",
		EntryFee: 100,
	})
	require.NoError(t, err)
	require.Equal(t, "season-1", resp.Pool.Handle)
	require.Equal(t, owner.ID, resp.Pool.OwnerID)
	require.True(t, strings.HasPrefix(resp.Pool.EscrowAddress, "pool:"))

	// The escrow account backs the pool from the start.
	require.Zero(t, testutil.Balance(ctx, resp.Pool.EscrowAddress))

	t.Run("duplicated handle", func(t *testing.T) {
		_, err := d.CreatePool(asUser(ctx, &owner), &model.CreatePoolRequest{
			Handle:   "season-1",
			FeeModel: "fixed",
			EntryFee: 100,
		})
		requireErrCode(t, err, errorx.PoolAlreadyExists)
	})

	t.Run("unknown fee model", func(t *testing.T) {
		_, err := d.CreatePool(asUser(ctx, &owner), &model.CreatePoolRequest{
			Handle:   "season-2",
			FeeModel: "progressive",
			EntryFee: 100,
		})
		requireErrCode(t, err, errorx.BadRequest)
	})

	t.Run("zero entry fee", func(t *testing.T) {
		_, err := d.CreatePool(asUser(ctx, &owner), &model.CreatePoolRequest{
			Handle:   "season-2",
			FeeModel: "fixed",
		})
		requireErrCode(t, err, errorx.InvalidFee)
	})

	t.Run("free pool allows zero fee", func(t *testing.T) {
		_, err := d.CreatePool(asUser(ctx, &owner), &model.CreatePoolRequest{
			Handle:   "season-free",
			FeeModel: "none",
		})
		require.NoError(t, err)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := d.CreatePool(ctx, &model.CreatePoolRequest{
			Handle:   "season-3",
			FeeModel: "fixed",
			EntryFee: 100,
		})
		requireErrCode(t, err, errorx.Unauthenticated)
	})
}

func TestPoolDomain_JoinFixedPool(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPoolDomain(ctx)

	owner, _ := testutil.SampleUser(ctx, nil)
	player, _ := testutil.SampleUser(ctx, nil)
	pool := testutil.SamplePool(ctx, &owner, &entity.Pool{EntryFee: 100})
	testutil.FundAccount(ctx, player.Address, 300)

	_, err := d.Join(asUser(ctx, &player), &model.JoinPoolRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)

	require.EqualValues(t, 200, testutil.Balance(ctx, player.Address))
	require.EqualValues(t, 100, testutil.Balance(ctx, pool.EscrowAddress))

	balance, err := d.GetPoolBalance(ctx, &model.GetPoolBalanceRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)
	require.EqualValues(t, 100, balance.Balance)

	players, err := d.GetTotalPlayers(ctx, &model.GetTotalPlayersRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)
	require.Equal(t, 1, players.TotalPlayers)

	joined, err := d.HasPlayerJoined(ctx, &model.HasPlayerJoinedRequest{
		PoolHandle: pool.Handle, UserID: player.ID,
	})
	require.NoError(t, err)
	require.True(t, joined.Joined)

	paid, err := d.HasPaidEntryFee(ctx, &model.HasPaidEntryFeeRequest{
		PoolHandle: pool.Handle, UserID: player.ID,
	})
	require.NoError(t, err)
	require.True(t, paid.Paid)

	t.Run("joining twice", func(t *testing.T) {
		_, err := d.Join(asUser(ctx, &player), &model.JoinPoolRequest{PoolHandle: pool.Handle})
		requireErrCode(t, err, errorx.AlreadyJoined)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		poor, _ := testutil.SampleUser(ctx, nil)
		_, err := d.Join(asUser(ctx, &poor), &model.JoinPoolRequest{PoolHandle: pool.Handle})
		requireErrCode(t, err, errorx.InsufficientFunds)
	})

	t.Run("unknown pool", func(t *testing.T) {
		_, err := d.Join(asUser(ctx, &player), &model.JoinPoolRequest{PoolHandle: "nowhere"})
		requireErrCode(t, err, errorx.PoolNotFound)
	})
}

func TestPoolDomain_SponsoredPool(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPoolDomain(ctx)

	sponsor, _ := testutil.SampleUser(ctx, nil)
	player, _ := testutil.SampleUser(ctx, nil)
	pool := testutil.SamplePool(ctx, &sponsor, &entity.Pool{
		FeeModel: entity.PoolFeeModelSponsored,
		EntryFee: 5_000_000,
	})
	testutil.FundAccount(ctx, sponsor.Address, 5_000_000)

	// Nobody can join until the sponsor seeds the pool.
	_, err := d.Join(asUser(ctx, &player), &model.JoinPoolRequest{PoolHandle: pool.Handle})
	requireErrCode(t, err, errorx.NotJoinable)

	_, err = d.Join(asUser(ctx, &sponsor), &model.JoinPoolRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)

	balance, err := d.GetPoolBalance(ctx, &model.GetPoolBalanceRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)
	require.EqualValues(t, 5_000_000, balance.Balance)

	players, err := d.GetTotalPlayers(ctx, &model.GetTotalPlayersRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)
	require.Equal(t, 1, players.TotalPlayers)

	// Players join for free once the pool is sponsored.
	_, err = d.Join(asUser(ctx, &player), &model.JoinPoolRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)
	require.Zero(t, testutil.Balance(ctx, player.Address))

	// The sponsor cannot abandon a pool that still has players.
	leaveSig := signClaim(5_000_000, sponsor.Address, pool.ID)
	_, err = d.Leave(asUser(ctx, &sponsor), &model.LeavePoolRequest{
		PoolHandle: pool.Handle, Signature: leaveSig,
	})
	requireErrCode(t, err, errorx.PoolNotEmpty)

	t.Run("claim takes the platform fee once", func(t *testing.T) {
		resp, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     1_000_000,
			Signature:  signClaim(1_000_000, player.Address, pool.ID),
		})
		require.NoError(t, err)
		require.EqualValues(t, 20_000, resp.Fee)
		require.EqualValues(t, 980_000, resp.Net)

		require.EqualValues(t, 980_000, testutil.Balance(ctx, player.Address))
		feeWallet := xcontext.Configs(ctx).Escrow.FeeWalletAddress
		require.EqualValues(t, 20_000, testutil.Balance(ctx, feeWallet))

		balance, err := d.GetPoolBalance(ctx, &model.GetPoolBalanceRequest{PoolHandle: pool.Handle})
		require.NoError(t, err)
		require.EqualValues(t, 4_000_000, balance.Balance)

		claimed, err := d.HasClaimedReward(ctx, &model.HasClaimedRewardRequest{
			PoolHandle: pool.Handle, UserID: player.ID,
		})
		require.NoError(t, err)
		require.True(t, claimed.Claimed)
		require.EqualValues(t, 1_000_000, claimed.Amount)

		feePaid, err := d.HasPaidPlatformFee(ctx, &model.HasPaidPlatformFeeRequest{UserID: player.ID})
		require.NoError(t, err)
		require.True(t, feePaid.Paid)
	})

	t.Run("second claim is rejected even with a fresh signature", func(t *testing.T) {
		_, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     500,
			Signature:  signClaim(500, player.Address, pool.ID),
		})
		requireErrCode(t, err, errorx.RewardAlreadyClaimed)
	})
}

func TestPoolDomain_ClaimRewardSignature(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPoolDomain(ctx)

	owner, _ := testutil.SampleUser(ctx, nil)
	player, _ := testutil.SampleUser(ctx, nil)
	other, _ := testutil.SampleUser(ctx, nil)
	pool := testutil.SamplePool(ctx, &owner, &entity.Pool{Balance: 10_000})
	otherPool := testutil.SamplePool(ctx, &owner, &entity.Pool{Balance: 10_000})

	signature := signClaim(1_000, player.Address, pool.ID)

	t.Run("another recipient cannot replay the signature", func(t *testing.T) {
		_, err := d.ClaimReward(asUser(ctx, &other), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     1_000,
			Signature:  signature,
		})
		requireErrCode(t, err, errorx.InvalidSignature)
	})

	t.Run("another amount is rejected", func(t *testing.T) {
		_, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     2_000,
			Signature:  signature,
		})
		requireErrCode(t, err, errorx.InvalidSignature)
	})

	t.Run("another pool is rejected", func(t *testing.T) {
		_, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: otherPool.Handle,
			Amount:     1_000,
			Signature:  signature,
		})
		requireErrCode(t, err, errorx.InvalidSignature)
	})

	t.Run("all zero signature", func(t *testing.T) {
		_, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     1_000,
			Signature:  "0x" + strings.Repeat("0", 130),
		})
		requireErrCode(t, err, errorx.InvalidSignature)
	})

	t.Run("malformed signature", func(t *testing.T) {
		_, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     1_000,
			Signature:  "0xdeadbeef",
		})
		requireErrCode(t, err, errorx.InvalidSignature)
	})

	t.Run("reward above pool balance", func(t *testing.T) {
		_, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     20_000,
			Signature:  signClaim(20_000, player.Address, pool.ID),
		})
		requireErrCode(t, err, errorx.MaximumRewardExceeded)
	})

	t.Run("zero reward", func(t *testing.T) {
		_, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     0,
			Signature:  signClaim(0, player.Address, pool.ID),
		})
		requireErrCode(t, err, errorx.InvalidAmount)
	})

	t.Run("valid claim still goes through", func(t *testing.T) {
		resp, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     1_000,
			Signature:  signature,
		})
		require.NoError(t, err)
		require.EqualValues(t, 20, resp.Fee)
		require.EqualValues(t, 980, resp.Net)
	})
}

func TestPoolDomain_FeeChargedOnlyOnFirstClaim(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPoolDomain(ctx)

	owner, _ := testutil.SampleUser(ctx, nil)
	player, _ := testutil.SampleUser(ctx, nil)
	first := testutil.SamplePool(ctx, &owner, &entity.Pool{Balance: 10_000})
	second := testutil.SamplePool(ctx, &owner, &entity.Pool{Balance: 10_000})

	resp, err := d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
		PoolHandle: first.Handle,
		Amount:     1_000,
		Signature:  signClaim(1_000, player.Address, first.ID),
	})
	require.NoError(t, err)
	require.EqualValues(t, 20, resp.Fee)
	require.EqualValues(t, 980, resp.Net)

	resp, err = d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
		PoolHandle: second.Handle,
		Amount:     1_000,
		Signature:  signClaim(1_000, player.Address, second.ID),
	})
	require.NoError(t, err)
	require.Zero(t, resp.Fee)
	require.EqualValues(t, 1_000, resp.Net)

	require.EqualValues(t, 980+1_000, testutil.Balance(ctx, player.Address))
}

func TestPoolDomain_Leave(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPoolDomain(ctx)

	owner, _ := testutil.SampleUser(ctx, nil)
	player, _ := testutil.SampleUser(ctx, nil)
	pool := testutil.SamplePool(ctx, &owner, &entity.Pool{EntryFee: 100})
	testutil.FundAccount(ctx, player.Address, 100)

	_, err := d.Join(asUser(ctx, &player), &model.JoinPoolRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)

	t.Run("without authorization", func(t *testing.T) {
		_, err := d.Leave(asUser(ctx, &player), &model.LeavePoolRequest{
			PoolHandle: pool.Handle,
			Signature:  "0x" + strings.Repeat("0", 130),
		})
		requireErrCode(t, err, errorx.InvalidSignature)
	})

	t.Run("refunds the contribution", func(t *testing.T) {
		resp, err := d.Leave(asUser(ctx, &player), &model.LeavePoolRequest{
			PoolHandle: pool.Handle,
			Signature:  signClaim(100, player.Address, pool.ID),
		})
		require.NoError(t, err)
		require.EqualValues(t, 100, resp.RefundAmount)
		require.EqualValues(t, 100, testutil.Balance(ctx, player.Address))

		players, err := d.GetTotalPlayers(ctx, &model.GetTotalPlayersRequest{PoolHandle: pool.Handle})
		require.NoError(t, err)
		require.Zero(t, players.TotalPlayers)
	})

	t.Run("without membership", func(t *testing.T) {
		_, err := d.Leave(asUser(ctx, &player), &model.LeavePoolRequest{
			PoolHandle: pool.Handle,
			Signature:  signClaim(100, player.Address, pool.ID),
		})
		requireErrCode(t, err, errorx.NotJoined)
	})
}

func TestPoolDomain_Kick(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPoolDomain(ctx)

	owner, _ := testutil.SampleUser(ctx, nil)
	player, _ := testutil.SampleUser(ctx, nil)
	pool := testutil.SamplePool(ctx, &owner, &entity.Pool{EntryFee: 100})
	testutil.FundAccount(ctx, player.Address, 100)

	_, err := d.Join(asUser(ctx, &player), &model.JoinPoolRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)

	t.Run("only the owner can kick", func(t *testing.T) {
		_, err := d.Kick(asUser(ctx, &player), &model.KickPlayerRequest{
			PoolHandle: pool.Handle, UserID: player.ID,
		})
		requireErrCode(t, err, errorx.Unauthorized)
	})

	t.Run("the owner cannot kick themselves", func(t *testing.T) {
		_, err := d.Kick(asUser(ctx, &owner), &model.KickPlayerRequest{
			PoolHandle: pool.Handle, UserID: owner.ID,
		})
		requireErrCode(t, err, errorx.Unauthorized)
	})

	t.Run("kicking refunds the entry fee", func(t *testing.T) {
		_, err := d.Kick(asUser(ctx, &owner), &model.KickPlayerRequest{
			PoolHandle: pool.Handle, UserID: player.ID,
		})
		require.NoError(t, err)
		require.EqualValues(t, 100, testutil.Balance(ctx, player.Address))

		joined, err := d.HasPlayerJoined(ctx, &model.HasPlayerJoinedRequest{
			PoolHandle: pool.Handle, UserID: player.ID,
		})
		require.NoError(t, err)
		require.False(t, joined.Joined)
	})

	t.Run("kicking a stranger", func(t *testing.T) {
		_, err := d.Kick(asUser(ctx, &owner), &model.KickPlayerRequest{
			PoolHandle: pool.Handle, UserID: player.ID,
		})
		requireErrCode(t, err, errorx.NotJoined)
	})

	t.Run("kicking after a claim", func(t *testing.T) {
		testutil.FundAccount(ctx, player.Address, 100)
		_, err := d.Join(asUser(ctx, &player), &model.JoinPoolRequest{PoolHandle: pool.Handle})
		require.NoError(t, err)

		_, err = d.ClaimReward(asUser(ctx, &player), &model.ClaimRewardRequest{
			PoolHandle: pool.Handle,
			Amount:     100,
			Signature:  signClaim(100, player.Address, pool.ID),
		})
		require.NoError(t, err)

		_, err = d.Kick(asUser(ctx, &owner), &model.KickPlayerRequest{
			PoolHandle: pool.Handle, UserID: player.ID,
		})
		requireErrCode(t, err, errorx.RewardAlreadyClaimed)
	})
}

func TestPoolDomain_FundAndWithdraw(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestPoolDomain(ctx)

	owner, _ := testutil.SampleUser(ctx, nil)
	player, _ := testutil.SampleUser(ctx, nil)
	pool := testutil.SamplePool(ctx, &owner, &entity.Pool{FeeModel: entity.PoolFeeModelNone})
	testutil.FundAccount(ctx, owner.Address, 1_000)

	_, err := d.Fund(asUser(ctx, &owner), &model.FundPoolRequest{
		PoolHandle: pool.Handle, Amount: 600,
	})
	require.NoError(t, err)

	balance, err := d.GetPoolBalance(ctx, &model.GetPoolBalanceRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)
	require.EqualValues(t, 600, balance.Balance)

	resp, err := d.GetPool(ctx, &model.GetPoolRequest{PoolHandle: pool.Handle})
	require.NoError(t, err)
	require.True(t, resp.Pool.Sponsored)

	t.Run("zero contribution", func(t *testing.T) {
		_, err := d.Fund(asUser(ctx, &owner), &model.FundPoolRequest{PoolHandle: pool.Handle})
		requireErrCode(t, err, errorx.InvalidAmount)
	})

	t.Run("only the owner can withdraw", func(t *testing.T) {
		_, err := d.Withdraw(asUser(ctx, &player), &model.WithdrawPoolRequest{
			PoolHandle: pool.Handle, Amount: 100,
		})
		requireErrCode(t, err, errorx.Unauthorized)
	})

	t.Run("withdrawal above balance", func(t *testing.T) {
		_, err := d.Withdraw(asUser(ctx, &owner), &model.WithdrawPoolRequest{
			PoolHandle: pool.Handle, Amount: 10_000,
		})
		requireErrCode(t, err, errorx.InsufficientFunds)
	})

	t.Run("withdrawal returns funds to the owner", func(t *testing.T) {
		_, err := d.Withdraw(asUser(ctx, &owner), &model.WithdrawPoolRequest{
			PoolHandle: pool.Handle, Amount: 600,
		})
		require.NoError(t, err)
		require.EqualValues(t, 1_000, testutil.Balance(ctx, owner.Address))
	})
}
