package escrow_test

import (
	"testing"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/escrow"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestLedgerTransferrer(t *testing.T) {
	ctx := testutil.MockContext()
	transferRepo := repository.NewTransferRepository()
	ledger := escrow.NewLedgerTransferrer(repository.NewAccountRepository(), transferRepo)

	testutil.FundAccount(ctx, "alice", 1_000)

	err := ledger.Transfer(ctx, "alice", "bob", 400, entity.TransferReasonReward)
	require.NoError(t, err)
	require.EqualValues(t, 600, testutil.Balance(ctx, "alice"))
	require.EqualValues(t, 400, testutil.Balance(ctx, "bob"))

	t.Run("records an audit row", func(t *testing.T) {
		transfers, err := transferRepo.GetByAddress(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, transfers, 1)
		require.Equal(t, "alice", transfers[0].FromAddress)
		require.EqualValues(t, 400, transfers[0].Amount)
		require.Equal(t, entity.TransferReasonReward, transfers[0].Reason)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		err := ledger.Transfer(ctx, "alice", "bob", 10_000, entity.TransferReasonReward)
		require.ErrorIs(t, err, escrow.ErrInsufficientBalance)
		require.EqualValues(t, 600, testutil.Balance(ctx, "alice"))
		require.EqualValues(t, 400, testutil.Balance(ctx, "bob"))
	})

	t.Run("missing account", func(t *testing.T) {
		err := ledger.Transfer(ctx, "nobody", "bob", 1, entity.TransferReasonReward)
		require.ErrorIs(t, err, escrow.ErrInsufficientBalance)
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		err := ledger.Transfer(ctx, "alice", "bob", 0, entity.TransferReasonReward)
		require.NoError(t, err)

		transfers, err := transferRepo.GetByAddress(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, transfers, 1)
	})
}
