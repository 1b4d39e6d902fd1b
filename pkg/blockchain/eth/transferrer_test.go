package eth_test

import (
	"math/big"
	"testing"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/escrow"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/mocks"
	"github.com/escrowpool/backend/pkg/blockchain/eth"
	"github.com/escrowpool/backend/pkg/testutil"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	tokenAddr  = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	walletAddr = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"

	operatorKey = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

func newTokenTransferrer(t *testing.T, client *mocks.EthClient) escrow.Transferrer {
	ledger := escrow.NewLedgerTransferrer(
		repository.NewAccountRepository(), repository.NewTransferRepository())

	factory, err := eth.NewTokenTransferrerFactory(client, ledger, operatorKey)
	require.NoError(t, err)

	return factory.Transferrer(tokenAddr)
}

func TestTokenTransferrer_PayoutGoesOnChain(t *testing.T) {
	ctx := testutil.MockContext()
	client := &mocks.EthClient{}
	transferrer := newTokenTransferrer(t, client)

	signedTx := ethtypes.NewTransaction(
		0, common.HexToAddress(tokenAddr), big.NewInt(0), 21000, big.NewInt(1), nil)
	client.On("GetSignedTransferTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(signedTx, nil)
	client.On("SendTransaction", mock.Anything, signedTx).Return(nil)

	testutil.FundAccount(ctx, "pool:1", 1_000)
	err := transferrer.Transfer(ctx, "pool:1", walletAddr, 400, entity.TransferReasonReward)
	require.NoError(t, err)

	// The ledger mirrors the movement.
	require.EqualValues(t, 600, testutil.Balance(ctx, "pool:1"))
	require.EqualValues(t, 400, testutil.Balance(ctx, walletAddr))

	client.AssertExpectations(t)
}

func TestTokenTransferrer_InternalMoveStaysOffChain(t *testing.T) {
	ctx := testutil.MockContext()
	client := &mocks.EthClient{}
	transferrer := newTokenTransferrer(t, client)

	testutil.FundAccount(ctx, walletAddr, 1_000)
	err := transferrer.Transfer(ctx, walletAddr, "pool:1", 400, entity.TransferReasonEntryFee)
	require.NoError(t, err)
	require.EqualValues(t, 400, testutil.Balance(ctx, "pool:1"))

	client.AssertNotCalled(t, "GetSignedTransferTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
}

func TestTokenTransferrer_InsufficientBalanceSkipsChain(t *testing.T) {
	ctx := testutil.MockContext()
	client := &mocks.EthClient{}
	transferrer := newTokenTransferrer(t, client)

	err := transferrer.Transfer(ctx, "pool:1", walletAddr, 400, entity.TransferReasonReward)
	require.ErrorIs(t, err, escrow.ErrInsufficientBalance)

	client.AssertNotCalled(t, "SendTransaction", mock.Anything, mock.Anything)
}
