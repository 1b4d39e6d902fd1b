package eth

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/escrow"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// payoutReasons are the movements that leave the escrow and must also be
// settled on chain. Internal moves between ledger rows stay off chain since
// the operator wallet keeps custody of the pooled tokens.
var payoutReasons = map[entity.TransferReasonType]bool{
	entity.TransferReasonRefund:       true,
	entity.TransferReasonReward:       true,
	entity.TransferReasonDepositClaim: true,
	entity.TransferReasonWithdrawal:   true,
}

// TokenTransferrerFactory builds per-token transferrers that settle payouts
// through ERC-20 transfers signed by the operator key, while mirroring every
// movement in the ledger so pool balances stay authoritative.
type TokenTransferrerFactory struct {
	client EthClient
	ledger escrow.Transferrer

	operatorKey  *ecdsa.PrivateKey
	operatorAddr common.Address
}

func NewTokenTransferrerFactory(
	client EthClient, ledger escrow.Transferrer, privateKeyHex string,
) (*TokenTransferrerFactory, error) {
	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, err
	}

	return &TokenTransferrerFactory{
		client:       client,
		ledger:       ledger,
		operatorKey:  key,
		operatorAddr: ethcrypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (f *TokenTransferrerFactory) Transferrer(tokenAddress string) escrow.Transferrer {
	return &tokenTransferrer{
		factory: f,
		token:   common.HexToAddress(tokenAddress),
	}
}

type tokenTransferrer struct {
	factory *TokenTransferrerFactory
	token   common.Address
}

func (t *tokenTransferrer) Transfer(
	ctx context.Context, from, to string, amount uint64, reason entity.TransferReasonType,
) error {
	if amount == 0 {
		return nil
	}

	if err := t.factory.ledger.Transfer(ctx, from, to, amount, reason); err != nil {
		return err
	}

	if !payoutReasons[reason] || !common.IsHexAddress(to) {
		return nil
	}

	tx, err := t.factory.client.GetSignedTransferTx(
		ctx,
		t.factory.operatorKey,
		t.factory.operatorAddr,
		t.token,
		common.HexToAddress(to),
		new(big.Int).SetUint64(amount),
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sign token transfer: %v", err)
		return err
	}

	if err := t.factory.client.SendTransaction(ctx, tx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot broadcast token transfer: %v", err)
		return err
	}

	return nil
}
