package escrow

import (
	"context"
	"errors"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/google/uuid"
)

// ErrInsufficientBalance is returned when the source account cannot cover
// the requested amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Transferrer is the account/transfer collaborator. The native-currency
// ledger and the fungible-token service implement the same contract: the
// call either completes or fails with no partial effect.
type Transferrer interface {
	Transfer(ctx context.Context, from, to string, amount uint64, reason entity.TransferReasonType) error
}

// TokenTransferrerFactory builds a Transferrer bound to a fungible-token
// contract, selected per pool by its token address.
type TokenTransferrerFactory interface {
	Transferrer(tokenAddress string) Transferrer
}

// ledgerTransferrer moves funds between rows of the accounts table. The
// debit is a guarded update, so the balance check and the deduction are one
// statement.
type ledgerTransferrer struct {
	accountRepo  repository.AccountRepository
	transferRepo repository.TransferRepository
}

func NewLedgerTransferrer(
	accountRepo repository.AccountRepository,
	transferRepo repository.TransferRepository,
) *ledgerTransferrer {
	return &ledgerTransferrer{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
	}
}

func (t *ledgerTransferrer) Transfer(
	ctx context.Context, from, to string, amount uint64, reason entity.TransferReasonType,
) error {
	if amount == 0 {
		return nil
	}

	if err := t.accountRepo.Debit(ctx, from, amount); err != nil {
		if errors.Is(err, repository.ErrNotEnoughBalance) {
			return ErrInsufficientBalance
		}

		return err
	}

	if err := t.accountRepo.Credit(ctx, to, amount); err != nil {
		return err
	}

	return t.transferRepo.Create(ctx, &entity.Transfer{
		Base:        entity.Base{ID: uuid.NewString()},
		FromAddress: from,
		ToAddress:   to,
		Amount:      amount,
		Reason:      reason,
	})
}
