package testutil

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/escrowpool/backend/internal/entity"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/pkg/reflectutil"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// SampleUser creates a user with its own fresh wallet key. Non-zero fields
// of init overwrite the generated values. The key is returned so tests can
// sign things on the user's behalf.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, *ecdsa.PrivateKey) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		panic(err)
	}

	sample := &entity.User{
		Base:    entity.Base{ID: uuid.NewString()},
		Address: ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		Name:    uuid.NewString(),
	}

	if init != nil {
		reflectutil.OverwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample, key
}

// SamplePool creates a pool owned by owner, together with its escrow
// account. Non-zero fields of init overwrite the generated values.
func SamplePool(ctx context.Context, owner *entity.User, init *entity.Pool) entity.Pool {
	id := uuid.NewString()
	sample := &entity.Pool{
		Base:          entity.Base{ID: id},
		Handle:        uuid.NewString(),
		OwnerID:       owner.ID,
		FeeModel:      entity.PoolFeeModelFixed,
		EntryFee:      100,
		EscrowAddress: fmt.Sprintf("pool:%s", id),
	}

	if init != nil {
		reflectutil.OverwriteFields(sample, *init)
	}

	if err := repository.NewPoolRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	accountRepo := repository.NewAccountRepository()
	if err := accountRepo.Create(ctx, &entity.Account{
		Base:    entity.Base{ID: uuid.NewString()},
		Address: sample.EscrowAddress,
		Balance: sample.Balance,
	}); err != nil {
		panic(err)
	}

	return *sample
}

// FundAccount credits an address out of thin air, standing in for an
// on-ramp deposit.
func FundAccount(ctx context.Context, address string, amount uint64) {
	if err := repository.NewAccountRepository().Credit(ctx, address, amount); err != nil {
		panic(err)
	}
}

// Balance reads the current ledger balance of an address. A missing account
// row counts as zero.
func Balance(ctx context.Context, address string) uint64 {
	account, err := repository.NewAccountRepository().GetByAddress(ctx, address)
	if err != nil {
		return 0
	}

	return account.Balance
}

// Sign produces the hex signature of hash under key, in the 65-byte format
// claim verification expects.
func Sign(key *ecdsa.PrivateKey, hash []byte) string {
	signature, err := ethcrypto.Sign(hash, key)
	if err != nil {
		panic(err)
	}

	return hexutil.Encode(signature)
}

