package escrow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleRecipient = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"

func int64Ptr(v int64) *int64 { return &v }

func TestClaimMessage_Hash(t *testing.T) {
	base := ClaimMessage{Amount: 1_000_000, Recipient: sampleRecipient, PoolID: "pool-1"}
	baseHash, err := base.Hash()
	require.NoError(t, err)
	require.Len(t, baseHash, 32)

	t.Run("deterministic", func(t *testing.T) {
		again, err := base.Hash()
		require.NoError(t, err)
		require.Equal(t, baseHash, again)
	})

	t.Run("amount is bound", func(t *testing.T) {
		changed := base
		changed.Amount = 1_000_001
		hash, err := changed.Hash()
		require.NoError(t, err)
		require.NotEqual(t, baseHash, hash)
	})

	t.Run("recipient is bound", func(t *testing.T) {
		changed := base
		changed.Recipient = "0x2546BcD3c84621e976D8185a91A922aE77ECEc30"
		hash, err := changed.Hash()
		require.NoError(t, err)
		require.NotEqual(t, baseHash, hash)
	})

	t.Run("pool is bound", func(t *testing.T) {
		changed := base
		changed.PoolID = "pool-2"
		hash, err := changed.Hash()
		require.NoError(t, err)
		require.NotEqual(t, baseHash, hash)
	})

	t.Run("case insensitive recipient", func(t *testing.T) {
		changed := base
		changed.Recipient = "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"
		hash, err := changed.Hash()
		require.NoError(t, err)
		require.Equal(t, baseHash, hash)
	})

	t.Run("invalid recipient", func(t *testing.T) {
		changed := base
		changed.Recipient = "not-an-address"
		_, err := changed.Hash()
		require.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestClaimMessage_HashDepositClaims(t *testing.T) {
	deposit := ClaimMessage{Amount: 500, Recipient: sampleRecipient, DepositID: int64Ptr(42)}
	depositHash, err := deposit.Hash()
	require.NoError(t, err)

	t.Run("deposit id is bound", func(t *testing.T) {
		changed := deposit
		changed.DepositID = int64Ptr(43)
		hash, err := changed.Hash()
		require.NoError(t, err)
		require.NotEqual(t, depositHash, hash)
	})

	t.Run("distinct from pool claims", func(t *testing.T) {
		pool := ClaimMessage{Amount: 500, Recipient: sampleRecipient, PoolID: "42"}
		hash, err := pool.Hash()
		require.NoError(t, err)
		require.NotEqual(t, depositHash, hash)
	})
}
