package entity

import (
	"github.com/escrowpool/backend/pkg/enum"
)

type PoolFeeModelType string

var (
	// PoolFeeModelFixed charges every joining player the entry fee and
	// refunds it when the player is kicked.
	PoolFeeModelFixed = enum.New(PoolFeeModelType("fixed"))

	// PoolFeeModelSponsored is pre-funded by the pool owner; other players
	// join for free once the sponsor is in.
	PoolFeeModelSponsored = enum.New(PoolFeeModelType("sponsored"))

	// PoolFeeModelNone collects nothing on join; the pool is funded
	// exclusively through Fund.
	PoolFeeModelNone = enum.New(PoolFeeModelType("none"))
)

type Pool struct {
	Base

	// Handle is the client-facing pool key.
	Handle string `gorm:"uniqueIndex"`

	OwnerID string
	Owner   User `gorm:"foreignKey:OwnerID"`

	FeeModel PoolFeeModelType

	// EntryFee is the per-player fee for fixed pools, or the sponsor
	// contribution for sponsored pools.
	EntryFee uint64

	// TokenAddress selects the fungible-token variant when non-empty;
	// transfers then go through the on-chain token service instead of the
	// native ledger.
	TokenAddress string

	// EscrowAddress is the ledger account holding this pool's funds.
	EscrowAddress string `gorm:"uniqueIndex"`

	// Balance mirrors the escrow account in lock-step with every transfer.
	Balance uint64

	TotalPlayers int
	Sponsored    bool
}

// RefundsOnKick reports whether kicking a player returns their entry fee.
func (p *Pool) RefundsOnKick() bool {
	return p.FeeModel == PoolFeeModelFixed
}
