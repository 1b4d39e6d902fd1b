package model

type Pool struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	OwnerID       string `json:"owner_id"`
	FeeModel      string `json:"fee_model"`
	EntryFee      uint64 `json:"entry_fee"`
	TokenAddress  string `json:"token_address,omitempty"`
	EscrowAddress string `json:"escrow_address"`
	Balance       uint64 `json:"balance"`
	TotalPlayers  int    `json:"total_players"`
	Sponsored     bool   `json:"sponsored"`
}

type CreatePoolRequest struct {
	Handle       string `json:"handle"`
	FeeModel     string `json:"fee_model"`
	EntryFee     uint64 `json:"entry_fee"`
	TokenAddress string `json:"token_address"`
}

type CreatePoolResponse struct {
	Pool Pool `json:"pool"`
}

type JoinPoolRequest struct {
	PoolHandle string `json:"pool_handle"`
}

type JoinPoolResponse struct{}

type LeavePoolRequest struct {
	PoolHandle string `json:"pool_handle"`
	Signature  string `json:"signature"`
}

type LeavePoolResponse struct {
	RefundAmount uint64 `json:"refund_amount"`
}

type KickPlayerRequest struct {
	PoolHandle string `json:"pool_handle"`
	UserID     string `json:"user_id"`
}

type KickPlayerResponse struct{}

type ClaimRewardRequest struct {
	PoolHandle string `json:"pool_handle"`
	Amount     uint64 `json:"amount"`
	Signature  string `json:"signature"`
}

type ClaimRewardResponse struct {
	Fee uint64 `json:"fee"`
	Net uint64 `json:"net"`
}

type FundPoolRequest struct {
	PoolHandle string `json:"pool_handle"`
	Amount     uint64 `json:"amount"`
}

type FundPoolResponse struct{}

type WithdrawPoolRequest struct {
	PoolHandle string `json:"pool_handle"`
	Amount     uint64 `json:"amount"`
}

type WithdrawPoolResponse struct{}

type GetPoolRequest struct {
	PoolHandle string `json:"pool_handle" form:"pool_handle"`
}

type GetPoolResponse struct {
	Pool Pool `json:"pool"`
}

type GetTotalPlayersRequest struct {
	PoolHandle string `json:"pool_handle" form:"pool_handle"`
}

type GetTotalPlayersResponse struct {
	TotalPlayers int `json:"total_players"`
}

type GetPoolBalanceRequest struct {
	PoolHandle string `json:"pool_handle" form:"pool_handle"`
}

type GetPoolBalanceResponse struct {
	Balance uint64 `json:"balance"`
}

type HasPlayerJoinedRequest struct {
	PoolHandle string `json:"pool_handle" form:"pool_handle"`
	UserID     string `json:"user_id" form:"user_id"`
}

type HasPlayerJoinedResponse struct {
	Joined bool `json:"joined"`
}

type HasClaimedRewardRequest struct {
	PoolHandle string `json:"pool_handle" form:"pool_handle"`
	UserID     string `json:"user_id" form:"user_id"`
}

type HasClaimedRewardResponse struct {
	Claimed bool   `json:"claimed"`
	Amount  uint64 `json:"amount"`
}

type HasPaidEntryFeeRequest struct {
	PoolHandle string `json:"pool_handle" form:"pool_handle"`
	UserID     string `json:"user_id" form:"user_id"`
}

type HasPaidEntryFeeResponse struct {
	Paid bool `json:"paid"`
}

type HasPaidPlatformFeeRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type HasPaidPlatformFeeResponse struct {
	Paid bool `json:"paid"`
}
