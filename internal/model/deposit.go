package model

type Deposit struct {
	ID          int64  `json:"id"`
	PoolHandle  string `json:"pool_handle"`
	UserID      string `json:"user_id"`
	Amount      uint64 `json:"amount"`
	Valid       bool   `json:"valid"`
	DepositedAt int64  `json:"deposited_at"`
}

type CreateDepositRequest struct {
	PoolHandle string `json:"pool_handle"`
	Amount     uint64 `json:"amount"`
}

type CreateDepositResponse struct {
	DepositID int64 `json:"deposit_id"`
}

type ClaimDepositRequest struct {
	DepositID int64  `json:"deposit_id"`
	Amount    uint64 `json:"amount"`
	Signature string `json:"signature"`
}

type ClaimDepositResponse struct{}

type MarkDepositLostRequest struct {
	UserID    string `json:"user_id"`
	DepositID int64  `json:"deposit_id"`
}

type MarkDepositLostResponse struct{}

type GetDepositRequest struct {
	DepositID int64 `json:"deposit_id" form:"deposit_id"`
}

type GetDepositResponse struct {
	Deposit Deposit `json:"deposit"`
}

type GetMyDepositsRequest struct{}

type GetMyDepositsResponse struct {
	Deposits []Deposit `json:"deposits"`
}
