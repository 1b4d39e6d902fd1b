package entity

import (
	"github.com/escrowpool/backend/pkg/enum"
)

type TransferReasonType string

var (
	TransferReasonEntryFee     = enum.New(TransferReasonType("entry_fee"))
	TransferReasonSponsorship  = enum.New(TransferReasonType("sponsorship"))
	TransferReasonRefund       = enum.New(TransferReasonType("refund"))
	TransferReasonPlatformFee  = enum.New(TransferReasonType("platform_fee"))
	TransferReasonReward       = enum.New(TransferReasonType("reward"))
	TransferReasonDeposit      = enum.New(TransferReasonType("deposit"))
	TransferReasonDepositClaim = enum.New(TransferReasonType("deposit_claim"))
	TransferReasonWithdrawal   = enum.New(TransferReasonType("withdrawal"))
)

// Transfer is the append-only audit log of ledger movements.
type Transfer struct {
	Base

	FromAddress string `gorm:"index"`
	ToAddress   string `gorm:"index"`
	Amount      uint64
	Reason      TransferReasonType
}
