package entity

import (
	"time"

	"gorm.io/gorm"
)

// Deposit is a single funded entry of the multi-deposit variant. Its primary
// key is a snowflake id, so ids increase monotonically across the process.
type Deposit struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	PoolID string `gorm:"index"`
	Pool   Pool   `gorm:"foreignKey:PoolID"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Amount uint64

	// Valid flips to false exactly once, on claim or administrative loss,
	// and never back.
	Valid bool

	// DepositedAt is the sequence ordinal at deposit time.
	DepositedAt int64
}

// ClaimedDeposit records a successful deposit claim. Like ClaimRecord it is
// append-only.
type ClaimedDeposit struct {
	Base

	DepositID int64   `gorm:"uniqueIndex"`
	Deposit   Deposit `gorm:"foreignKey:DepositID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	// Amount is the signed payout, which may differ from the deposited
	// amount since outcomes are computed off-chain.
	Amount uint64
}
