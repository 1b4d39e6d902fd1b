package entity

// ClaimRecord is the anti-double-claim source of truth. It is written exactly
// once, on the first successful reward claim, and never updated or deleted.
type ClaimRecord struct {
	Base

	PoolID string `gorm:"index:idx_claim_record_pool_user,unique"`
	Pool   Pool   `gorm:"foreignKey:PoolID"`

	UserID string `gorm:"index:idx_claim_record_pool_user,unique"`
	User   User   `gorm:"foreignKey:UserID"`

	Claimed bool
	Amount  uint64
}

// FeePaidRecord marks that the platform fee was already deducted for a
// participant, so repeat claims across pools are charged only once.
type FeePaidRecord struct {
	Base

	UserID string `gorm:"uniqueIndex"`
	User   User   `gorm:"foreignKey:UserID"`
}
