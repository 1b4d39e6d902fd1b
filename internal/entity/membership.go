package entity

type Membership struct {
	Base

	PoolID string `gorm:"index:idx_membership_pool_user,unique"`
	Pool   Pool   `gorm:"foreignKey:PoolID"`

	UserID string `gorm:"index:idx_membership_pool_user,unique"`
	User   User   `gorm:"foreignKey:UserID"`

	// JoinedAt is the sequence ordinal assigned at join time. Informational
	// only, no invariant depends on it.
	JoinedAt int64

	// Contributed is what the player moved into escrow when joining: the
	// entry fee in fixed pools, the pool size for a sponsor, zero otherwise.
	Contributed uint64

	IsSponsor bool
}
