package entity

// Account is a row of the native-currency ledger. Users, pools, and the
// platform fee wallet each own one account keyed by address.
type Account struct {
	Base

	Address string `gorm:"uniqueIndex"`
	Balance uint64
}
