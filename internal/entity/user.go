package entity

type User struct {
	Base

	// Address is the wallet address the user authenticated with. It is the
	// identity every signed claim message is bound to.
	Address string `gorm:"uniqueIndex"`
	Name    string
}
