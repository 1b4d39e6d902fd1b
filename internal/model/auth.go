package model

// AccessToken is embedded in the JWT handed out after wallet verification.
type AccessToken struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// NonceToken carries the login challenge between WalletLogin and
// WalletVerify, so the server stays stateless.
type NonceToken struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
}

type WalletLoginRequest struct {
	Address string `json:"address" form:"address"`
}

type WalletLoginResponse struct {
	Address    string `json:"address"`
	Nonce      string `json:"nonce"`
	NonceToken string `json:"nonce_token"`
}

type WalletVerifyRequest struct {
	NonceToken string `json:"nonce_token"`
	Signature  string `json:"signature"`
}

type WalletVerifyResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
