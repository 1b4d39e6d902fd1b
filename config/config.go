package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Escrow    EscrowConfigs
	Eth       EthConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
	NonceToken  TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

// EscrowConfigs carries the pool settings fixed at deployment: the single
// trusted signer whose signatures authorize payouts, the platform fee, and
// the accounts the fee and sponsor funds flow through.
type EscrowConfigs struct {
	// TrustedSignerAddress is the hex address of the off-chain signing
	// authority. There is no rotation mechanism; changing the signer is a
	// redeployment.
	TrustedSignerAddress string

	// FeePercent is the platform fee in whole percent, deducted from the
	// first successful reward claim of each participant.
	FeePercent uint64

	// FeeWalletAddress receives the platform fee.
	FeeWalletAddress string

	// TreasuryAddress funds test and faucet accounts in non-production
	// environments.
	TreasuryAddress string
}

type EthConfigs struct {
	Chain      string
	Rpc        string
	ChainID    int64
	PrivateKey string
}

// Load reads configurations with viper. Variables come from the environment,
// optionally seeded from a local .env file.
func Load() Configs {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "local")
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", "8080")
	v.SetDefault("ACCESS_TOKEN_DURATION", "15m")
	v.SetDefault("NONCE_TOKEN_DURATION", "5m")
	v.SetDefault("ESCROW_FEE_PERCENT", 2)

	return Configs{
		Env: v.GetString("ENV"),
		Database: DatabaseConfigs{
			Host:     v.GetString("MYSQL_HOST"),
			Port:     v.GetString("MYSQL_PORT"),
			Database: v.GetString("MYSQL_DATABASE"),
			User:     v.GetString("MYSQL_USER"),
			Password: v.GetString("MYSQL_PASSWORD"),
		},
		ApiServer: ServerConfigs{
			Host: v.GetString("API_HOST"),
			Port: v.GetString("API_PORT"),
			Cert: v.GetString("API_CERT"),
			Key:  v.GetString("API_KEY"),
		},
		Auth: AuthConfigs{
			TokenSecret: v.GetString("TOKEN_SECRET"),
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: v.GetDuration("ACCESS_TOKEN_DURATION"),
			},
			NonceToken: TokenConfigs{
				Name:       "nonce_token",
				Expiration: v.GetDuration("NONCE_TOKEN_DURATION"),
			},
		},
		Escrow: EscrowConfigs{
			TrustedSignerAddress: v.GetString("ESCROW_TRUSTED_SIGNER"),
			FeePercent:           v.GetUint64("ESCROW_FEE_PERCENT"),
			FeeWalletAddress:     v.GetString("ESCROW_FEE_WALLET"),
			TreasuryAddress:      v.GetString("ESCROW_TREASURY"),
		},
		Eth: EthConfigs{
			Chain:      v.GetString("ETH_CHAIN"),
			Rpc:        v.GetString("ETH_RPC"),
			ChainID:    v.GetInt64("ETH_CHAIN_ID"),
			PrivateKey: v.GetString("ETH_PRIVATE_KEY"),
		},
	}
}
