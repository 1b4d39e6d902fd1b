package testutil

import (
	"context"
	"crypto/ecdsa"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/escrowpool/backend/config"
	"github.com/escrowpool/backend/migration"
	"github.com/escrowpool/backend/pkg/logger"
	"github.com/escrowpool/backend/pkg/xcontext"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// trustedSignerHex is a throwaway key used as the claim-signing authority in
// tests. Never fund it anywhere real.
const trustedSignerHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// TrustedSigner returns the private key matching the trusted signer address
// in MockConfigs, so tests can mint valid claim signatures.
func TrustedSigner() *ecdsa.PrivateKey {
	key, err := ethcrypto.HexToECDSA(trustedSignerHex)
	if err != nil {
		panic(err)
	}

	return key
}

func MockConfigs() config.Configs {
	signer := ethcrypto.PubkeyToAddress(TrustedSigner().PublicKey)

	return config.Configs{
		Env: "testing",
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{Name: "access_token", Expiration: time.Minute},
			NonceToken:  config.TokenConfigs{Name: "nonce_token", Expiration: time.Minute},
		},
		Escrow: config.EscrowConfigs{
			TrustedSignerAddress: signer.Hex(),
			FeePercent:           2,
			FeeWalletAddress:     "fee-wallet",
			TreasuryAddress:      "treasury",
		},
	}
}

// MockContext builds a context carrying an in-memory database with the full
// schema, testing configs, a quiet logger, and a sequence-id generator.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLoggerWithLevel(logger.SILENCE))
	ctx = xcontext.WithSnowflake(ctx, node)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}
