package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/escrowpool/backend/config"
	"github.com/escrowpool/backend/internal/domain"
	"github.com/escrowpool/backend/internal/escrow"
	"github.com/escrowpool/backend/internal/model"
	"github.com/escrowpool/backend/internal/repository"
	"github.com/escrowpool/backend/pkg/blockchain/eth"
	"github.com/escrowpool/backend/pkg/jwt"
	"github.com/escrowpool/backend/pkg/logger"
	"github.com/escrowpool/backend/pkg/router"
	"github.com/escrowpool/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB
	node    *snowflake.Node

	userRepo       repository.UserRepository
	accountRepo    repository.AccountRepository
	poolRepo       repository.PoolRepository
	membershipRepo repository.MembershipRepository
	claimRepo      repository.ClaimRepository
	depositRepo    repository.DepositRepository
	transferRepo   repository.TransferRepository

	guard    *escrow.Guard
	verifier escrow.Verifier
	ledger   escrow.Transferrer
	tokens   escrow.TokenTransferrerFactory

	accessTokenEngine *jwt.Engine[model.AccessToken]
	nonceTokenEngine  *jwt.Engine[model.NonceToken]

	authDomain    domain.AuthDomain
	userDomain    domain.UserDomain
	poolDomain    domain.PoolDomain
	depositDomain domain.DepositDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.configs = config.Load()
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger()
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)

	s.node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowflake(s.ctx, s.node)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.accountRepo = repository.NewAccountRepository()
	s.poolRepo = repository.NewPoolRepository()
	s.membershipRepo = repository.NewMembershipRepository()
	s.claimRepo = repository.NewClaimRepository()
	s.depositRepo = repository.NewDepositRepository()
	s.transferRepo = repository.NewTransferRepository()
}

func (s *srv) loadEscrow() {
	s.guard = escrow.NewGuard()
	s.verifier = escrow.NewVerifier(s.configs.Escrow.TrustedSignerAddress)
	s.ledger = escrow.NewLedgerTransferrer(s.accountRepo, s.transferRepo)

	// Token pools need an RPC endpoint and an operator key. Without them,
	// every pool settles on the internal ledger.
	if s.configs.Eth.Rpc != "" && s.configs.Eth.PrivateKey != "" {
		tokens, err := eth.NewTokenTransferrerFactory(
			eth.NewEthClient(s.configs.Eth), s.ledger, s.configs.Eth.PrivateKey)
		if err != nil {
			panic(err)
		}

		s.tokens = tokens
	}
}

func (s *srv) loadDomains() {
	s.accessTokenEngine = jwt.NewEngine[model.AccessToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.AccessToken.Expiration)
	s.nonceTokenEngine = jwt.NewEngine[model.NonceToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.NonceToken.Expiration)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.accessTokenEngine, s.nonceTokenEngine)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.poolDomain = domain.NewPoolDomain(
		s.poolRepo, s.membershipRepo, s.claimRepo, s.accountRepo, s.userRepo,
		s.guard, s.verifier, s.ledger, s.tokens)
	s.depositDomain = domain.NewDepositDomain(
		s.depositRepo, s.poolRepo, s.userRepo,
		s.guard, s.verifier, s.ledger, s.tokens)
}
