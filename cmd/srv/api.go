package main

import (
	"fmt"
	"net/http"

	"github.com/escrowpool/backend/internal/middleware"
	"github.com/escrowpool/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRepos()
	s.loadEscrow()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.configs, s.db, s.logger, s.node)

	// Auth API
	authRouter := s.router.Group("")
	{
		router.POST(authRouter, "/wallet/login", s.authDomain.WalletLogin)
		router.POST(authRouter, "/wallet/verify", s.authDomain.WalletVerify)
	}

	// Public getters need no authentication.
	publicRouter := s.router.Group("")
	{
		router.GET(publicRouter, "/getPool", s.poolDomain.GetPool)
		router.GET(publicRouter, "/getTotalPlayers", s.poolDomain.GetTotalPlayers)
		router.GET(publicRouter, "/getPoolBalance", s.poolDomain.GetPoolBalance)
		router.GET(publicRouter, "/hasPlayerJoined", s.poolDomain.HasPlayerJoined)
		router.GET(publicRouter, "/hasClaimedReward", s.poolDomain.HasClaimedReward)
		router.GET(publicRouter, "/hasPaidEntryFee", s.poolDomain.HasPaidEntryFee)
		router.GET(publicRouter, "/hasPaidPlatformFee", s.poolDomain.HasPaidPlatformFee)
		router.GET(publicRouter, "/getDeposit", s.depositDomain.GetDeposit)
		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
	}

	// These following APIs need authentication with the access token.
	authVerifiedRouter := s.router.Group("")
	authVerifiedRouter.Use(middleware.ParseAccessToken(s.accessTokenEngine))
	authVerifiedRouter.Use(middleware.Authenticate)
	{
		router.GET(authVerifiedRouter, "/getMe", s.userDomain.GetMe)

		router.POST(authVerifiedRouter, "/createPool", s.poolDomain.CreatePool)
		router.POST(authVerifiedRouter, "/joinPool", s.poolDomain.Join)
		router.POST(authVerifiedRouter, "/leavePool", s.poolDomain.Leave)
		router.POST(authVerifiedRouter, "/kickPlayer", s.poolDomain.Kick)
		router.POST(authVerifiedRouter, "/claimReward", s.poolDomain.ClaimReward)
		router.POST(authVerifiedRouter, "/fundPool", s.poolDomain.Fund)
		router.POST(authVerifiedRouter, "/withdrawPool", s.poolDomain.Withdraw)

		router.POST(authVerifiedRouter, "/deposit", s.depositDomain.Deposit)
		router.POST(authVerifiedRouter, "/claimDeposit", s.depositDomain.Claim)
		router.POST(authVerifiedRouter, "/markDepositLost", s.depositDomain.MarkLost)
		router.GET(authVerifiedRouter, "/getDeposits", s.depositDomain.GetMyDeposits)
	}
}
