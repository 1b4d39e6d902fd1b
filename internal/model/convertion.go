package model

import (
	"github.com/escrowpool/backend/internal/entity"
)

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:      user.ID,
		Address: user.Address,
		Name:    user.Name,
	}
}

func ConvertPool(pool *entity.Pool) Pool {
	if pool == nil {
		return Pool{}
	}

	return Pool{
		ID:            pool.ID,
		Handle:        pool.Handle,
		OwnerID:       pool.OwnerID,
		FeeModel:      string(pool.FeeModel),
		EntryFee:      pool.EntryFee,
		TokenAddress:  pool.TokenAddress,
		EscrowAddress: pool.EscrowAddress,
		Balance:       pool.Balance,
		TotalPlayers:  pool.TotalPlayers,
		Sponsored:     pool.Sponsored,
	}
}

func ConvertDeposit(deposit *entity.Deposit, poolHandle string) Deposit {
	if deposit == nil {
		return Deposit{}
	}

	return Deposit{
		ID:          deposit.ID,
		PoolHandle:  poolHandle,
		UserID:      deposit.UserID,
		Amount:      deposit.Amount,
		Valid:       deposit.Valid,
		DepositedAt: deposit.DepositedAt,
	}
}
