package eth

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestGetTransferData(t *testing.T) {
	to := common.HexToAddress("0x71C7656EC7ab88b098defB751B7401B5f6d8976F")
	data := GetTransferData(to, big.NewInt(1_000_000))

	require.Len(t, data, 4+32+32)

	// transfer(address,uint256)
	require.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))
	require.Equal(t, common.LeftPadBytes(to.Bytes(), 32), data[4:36])
	require.Equal(t, common.LeftPadBytes(big.NewInt(1_000_000).Bytes(), 32), data[36:])
}
