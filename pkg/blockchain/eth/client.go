package eth

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/escrowpool/backend/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/crypto/sha3"
)

// EthClient is the slice of the JSON-RPC surface the token transferrer
// needs: building, signing, and broadcasting an ERC-20 transfer.
type EthClient interface {
	GetSignedTransferTx(
		ctx context.Context,
		privateKey *ecdsa.PrivateKey,
		from common.Address,
		token common.Address,
		recipient common.Address,
		amount *big.Int,
	) (*types.Transaction, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

type defaultEthClient struct {
	cfg config.EthConfigs

	mutex  sync.Mutex
	client *ethclient.Client
}

func NewEthClient(cfg config.EthConfigs) *defaultEthClient {
	return &defaultEthClient{cfg: cfg}
}

// dial connects on first use so the process can boot while the RPC endpoint
// is still coming up.
func (c *defaultEthClient) dial(ctx context.Context) (*ethclient.Client, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := ethclient.DialContext(ctx, c.cfg.Rpc)
	if err != nil {
		return nil, err
	}

	c.client = client
	return client, nil
}

func (c *defaultEthClient) GetSignedTransferTx(
	ctx context.Context,
	privateKey *ecdsa.PrivateKey,
	from common.Address,
	token common.Address,
	recipient common.Address,
	amount *big.Int,
) (*types.Transaction, error) {
	client, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, err
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	data := GetTransferData(recipient, amount)
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From: from,
		To:   &token,
		Data: data,
	})
	if err != nil {
		return nil, err
	}

	tx := types.NewTransaction(nonce, token, big.NewInt(0), gasLimit, gasPrice, data)
	return types.SignTx(tx, types.NewEIP155Signer(big.NewInt(c.cfg.ChainID)), privateKey)
}

func (c *defaultEthClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	client, err := c.dial(ctx)
	if err != nil {
		return err
	}

	return client.SendTransaction(ctx, tx)
}

// GetTransferData packs the calldata of transfer(address,uint256).
func GetTransferData(to common.Address, amount *big.Int) []byte {
	transferFnSignature := []byte("transfer(address,uint256)")
	hash := sha3.NewLegacyKeccak256()
	hash.Write(transferFnSignature)
	methodID := hash.Sum(nil)[:4]

	paddedAddress := common.LeftPadBytes(to.Bytes(), 32)
	paddedAmount := common.LeftPadBytes(amount.Bytes(), 32)

	var data []byte
	data = append(data, methodID...)
	data = append(data, paddedAddress...)
	data = append(data, paddedAmount...)
	return data
}
