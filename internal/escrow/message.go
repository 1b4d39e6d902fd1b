package escrow

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidFormat is returned when a message field cannot be serialized,
// e.g. the recipient is not a well-formed address.
var ErrInvalidFormat = errors.New("message field is not representable")

// ClaimMessage is the structured message the off-chain authority signs. The
// recipient and pool are part of the message, not checked afterwards, so a
// signature cannot be replayed for another recipient or another pool.
type ClaimMessage struct {
	Amount    uint64
	Recipient string

	// PoolID is empty for deposit claims, whose messages bind the deposit id
	// instead of the pool identity.
	PoolID string

	DepositID *int64
}

// Hash canonicalizes the message into a fixed-width byte encoding and hashes
// it with Keccak256. Field widths are fixed (32-byte amount, 20-byte
// recipient, 32-byte pool digest, 8-byte deposit id), so the encoding is
// injective over the tuple.
func (m ClaimMessage) Hash() ([]byte, error) {
	if !common.IsHexAddress(m.Recipient) {
		return nil, ErrInvalidFormat
	}

	recipient := common.HexToAddress(m.Recipient)

	var data []byte
	data = append(data, common.LeftPadBytes(new(big.Int).SetUint64(m.Amount).Bytes(), 32)...)
	data = append(data, recipient.Bytes()...)

	if m.PoolID != "" {
		data = append(data, ethcrypto.Keccak256([]byte(m.PoolID))...)
	}

	if m.DepositID != nil {
		var id [8]byte
		binary.BigEndian.PutUint64(id[:], uint64(*m.DepositID))
		data = append(data, id[:]...)
	}

	return ethcrypto.Keccak256(data), nil
}
