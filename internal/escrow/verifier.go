package escrow

import (
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the expected signature size: a 64-byte secp256k1
// signature followed by a one-byte recovery id.
const SignatureLength = 65

// Verifier checks a claim signature against the canonical message hash. It is
// an interface so the domain can be tested with real keys while the
// canonicalizer stays independent of any signature scheme.
type Verifier interface {
	Verify(hash []byte, signature []byte) bool
}

// addressVerifier recovers the signing key from the signature and compares
// its address with the single trusted signer compiled into the deployment.
type addressVerifier struct {
	trusted common.Address
}

func NewVerifier(trustedSignerAddress string) *addressVerifier {
	return &addressVerifier{trusted: common.HexToAddress(trustedSignerAddress)}
}

func (v *addressVerifier) Verify(hash []byte, signature []byte) bool {
	if len(signature) != SignatureLength {
		return false
	}

	sig := make([]byte, SignatureLength)
	copy(sig, signature)

	// Transform yellow paper V from 27/28 to 0/1.
	if sig[ethcrypto.RecoveryIDOffset] == 27 || sig[ethcrypto.RecoveryIDOffset] == 28 {
		sig[ethcrypto.RecoveryIDOffset] -= 27
	}

	recovered, err := ethcrypto.SigToPub(hash, sig)
	if err != nil {
		return false
	}

	return ethcrypto.PubkeyToAddress(*recovered) == v.trusted
}
