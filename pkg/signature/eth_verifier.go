package signature

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

const signatureLen = 65

// EthVerifier implements Verifier for EIP-191 personal_sign signatures
type EthVerifier struct {
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Verifier = (*EthVerifier)(nil)

// NewEthVerifier creates a personal_sign verifier
func NewEthVerifier(logger *zap.Logger) *EthVerifier {
	return &EthVerifier{logger: logger}
}

// Verify recovers the signer of message and compares it with claimedAddress
func (v *EthVerifier) Verify(message, signature, claimedAddress string) bool {
	if !common.IsHexAddress(claimedAddress) {
		v.logger.Debug("signature rejected: malformed claimed address")
		return false
	}

	recovered, ok := v.recover(message, signature)
	if !ok {
		return false
	}

	// Address comparison is on the 20 raw bytes, so case does not matter.
	if recovered != common.HexToAddress(claimedAddress) {
		v.logger.Debug("signature rejected: address mismatch",
			zap.String("claimed", claimedAddress),
			zap.String("recovered", recovered.Hex()),
		)
		return false
	}
	return true
}

// recover returns the address whose key produced signature over the
// personal_sign digest of message.
func (v *EthVerifier) recover(message, signature string) (common.Address, bool) {
	decoded, err := hexutil.Decode(signature)
	if err != nil || len(decoded) != signatureLen {
		v.logger.Debug("signature rejected: malformed encoding")
		return common.Address{}, false
	}

	// Wallets send V as 27/28; go-ethereum expects 0/1.
	sig := make([]byte, signatureLen)
	copy(sig, decoded)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[64], r, s, true) {
		v.logger.Debug("signature rejected: invalid r, s or v")
		return common.Address{}, false
	}

	// "\x19Ethereum Signed Message:\n" + len(message) + message, keccak256
	digest := accounts.TextHash([]byte(message))

	pubKey, err := crypto.SigToPub(digest, sig)
	if err != nil {
		v.logger.Debug("signature rejected: recovery failed", zap.Error(err))
		return common.Address{}, false
	}

	return crypto.PubkeyToAddress(*pubKey), true
}
