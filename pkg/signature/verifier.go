package signature

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Verifier checks that a personal-sign signature over message was produced
// by the key controlling claimedAddress. Every failure mode is reported as
// false; callers cannot tell a malformed signature from a wrong key.
type Verifier interface {
	Verify(message, signature, claimedAddress string) bool
}

// Error definitions
var (
	ErrInvalidAddress = errors.New("invalid ethereum address")
)

// NormalizeAddress validates a hex account address and returns it in
// lowercase 0x form.
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		return "", ErrInvalidAddress
	}
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}
