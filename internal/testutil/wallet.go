// Package testutil holds helpers shared by package tests.
package testutil

import (
	"crypto/ecdsa"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet is a throwaway secp256k1 account that signs like a browser wallet
type Wallet struct {
	Key     *ecdsa.PrivateKey
	Address string // EIP-55 checksummed
}

// NewWallet generates a fresh account
func NewWallet(t testing.TB) *Wallet {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return &Wallet{
		Key:     key,
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
	}
}

// Lower returns the lowercase address
func (w *Wallet) Lower() string {
	return strings.ToLower(w.Address)
}

// SignRaw returns the 65-byte personal_sign signature with V as 27/28
func (w *Wallet) SignRaw(t testing.TB, message string) []byte {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), w.Key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sig[64] += 27
	return sig
}

// Sign returns the 0x-hex personal_sign signature
func (w *Wallet) Sign(t testing.TB, message string) string {
	t.Helper()
	return hexutil.Encode(w.SignRaw(t, message))
}
