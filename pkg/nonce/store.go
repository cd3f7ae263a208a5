package nonce

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultTTL is the default nonce validity duration
	DefaultTTL = 5 * time.Minute
)

// Record is a single-use authentication challenge
type Record struct {
	Nonce         string    `json:"nonce"`
	WalletAddress string    `json:"wallet_address"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Store defines the interface for nonce storage.
// Several nonces may be outstanding for one address at the same time; each
// expires independently.
type Store interface {
	// Issue creates and persists a fresh nonce for walletAddress
	Issue(ctx context.Context, walletAddress string) (*Record, error)

	// Lookup returns an unexpired nonce without consuming it.
	// Returns ErrNonceNotFound if it is absent, expired or bound to another address.
	Lookup(ctx context.Context, nonce, walletAddress string) (*Record, error)

	// Consume atomically fetches and deletes the nonce. Of concurrent calls
	// for the same nonce at most one gets the record; the rest get ErrNonceNotFound.
	Consume(ctx context.Context, nonce, walletAddress string) (*Record, error)
}

// Error definitions
var (
	ErrNonceNotFound  = errors.New("nonce not found")
	ErrNonceCollision = errors.New("nonce already exists")
)
