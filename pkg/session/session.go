package session

import (
	"errors"
	"time"
)

const (
	// DefaultTTL is the default session lifetime
	DefaultTTL = time.Hour

	// Audience is the JWT audience of every session token
	Audience = "carbon-nft:session"

	// MinSecretLen is the minimum accepted HMAC secret size in bytes
	MinSecretLen = 32
)

// Session is the identity carried by a verified session token
type Session struct {
	ID            string
	WalletAddress string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// Token is a freshly issued session credential
type Token struct {
	Value     string
	ExpiresIn int64 // seconds
	Session   Session
}

// Manager issues and verifies stateless session tokens.
// Implementations hold no per-session state.
type Manager interface {
	// Issue creates a signed token for the (normalized) wallet address
	Issue(walletAddress string) (*Token, error)

	// Verify checks signature, audience and expiry and returns the session
	Verify(token string) (*Session, error)
}

// Error definitions
var (
	ErrInvalidToken   = errors.New("invalid session token")
	ErrTokenExpired   = errors.New("session token expired")
	ErrWeakSecret     = errors.New("session secret is too short")
	ErrInvalidTTL     = errors.New("session ttl must be positive")
	ErrMissingAddress = errors.New("wallet address is required")
)
