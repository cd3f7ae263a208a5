package auth

import "time"

// ============================================================================
// Request DTOs
// ============================================================================

// NonceRequest represents the request body for a login challenge
// NOTE: address format is checked in the service with signature.NormalizeAddress
type NonceRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required" example:"0x742d35Cc6634C0532925a3b844Bc454e4438f44e"`
}

// VerifyRequest represents the signed answer to a challenge
type VerifyRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required" example:"0x742d35Cc6634C0532925a3b844Bc454e4438f44e"`
	// Signature: 0x prefix + 130 hex chars (65 bytes)
	Signature string `json:"signature" binding:"required" example:"0x1234...abcd"`
	Nonce     string `json:"nonce" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// NonceResponse carries the challenge the wallet must sign
type NonceResponse struct {
	Nonce   string `json:"nonce" example:"550e8400-e29b-41d4-a716-446655440000"`
	Message string `json:"message"`
}

// VerifyResponse carries the issued session credential
type VerifyResponse struct {
	SessionToken     string `json:"sessionToken"`
	ExpiresInSeconds int64  `json:"expiresInSeconds" example:"3600"`
}

// SessionResponse describes the session of the current bearer token
type SessionResponse struct {
	WalletAddress string    `json:"walletAddress" example:"0x742d35cc6634c0532925a3b844bc454e4438f44e"`
	IssuedAt      time.Time `json:"issuedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}
