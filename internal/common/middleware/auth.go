package middleware

import (
	"strings"

	"github.com/ahwlsqja/carbon-nft-registry/internal/common/errors"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/session"
	"github.com/gin-gonic/gin"
)

const (
	// WalletAddressKey is the gin context key holding the authenticated wallet
	WalletAddressKey = "wallet_address"

	// SessionKey is the gin context key holding the verified *session.Session
	SessionKey = "session"

	bearerPrefix = "Bearer "
)

// SessionVerifier validates a bearer session token
type SessionVerifier interface {
	Verify(token string) (*session.Session, error)
}

// RequireSession rejects requests without a valid session token and binds the
// caller's wallet address to the context. It establishes identity only;
// handlers decide what that identity may touch.
func RequireSession(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, errors.Unauthorized("missing or invalid authorization header"))
			return
		}

		sess, err := verifier.Verify(token)
		if err != nil {
			AbortWithError(c, errors.Unauthorized("invalid or expired session token"))
			return
		}

		c.Set(SessionKey, sess)
		c.Set(WalletAddressKey, sess.WalletAddress)
		c.Next()
	}
}

// WalletAddress returns the authenticated wallet address, or "" outside
// RequireSession.
func WalletAddress(c *gin.Context) string {
	return c.GetString(WalletAddressKey)
}

// CurrentSession returns the verified session bound by RequireSession
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
