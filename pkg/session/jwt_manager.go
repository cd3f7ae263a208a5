package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT payload of a session token
type Claims struct {
	WalletAddress string `json:"wallet_address"`
	jwt.RegisteredClaims
}

// JWTManager implements Manager with HS256-signed JWTs
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// Compile-time interface compliance check
var _ Manager = (*JWTManager)(nil)

// NewJWTManager creates a session manager. The secret is copied and never
// exposed again.
func NewJWTManager(secret []byte, ttl time.Duration) (*JWTManager, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	m := &JWTManager{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}

	// Expiry is compared at whole seconds: a token is expired once
	// now >= exp, including the exact second of exp.
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now().Truncate(time.Second) }),
	)

	return m, nil
}

// TTL returns the configured session lifetime
func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session token for walletAddress
func (m *JWTManager) Issue(walletAddress string) (*Token, error) {
	address := strings.ToLower(strings.TrimSpace(walletAddress))
	if address == "" {
		return nil, ErrMissingAddress
	}

	issuedAt := m.now().UTC().Truncate(time.Second)
	sess := Session{
		ID:            uuid.NewString(),
		WalletAddress: address,
		IssuedAt:      issuedAt,
		ExpiresAt:     issuedAt.Add(m.ttl),
	}

	claims := Claims{
		WalletAddress: address,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address,
			ID:        sess.ID,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &Token{
		Value:     signed,
		ExpiresIn: int64(m.ttl / time.Second),
		Session:   sess,
	}, nil
}

// Verify parses and validates a session token
func (m *JWTManager) Verify(tokenStr string) (*Session, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	token, err := m.parser.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.WalletAddress == "" || claims.WalletAddress != strings.ToLower(claims.WalletAddress) {
		return nil, ErrInvalidToken
	}

	sess := &Session{
		ID:            claims.ID,
		WalletAddress: claims.WalletAddress,
		ExpiresAt:     claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}

	return sess, nil
}
