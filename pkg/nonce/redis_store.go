package nonce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// keyPrefix is the Redis key prefix for nonces
	keyPrefix = "nonce"
)

// RedisStore implements Store interface using Redis
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-based nonce store with default TTL
func NewRedisStore(client redis.UniversalClient, logger *zap.Logger) *RedisStore {
	return NewRedisStoreWithTTL(client, DefaultTTL, logger)
}

// NewRedisStoreWithTTL creates a new Redis-based nonce store with custom TTL
func NewRedisStoreWithTTL(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// TTL returns the nonce lifetime
func (s *RedisStore) TTL() time.Duration {
	return s.ttl
}

// buildKey creates a Redis key from address and nonce
// Format: nonce:{lowercase_address}:{nonce}
func buildKey(address, nonce string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, address, nonce)
}

func normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Issue generates a UUID nonce and stores it with SET NX and the store TTL
func (s *RedisStore) Issue(ctx context.Context, walletAddress string) (*Record, error) {
	// Millisecond precision keeps created_at stable through JSON and the
	// signed message.
	now := s.now().UTC().Truncate(time.Millisecond)
	rec := &Record{
		Nonce:         uuid.NewString(),
		WalletAddress: normalize(walletAddress),
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode nonce: %w", err)
	}

	ok, err := s.client.SetNX(ctx, buildKey(rec.WalletAddress, rec.Nonce), payload, s.ttl).Result()
	if err != nil {
		s.logger.Error("failed to store nonce",
			zap.String("wallet_address", rec.WalletAddress),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to store nonce: %w", err)
	}
	if !ok {
		return nil, ErrNonceCollision
	}

	s.logger.Debug("nonce issued",
		zap.String("wallet_address", rec.WalletAddress),
		zap.String("nonce", rec.Nonce),
	)
	return rec, nil
}

// Lookup reads a nonce without deleting it
func (s *RedisStore) Lookup(ctx context.Context, nonce, walletAddress string) (*Record, error) {
	key, ok := s.key(nonce, walletAddress)
	if !ok {
		return nil, ErrNonceNotFound
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNonceNotFound
		}
		return nil, fmt.Errorf("failed to load nonce: %w", err)
	}

	return s.decode(raw, nonce, walletAddress)
}

// Consume deletes and returns the nonce with a single GETDEL, so two
// concurrent callers can never both observe it.
func (s *RedisStore) Consume(ctx context.Context, nonce, walletAddress string) (*Record, error) {
	key, ok := s.key(nonce, walletAddress)
	if !ok {
		return nil, ErrNonceNotFound
	}

	raw, err := s.client.GetDel(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNonceNotFound
		}
		s.logger.Error("failed to consume nonce",
			zap.String("wallet_address", normalize(walletAddress)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to consume nonce: %w", err)
	}

	rec, err := s.decode(raw, nonce, walletAddress)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("nonce consumed",
		zap.String("wallet_address", rec.WalletAddress),
		zap.String("nonce", rec.Nonce),
	)
	return rec, nil
}

// key rejects nonces that are not UUIDs so client input can never reach
// into another key of the keyspace.
func (s *RedisStore) key(nonce, walletAddress string) (string, bool) {
	id, err := uuid.Parse(nonce)
	if err != nil || id.String() != nonce {
		return "", false
	}
	address := normalize(walletAddress)
	if address == "" {
		return "", false
	}
	return buildKey(address, nonce), true
}

// decode parses a stored record and applies the lazy expiry check. Redis
// TTL normally removes the key first; this covers clock skew between Redis
// and the API.
func (s *RedisStore) decode(raw []byte, nonce, walletAddress string) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.logger.Warn("discarding corrupt nonce record", zap.String("nonce", nonce), zap.Error(err))
		return nil, ErrNonceNotFound
	}

	if rec.Nonce != nonce || rec.WalletAddress != normalize(walletAddress) {
		return nil, ErrNonceNotFound
	}
	if !s.now().Before(rec.ExpiresAt) {
		return nil, ErrNonceNotFound
	}
	return &rec, nil
}
