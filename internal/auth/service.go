package auth

import (
	"context"
	stderrors "errors"

	"github.com/ahwlsqja/carbon-nft-registry/internal/common/errors"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/events"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/metrics"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/nonce"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/session"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/signature"
	"go.uber.org/zap"
)

const issueAttempts = 3

// Client-facing messages stay generic so callers cannot tell which check failed.
const (
	msgInvalidAddress   = "invalid wallet address"
	msgInvalidNonce     = "invalid or expired nonce"
	msgInvalidSignature = "invalid signature"
)

// Service runs the wallet challenge/response exchange
type Service struct {
	nonces    nonce.Store
	verifier  signature.Verifier
	sessions  session.Manager
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates a new auth service
func NewService(
	nonces nonce.Store,
	verifier signature.Verifier,
	sessions session.Manager,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		nonces:    nonces,
		verifier:  verifier,
		sessions:  sessions,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// IssueNonce creates a challenge for the wallet
func (s *Service) IssueNonce(ctx context.Context, req *NonceRequest) (*NonceResponse, error) {
	// 1. Validate and normalize address
	address, err := signature.NormalizeAddress(req.WalletAddress)
	if err != nil {
		s.metrics.IncAuth(metrics.StageNonce, metrics.OutcomeError)
		return nil, errors.InvalidInput(msgInvalidAddress)
	}

	// 2. Persist nonce (a UUID collision is retried)
	var rec *nonce.Record
	for attempt := 0; attempt < issueAttempts; attempt++ {
		rec, err = s.nonces.Issue(ctx, address)
		if !stderrors.Is(err, nonce.ErrNonceCollision) {
			break
		}
	}
	if err != nil {
		s.metrics.IncAuth(metrics.StageNonce, metrics.OutcomeStorageError)
		s.logger.Error("failed to issue nonce",
			zap.String("wallet_address", address),
			zap.Error(err),
		)
		return nil, errors.StorageError(err)
	}

	s.metrics.IncAuth(metrics.StageNonce, metrics.OutcomeSuccess)

	// 3. Build the message the wallet signs
	return &NonceResponse{
		Nonce:   rec.Nonce,
		Message: BuildMessage(rec.Nonce, rec.CreatedAt),
	}, nil
}

// Verify checks the signed challenge and issues a session.
// A bad signature leaves the nonce in place; only a verified answer consumes
// it, and the atomic consume lets at most one concurrent request win.
func (s *Service) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error) {
	// 1. Validate and normalize address
	address, err := signature.NormalizeAddress(req.WalletAddress)
	if err != nil {
		s.metrics.IncAuth(metrics.StageVerify, metrics.OutcomeError)
		return nil, errors.InvalidInput(msgInvalidAddress)
	}

	// 2. Load the challenge
	rec, err := s.nonces.Lookup(ctx, req.Nonce, address)
	if err != nil {
		return nil, s.nonceError(err, address, "lookup")
	}

	// 3. Rebuild the signed message from the stored timestamp and verify
	message := BuildMessage(rec.Nonce, rec.CreatedAt)
	if !s.verifier.Verify(message, req.Signature, address) {
		s.metrics.IncAuth(metrics.StageVerify, metrics.OutcomeInvalidSignature)
		s.logger.Warn("wallet signature rejected", zap.String("wallet_address", address))
		return nil, errors.Unauthorized(msgInvalidSignature)
	}

	// 4. Consume the nonce (single use)
	if _, err := s.nonces.Consume(ctx, req.Nonce, address); err != nil {
		return nil, s.nonceError(err, address, "consume")
	}

	// 5. Issue session
	token, err := s.sessions.Issue(address)
	if err != nil {
		s.metrics.IncAuth(metrics.StageVerify, metrics.OutcomeError)
		s.logger.Error("failed to issue session", zap.String("wallet_address", address), zap.Error(err))
		return nil, errors.Internal("Failed to issue session").WithError(err)
	}

	s.metrics.IncAuth(metrics.StageVerify, metrics.OutcomeSuccess)
	s.logger.Info("wallet authenticated",
		zap.String("wallet_address", address),
		zap.String("session_id", token.Session.ID),
	)

	// 6. Notify (best-effort)
	if err := s.publisher.PublishWalletAuthenticated(ctx, events.WalletAuthenticated{
		WalletAddress: address,
		SessionID:     token.Session.ID,
		ExpiresAt:     token.Session.ExpiresAt,
	}); err != nil {
		s.logger.Warn("failed to publish wallet authenticated event",
			zap.String("wallet_address", address),
			zap.Error(err),
		)
	}

	return &VerifyResponse{
		SessionToken:     token.Value,
		ExpiresInSeconds: token.ExpiresIn,
	}, nil
}

func (s *Service) nonceError(err error, address, op string) error {
	if stderrors.Is(err, nonce.ErrNonceNotFound) {
		s.metrics.IncAuth(metrics.StageVerify, metrics.OutcomeInvalidNonce)
		return errors.Unauthorized(msgInvalidNonce)
	}
	s.metrics.IncAuth(metrics.StageVerify, metrics.OutcomeStorageError)
	s.logger.Error("nonce store failure",
		zap.String("op", op),
		zap.String("wallet_address", address),
		zap.Error(err),
	)
	return errors.StorageError(err)
}
