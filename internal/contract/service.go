package contract

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/ahwlsqja/carbon-nft-registry/internal/common/errors"
	pkgdb "github.com/ahwlsqja/carbon-nft-registry/pkg/db"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/events"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/metrics"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/signature"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles contract registry business logic.
// Every operation is scoped to the owner wallet taken from the session.
type Service struct {
	txRunner  *pkgdb.TxRunner
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates a new contract service
func NewService(txRunner *pkgdb.TxRunner, publisher events.Publisher, m *metrics.Metrics, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		txRunner:  txRunner,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// ListContracts returns the owner's contracts, newest first
func (s *Service) ListContracts(ctx context.Context, owner string) (*ListContractsResponse, error) {
	contracts, err := NewQueries(s.txRunner.DB()).ListContractsByOwner(ctx, owner)
	if err != nil {
		s.logger.Error("failed to list contracts", zap.String("wallet_address", owner), zap.Error(err))
		return nil, errors.DBError(err)
	}

	return &ListContractsResponse{
		Contracts: ToContractResponseList(contracts),
		Total:     int64(len(contracts)),
	}, nil
}

// GetContract returns one of the owner's contracts. Records of other
// owners are reported as not found.
func (s *Service) GetContract(ctx context.Context, owner, externalID string) (*Contract, error) {
	contract, err := NewQueries(s.txRunner.DB()).GetContractByExternalIDAndOwner(ctx, externalID, owner)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("Contract")
		}
		s.logger.Error("failed to get contract", zap.String("contract_id", externalID), zap.Error(err))
		return nil, errors.DBError(err)
	}
	return &contract, nil
}

// SaveContract creates the owner's record for a contract address or
// updates it in place when it already exists.
func (s *Service) SaveContract(ctx context.Context, owner string, req *SaveContractRequest) (*Contract, error) {
	// 1. Validate input
	address, err := signature.NormalizeAddress(req.ContractAddress)
	if err != nil {
		return nil, errors.InvalidInput("invalid contract address")
	}
	if err := validateABI(req.ABI); err != nil {
		return nil, err
	}

	// 2. Upsert inside a transaction. A deadlock between concurrent first
	// saves of the same contract is retried once.
	var contract *Contract
	const maxAttempts = 2
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		contract, err = pkgdb.WithTxResult(ctx, s.txRunner, func(tx pkgdb.DBTX) (*Contract, error) {
			return upsert(ctx, NewQueries(tx), owner, address, req)
		})
		if err == nil || !pkgdb.IsDeadlock(err) || attempt == maxAttempts {
			break
		}
		s.logger.Warn("contract save deadlocked, retrying",
			zap.String("wallet_address", owner),
			zap.String("contract_address", address),
		)
	}
	if err != nil {
		s.metrics.IncContractWrite("save", metrics.OutcomeError)
		s.logger.Error("failed to save contract",
			zap.String("wallet_address", owner),
			zap.String("contract_address", address),
			zap.Error(err),
		)
		return nil, errors.DBError(err)
	}

	s.metrics.IncContractWrite("save", metrics.OutcomeSuccess)
	s.logger.Info("contract saved",
		zap.String("contract_id", contract.ExternalID),
		zap.String("wallet_address", owner),
		zap.String("contract_address", address),
	)

	// 3. Notify (best-effort)
	if err := s.publisher.PublishContractSaved(ctx, events.ContractSaved{
		ID:              contract.ExternalID,
		OwnerAddress:    owner,
		ContractAddress: contract.ContractAddress,
		Network:         contract.Network.String,
	}); err != nil {
		s.logger.Warn("failed to publish contract saved event", zap.String("contract_id", contract.ExternalID), zap.Error(err))
	}

	return contract, nil
}

func upsert(ctx context.Context, q *Queries, owner, address string, req *SaveContractRequest) (*Contract, error) {
	if _, err := q.UpsertContract(ctx, UpsertContractParams{
		ExternalID:      uuid.NewString(),
		OwnerAddress:    owner,
		ContractAddress: address,
		ABI:             req.ABI,
		Label:           nullString(req.Label),
		Network:         nullString(req.Network),
	}); err != nil {
		return nil, err
	}

	saved, err := q.GetContractByOwnerAndAddress(ctx, owner, address)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteContract removes one of the owner's contracts.
// Unknown ids are NOT_FOUND; records of another wallet are FORBIDDEN.
func (s *Service) DeleteContract(ctx context.Context, owner, externalID string) error {
	err := s.txRunner.WithTx(ctx, func(tx pkgdb.DBTX) error {
		q := NewQueries(tx)

		// 1. Lock the row and check ownership
		recordOwner, err := q.GetContractOwnerForUpdate(ctx, externalID)
		if err != nil {
			if stderrors.Is(err, sql.ErrNoRows) {
				return errors.NotFound("Contract")
			}
			return err
		}
		if recordOwner != owner {
			s.logger.Warn("contract delete by non-owner rejected",
				zap.String("contract_id", externalID),
				zap.String("wallet_address", owner),
			)
			return errors.Forbidden("contract belongs to another wallet")
		}

		// 2. Delete scoped to the owner
		result, err := q.DeleteContractByExternalIDAndOwner(ctx, externalID, owner)
		if err != nil {
			return err
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return errors.NotFound("Contract")
		}
		return nil
	})
	if err != nil {
		if _, ok := errors.AsAppError(err); ok {
			return err
		}
		s.metrics.IncContractWrite("delete", metrics.OutcomeError)
		s.logger.Error("failed to delete contract", zap.String("contract_id", externalID), zap.Error(err))
		return errors.DBError(err)
	}

	s.metrics.IncContractWrite("delete", metrics.OutcomeSuccess)
	s.logger.Info("contract deleted",
		zap.String("contract_id", externalID),
		zap.String("wallet_address", owner),
	)

	if err := s.publisher.PublishContractDeleted(ctx, events.ContractDeleted{
		ID:           externalID,
		OwnerAddress: owner,
	}); err != nil {
		s.logger.Warn("failed to publish contract deleted event", zap.String("contract_id", externalID), zap.Error(err))
	}

	return nil
}

// validateABI accepts a JSON array that parses as an Ethereum contract ABI
func validateABI(raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errors.InvalidInput("abi must be a JSON array")
	}
	if _, err := abi.JSON(bytes.NewReader(trimmed)); err != nil {
		return errors.InvalidInput("invalid contract ABI").WithDetails(map[string]any{"reason": err.Error()})
	}
	return nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
