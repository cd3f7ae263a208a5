package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Topics
const (
	TopicWalletAuthenticated = "carbon-nft.auth.authenticated"
	TopicContractSaved       = "carbon-nft.contract.saved"
	TopicContractDeleted     = "carbon-nft.contract.deleted"
)

// WalletAuthenticated is emitted after a session was issued
type WalletAuthenticated struct {
	WalletAddress string    `json:"wallet_address"`
	SessionID     string    `json:"session_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ContractSaved is emitted after a contract record was created or updated
type ContractSaved struct {
	ID              string `json:"id"`
	OwnerAddress    string `json:"owner_address"`
	ContractAddress string `json:"contract_address"`
	Network         string `json:"network,omitempty"`
}

// ContractDeleted is emitted after a contract record was removed
type ContractDeleted struct {
	ID           string `json:"id"`
	OwnerAddress string `json:"owner_address"`
}

// Publisher publishes domain events for other services
type Publisher interface {
	PublishWalletAuthenticated(ctx context.Context, event WalletAuthenticated) error
	PublishContractSaved(ctx context.Context, event ContractSaved) error
	PublishContractDeleted(ctx context.Context, event ContractDeleted) error
}

// WatermillPublisher implements the Publisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

// Compile-time interface compliance check
var _ Publisher = (*WatermillPublisher)(nil)

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

func (p *WatermillPublisher) PublishWalletAuthenticated(ctx context.Context, event WalletAuthenticated) error {
	return p.publish(ctx, TopicWalletAuthenticated, event.WalletAddress, event)
}

func (p *WatermillPublisher) PublishContractSaved(ctx context.Context, event ContractSaved) error {
	return p.publish(ctx, TopicContractSaved, event.OwnerAddress, event)
}

func (p *WatermillPublisher) PublishContractDeleted(ctx context.Context, event ContractDeleted) error {
	return p.publish(ctx, TopicContractDeleted, event.OwnerAddress, event)
}

func (p *WatermillPublisher) publish(ctx context.Context, topic, walletAddress string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("wallet_address", walletAddress)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher drops every event. Used when events are disabled.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) PublishWalletAuthenticated(context.Context, WalletAuthenticated) error {
	return nil
}

func (NopPublisher) PublishContractSaved(context.Context, ContractSaved) error { return nil }

func (NopPublisher) PublishContractDeleted(context.Context, ContractDeleted) error { return nil }
