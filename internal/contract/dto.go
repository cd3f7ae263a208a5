package contract

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Request DTOs
// ============================================================================

// SaveContractRequest represents the request body for saving a deployed contract
// NOTE: address and ABI are validated in the service layer
type SaveContractRequest struct {
	ContractAddress string          `json:"contractAddress" binding:"required" example:"0x5FbDB2315678afecb367f032d93F642f64180aa3"`
	ABI             json.RawMessage `json:"abi" binding:"required" swaggertype:"array,object"`
	Label           string          `json:"label,omitempty" binding:"omitempty,max=100" example:"Carbon Credits 2024"`
	Network         string          `json:"network,omitempty" binding:"omitempty,max=64" example:"sepolia"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ContractResponse represents a contract record in API responses
type ContractResponse struct {
	ID              string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerAddress    string          `json:"ownerAddress" example:"0x742d35cc6634c0532925a3b844bc454e4438f44e"`
	ContractAddress string          `json:"contractAddress" example:"0x5fbdb2315678afecb367f032d93f642f64180aa3"`
	ABI             json.RawMessage `json:"abi" swaggertype:"array,object"`
	Label           string          `json:"label,omitempty" example:"Carbon Credits 2024"`
	Network         string          `json:"network,omitempty" example:"sepolia"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ContractEnvelope wraps a single contract
type ContractEnvelope struct {
	Contract ContractResponse `json:"contract"`
}

// ListContractsResponse represents the contract list response
type ListContractsResponse struct {
	Contracts []ContractResponse `json:"contracts"`
	Total     int64              `json:"total"`
}

// ============================================================================
// Converters
// ============================================================================

// ToContractResponse converts a Contract row to ContractResponse
func ToContractResponse(c *Contract) *ContractResponse {
	if c == nil {
		return nil
	}

	response := &ContractResponse{
		ID:              c.ExternalID,
		OwnerAddress:    c.OwnerAddress,
		ContractAddress: c.ContractAddress,
		ABI:             c.ABI,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	if c.Label.Valid {
		response.Label = c.Label.String
	}
	if c.Network.Valid {
		response.Network = c.Network.String
	}

	return response
}

// ToContractResponseList converts []Contract to []ContractResponse
func ToContractResponseList(contracts []Contract) []ContractResponse {
	responses := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		responses = append(responses, *ToContractResponse(&contracts[i]))
	}
	return responses
}
