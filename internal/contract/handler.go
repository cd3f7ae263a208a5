package contract

import (
	"github.com/ahwlsqja/carbon-nft-registry/internal/common/errors"
	"github.com/ahwlsqja/carbon-nft-registry/internal/common/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the contract registry
type Handler struct {
	service *Service
	gate    gin.HandlerFunc
}

// NewHandler creates a new contract handler. Every route runs behind gate.
func NewHandler(service *Service, gate gin.HandlerFunc) *Handler {
	return &Handler{service: service, gate: gate}
}

// RegisterRoutes registers contract routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts", h.gate)
	{
		contracts.GET("", h.ListContracts)
		contracts.POST("", h.SaveContract)
		contracts.GET("/:id", h.GetContract)
		contracts.DELETE("/:id", h.DeleteContract)
	}
}

// extractAndValidateContractID extracts and validates the contract id from path
func extractAndValidateContractID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.InvalidInput("Invalid UUID format")
	}
	return id, nil
}

// ListContracts godoc
// @Summary List my contracts
// @Description Get all contracts saved by the authenticated wallet, newest first
// @Tags contracts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} middleware.SuccessResponse{data=ListContractsResponse} "Contract list"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /contracts [get]
func (h *Handler) ListContracts(c *gin.Context) {
	result, err := h.service.ListContracts(c.Request.Context(), middleware.WalletAddress(c))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// SaveContract godoc
// @Summary Save a deployed contract
// @Description Create or update the authenticated wallet's record for a contract address
// @Tags contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveContractRequest true "Contract data"
// @Success 201 {object} middleware.SuccessResponse{data=ContractEnvelope} "Contract saved"
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /contracts [post]
func (h *Handler) SaveContract(c *gin.Context) {
	var req SaveContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	contract, err := h.service.SaveContract(c.Request.Context(), middleware.WalletAddress(c), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondCreated(c, ContractEnvelope{Contract: *ToContractResponse(contract)})
}

// GetContract godoc
// @Summary Get contract by ID
// @Description Retrieve one of the authenticated wallet's contracts
// @Tags contracts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID (UUID)"
// @Success 200 {object} middleware.SuccessResponse{data=ContractEnvelope} "Contract details"
// @Failure 400 {object} middleware.ErrorResponse "Invalid UUID format"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "Contract not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /contracts/{id} [get]
func (h *Handler) GetContract(c *gin.Context) {
	id, err := extractAndValidateContractID(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	contract, err := h.service.GetContract(c.Request.Context(), middleware.WalletAddress(c), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, ContractEnvelope{Contract: *ToContractResponse(contract)})
}

// DeleteContract godoc
// @Summary Delete contract
// @Description Delete one of the authenticated wallet's contracts (hard delete)
// @Tags contracts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID (UUID)"
// @Success 204 "Contract deleted"
// @Failure 400 {object} middleware.ErrorResponse "Invalid UUID format"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Contract belongs to another wallet"
// @Failure 404 {object} middleware.ErrorResponse "Contract not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /contracts/{id} [delete]
func (h *Handler) DeleteContract(c *gin.Context) {
	id, err := extractAndValidateContractID(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	if err := h.service.DeleteContract(c.Request.Context(), middleware.WalletAddress(c), id); err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondNoContent(c)
}
