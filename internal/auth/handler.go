package auth

import (
	"github.com/ahwlsqja/carbon-nft-registry/internal/common/errors"
	"github.com/ahwlsqja/carbon-nft-registry/internal/common/middleware"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for wallet authentication
type Handler struct {
	service *Service
	gate    gin.HandlerFunc
}

// NewHandler creates a new auth handler. gate protects the session endpoint.
func NewHandler(service *Service, gate gin.HandlerFunc) *Handler {
	return &Handler{service: service, gate: gate}
}

// RegisterRoutes registers auth routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/nonce", h.IssueNonce)
		auth.POST("/verify", h.Verify)
		auth.GET("/session", h.gate, h.GetSession)
	}
}

// IssueNonce godoc
// @Summary Request a login challenge
// @Description Issue a single-use nonce and the message the wallet must personal_sign
// @Tags auth
// @Accept json
// @Produce json
// @Param request body NonceRequest true "Wallet address"
// @Success 200 {object} middleware.SuccessResponse{data=NonceResponse} "Challenge"
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 500 {object} middleware.ErrorResponse "Storage error"
// @Router /auth/nonce [post]
func (h *Handler) IssueNonce(c *gin.Context) {
	var req NonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	result, err := h.service.IssueNonce(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// Verify godoc
// @Summary Exchange a signed challenge for a session
// @Description Verify the personal_sign signature over the challenge and issue a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Signed challenge"
// @Success 200 {object} middleware.SuccessResponse{data=VerifyResponse} "Session issued"
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 401 {object} middleware.ErrorResponse "Invalid or expired nonce, or invalid signature"
// @Failure 500 {object} middleware.ErrorResponse "Storage error"
// @Router /auth/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	result, err := h.service.Verify(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// GetSession godoc
// @Summary Current session
// @Description Return the wallet bound to the bearer session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} middleware.SuccessResponse{data=SessionResponse} "Session"
// @Failure 401 {object} middleware.ErrorResponse "Missing, invalid or expired session token"
// @Router /auth/session [get]
func (h *Handler) GetSession(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		middleware.RespondError(c, errors.Unauthorized("invalid or expired session token"))
		return
	}

	middleware.RespondOK(c, SessionResponse{
		WalletAddress: sess.WalletAddress,
		IssuedAt:      sess.IssuedAt,
		ExpiresAt:     sess.ExpiresAt,
	})
}
