package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const readyTimeout = 3 * time.Second

// DBPinger is satisfied by *sql.DB
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db     DBPinger
	rdb    redis.UniversalClient
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DBPinger, rdb redis.UniversalClient, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		rdb:    rdb,
		logger: logger,
	}
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyResponse represents readiness check response
type ReadyResponse struct {
	Status string `json:"status" example:"ok"`
	DB     string `json:"db" example:"ok"`
	Redis  string `json:"redis" example:"ok"`
}

// Health godoc
// @Summary Health check
// @Description Returns server health status
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness check
// @Description Returns readiness including MySQL (contract registry) and Redis (nonce store) connectivity
// @Tags health
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	response := ReadyResponse{
		Status: "ok",
		DB:     "ok",
		Redis:  "ok",
	}
	statusCode := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("readiness: database ping failed", zap.Error(err))
		response.DB = "error"
		response.Status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	// Without Redis no nonce can be issued or consumed.
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		h.logger.Warn("readiness: redis ping failed", zap.Error(err))
		response.Redis = "error"
		response.Status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}
