package main

import (
	"database/sql"
	"fmt"

	"github.com/ahwlsqja/carbon-nft-registry/docs"
	"github.com/ahwlsqja/carbon-nft-registry/internal/auth"
	"github.com/ahwlsqja/carbon-nft-registry/internal/common/handler"
	"github.com/ahwlsqja/carbon-nft-registry/internal/common/middleware"
	"github.com/ahwlsqja/carbon-nft-registry/internal/config"
	"github.com/ahwlsqja/carbon-nft-registry/internal/contract"
	pkgdb "github.com/ahwlsqja/carbon-nft-registry/pkg/db"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/events"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/metrics"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/nonce"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/session"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/signature"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the shared clients the router wires into handlers
type Dependencies struct {
	DB        *sql.DB
	Redis     redis.UniversalClient
	Sessions  session.Manager
	Publisher events.Publisher
	Metrics   *metrics.Metrics
}

func setupRouter(cfg *config.Config, logger *zap.Logger, deps Dependencies) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(deps.Metrics.Middleware())

	// Swagger 설정
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, logger)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Metrics
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// ============================================================================
	// Dependencies Setup
	// ============================================================================

	// TxRunner for transaction management
	txRunner := pkgdb.NewTxRunner(deps.DB)

	// Nonce store for single-use login challenges
	nonceStore := nonce.NewRedisStoreWithTTL(deps.Redis, cfg.Auth.NonceTTL, logger)

	// personal_sign verifier
	verifier := signature.NewEthVerifier(logger)

	// Authorization gate shared by every protected route
	gate := middleware.RequireSession(deps.Sessions)

	// ============================================================================
	// Service & Handler Setup
	// ============================================================================

	authService := auth.NewService(nonceStore, verifier, deps.Sessions, deps.Publisher, deps.Metrics, logger)
	authHandler := auth.NewHandler(authService, gate)

	contractService := contract.NewService(txRunner, deps.Publisher, deps.Metrics, logger)
	contractHandler := contract.NewHandler(contractService, gate)

	// ============================================================================
	// Route Registration
	// ============================================================================

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		contractHandler.RegisterRoutes(v1)
	}

	return router
}
