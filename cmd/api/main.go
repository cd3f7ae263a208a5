package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahwlsqja/carbon-nft-registry/internal/config"
	pkgdb "github.com/ahwlsqja/carbon-nft-registry/pkg/db"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/events"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/metrics"
	pkgredis "github.com/ahwlsqja/carbon-nft-registry/pkg/redis"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title Carbon NFT Registry API
// @version 1.0
// @description Wallet sign-in and deployed contract registry for carbon credit NFTs

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token from /auth/verify, sent as "Bearer {token}"

func main() {
	// 1) 로거 초기화
	logger, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 2) 설정 로드 (SESSION_JWT_SECRET은 로그에 남기지 않는다)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting server",
		zap.String("environment", cfg.Server.Environment),
		zap.String("addr", cfg.Server.Addr()),
		zap.Duration("nonce_ttl", cfg.Auth.NonceTTL),
		zap.Duration("session_ttl", cfg.Auth.SessionTTL),
	)

	// 3) DB 초기화
	db, err := pkgdb.New(cfg.Database.Pool())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 4) Redis 초기화
	rdb := pkgredis.New(cfg.Redis.Client())
	defer rdb.Close()

	// 5) 연결 테스트 (fail-fast)
	if err := testConnections(db, rdb); err != nil {
		logger.Fatal("failed to test connections", zap.Error(err))
	}

	// 6) 세션 매니저
	sessions, err := session.NewJWTManager([]byte(cfg.Auth.SessionSecret), cfg.Auth.SessionTTL)
	if err != nil {
		logger.Fatal("failed to create session manager", zap.Error(err))
	}

	// 7) 이벤트 퍼블리셔
	publisher, closePublisher, err := initPublisher(cfg.Events, rdb, logger)
	if err != nil {
		logger.Fatal("failed to create event publisher", zap.Error(err))
	}
	defer closePublisher()

	// 8) 라우터 구성
	router := setupRouter(cfg, logger, Dependencies{
		DB:        db,
		Redis:     rdb,
		Sessions:  sessions,
		Publisher: publisher,
		Metrics:   metrics.New(),
	})

	// 9) HTTP 서버 생성
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 10) 서버 비동기 시작
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("swagger", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port)),
	)

	// 11) 종료 시그널 대기
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// 12) Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func initLogger() (*zap.Logger, error) {
	env := os.Getenv("ENVIRONMENT")
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func testConnections(db *sql.DB, rdb redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pkgdb.Ping(ctx, db); err != nil {
		return err
	}

	return pkgredis.Ping(ctx, rdb)
}

// initPublisher returns the domain event publisher and its close func.
// With events disabled nothing is published.
func initPublisher(cfg config.EventsConfig, rdb redis.UniversalClient, logger *zap.Logger) (events.Publisher, func(), error) {
	if !cfg.Enabled {
		logger.Info("domain events disabled")
		return events.NopPublisher{}, func() {}, nil
	}

	stream, err := events.NewRedisStreamPublisher(rdb, logger)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := stream.Close(); err != nil {
			logger.Warn("failed to close event publisher", zap.Error(err))
		}
	}
	return events.NewWatermillPublisher(stream), closeFn, nil
}
