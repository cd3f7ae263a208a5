package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahwlsqja/carbon-nft-registry/internal/config"
	"github.com/ahwlsqja/carbon-nft-registry/internal/testutil"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/events"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/metrics"
	"github.com/ahwlsqja/carbon-nft-registry/pkg/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type app struct {
	router *gin.Engine
	mock   sqlmock.Sqlmock
	redis  *miniredis.Miniredis
}

func newApp(t *testing.T, sessionTTL time.Duration) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	sessions, err := session.NewJWTManager([]byte(strings.Repeat("k", 32)), sessionTTL)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, CORSAllowedOrigins: []string{"*"}},
		Auth:   config.AuthConfig{NonceTTL: time.Minute, SessionTTL: sessionTTL},
	}

	router := setupRouter(cfg, zap.NewNop(), Dependencies{
		DB:        database,
		Redis:     rdb,
		Sessions:  sessions,
		Publisher: events.NopPublisher{},
		Metrics:   metrics.New(),
	})
	return &app{router: router, mock: mock, redis: mr}
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// login runs the full challenge/response exchange and returns the session token
func (a *app) login(t *testing.T, wallet *testutil.Wallet) string {
	t.Helper()

	w := a.do(http.MethodPost, "/api/v1/auth/nonce", "", map[string]string{"walletAddress": wallet.Address})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var challenge struct {
		Data struct {
			Nonce   string `json:"nonce"`
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &challenge))

	w = a.do(http.MethodPost, "/api/v1/auth/verify", "", map[string]string{
		"walletAddress": wallet.Address,
		"signature":     wallet.Sign(t, challenge.Data.Message),
		"nonce":         challenge.Data.Nonce,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var verified struct {
		Data struct {
			SessionToken string `json:"sessionToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	return verified.Data.SessionToken
}

func TestLoginThenAccessOwnedResources(t *testing.T) {
	a := newApp(t, time.Hour)
	owner := testutil.NewWallet(t)
	intruder := testutil.NewWallet(t)
	contractID := "0b9c2f0e-3f7a-4c1e-9f63-6f4f0d6b7a11"

	ownerToken := a.login(t, owner)
	intruderToken := a.login(t, intruder)

	// The caller's own session.
	w := a.do(http.MethodGet, "/api/v1/auth/session", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), owner.Lower())

	// List is scoped to the session wallet.
	a.mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(owner.Lower()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	w = a.do(http.MethodGet, "/api/v1/contracts", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Deleting someone else's record is rejected at the ownership check.
	a.mock.ExpectBegin()
	a.mock.ExpectQuery(regexp.QuoteMeta("SELECT owner_address FROM contracts WHERE external_id = ? FOR UPDATE")).
		WithArgs(contractID).
		WillReturnRows(sqlmock.NewRows([]string{"owner_address"}).AddRow(owner.Lower()))
	a.mock.ExpectRollback()
	w = a.do(http.MethodDelete, "/api/v1/contracts/"+contractID, intruderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	assert.NoError(t, a.mock.ExpectationsWereMet())
}

func TestProtectedRoutesRejectMissingAndExpiredSessions(t *testing.T) {
	a := newApp(t, time.Second)
	wallet := testutil.NewWallet(t)

	w := a.do(http.MethodGet, "/api/v1/contracts", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	token := a.login(t, wallet)
	time.Sleep(2 * time.Second)

	w = a.do(http.MethodDelete, "/api/v1/contracts/0b9c2f0e-3f7a-4c1e-9f63-6f4f0d6b7a11", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired session token")

	assert.NoError(t, a.mock.ExpectationsWereMet())
}

func TestOperationalEndpoints(t *testing.T) {
	a := newApp(t, time.Hour)

	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	a.mock.ExpectPing()
	w = a.do(http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "carbon_nft_http_requests_total")

	w = a.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/auth/verify")
}
