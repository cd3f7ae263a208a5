package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/contracts/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/contracts/a", "/contracts/b", "/nope"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/contracts/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestIncAuth(t *testing.T) {
	m := New()
	m.IncAuth(StageVerify, OutcomeInvalidSignature)
	m.IncAuth(StageVerify, OutcomeInvalidSignature)
	m.IncAuth(StageVerify, OutcomeSuccess)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues(StageVerify, OutcomeInvalidSignature)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues(StageVerify, OutcomeSuccess)))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncAuth(StageNonce, OutcomeSuccess)
		m.IncContractWrite("save", OutcomeSuccess)
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.IncContractWrite("delete", OutcomeSuccess)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `carbon_nft_contract_writes_total{operation="delete",outcome="success"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
