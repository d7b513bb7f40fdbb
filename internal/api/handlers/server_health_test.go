package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-relay.io/relay/internal/gateway"
	"crm-relay.io/relay/internal/testutil"
)

func healthRouter(checker *gateway.HealthChecker) *gin.Engine {
	srv := NewServer(ServerDeps{Health: checker})
	r := gin.New()
	r.GET("/health/live", srv.GetLiveness)
	r.GET("/health/ready", srv.GetReadiness)
	return r
}

func TestGetLiveness(t *testing.T) {
	w := httptest.NewRecorder()
	healthRouter(gateway.NewHealthChecker(time.Minute, time.Second, nil)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetReadiness_AllHealthy(t *testing.T) {
	checker := gateway.NewHealthChecker(time.Minute, time.Second, nil)
	checker.Register("backend", testutil.NewFakeCRM())
	checker.Register("mailbox", testutil.NewFakeMailbox())
	checker.Check(context.Background(), "backend")
	checker.Check(context.Background(), "mailbox")

	w := httptest.NewRecorder()
	healthRouter(checker).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"backend":"ok"`)
	assert.Contains(t, w.Body.String(), `"mailbox":"ok"`)
}

func TestGetReadiness_DegradedCollaborator(t *testing.T) {
	checker := gateway.NewHealthChecker(time.Minute, time.Second, nil)
	mailbox := testutil.NewFakeMailbox()
	mailbox.Err = errors.New("connection refused")
	checker.Register("mailbox", mailbox)
	checker.Check(context.Background(), "mailbox")

	w := httptest.NewRecorder()
	healthRouter(checker).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestGetReadiness_UnprobedIsNotReady(t *testing.T) {
	checker := gateway.NewHealthChecker(time.Minute, time.Second, nil)
	checker.Register("backend", testutil.NewFakeCRM())

	w := httptest.NewRecorder()
	healthRouter(checker).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	// Registered but never probed means UNKNOWN, which gates readiness.
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
