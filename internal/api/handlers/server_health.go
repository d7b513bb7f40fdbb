package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-relay.io/relay/internal/gateway"
)

// GetLiveness handles GET /health/live (process liveness probe).
func (s *Server) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadiness handles GET /health/ready, the readiness gate on the cached
// collaborator probes. The service is ready only when every registered
// collaborator's last probe succeeded.
func (s *Server) GetReadiness(c *gin.Context) {
	snapshot := s.health.Snapshot()

	checks := make(map[string]string, len(snapshot))
	ready := true
	for name, result := range snapshot {
		switch result.Status {
		case gateway.StatusHealthy:
			checks[name] = "ok"
		default:
			checks[name] = "error"
			ready = false
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !ready {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, gin.H{"status": status, "checks": checks})
}
