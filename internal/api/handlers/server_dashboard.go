package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "crm-relay.io/relay/internal/pkg/errors"
)

// GetDashboardStats handles GET /api/v1/dashboard/stats.
func (s *Server) GetDashboardStats(c *gin.Context) {
	stats, err := s.dashboard.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeDashboardFailed,
			"could not aggregate dashboard statistics", http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, stats)
}
