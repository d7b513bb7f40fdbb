package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConversationCheck handles GET /api/v1/mailbox/conversations/:id/check.
// The check never fails: every degraded path still answers 200 with the
// empty result.
func (s *Server) GetConversationCheck(c *gin.Context) {
	check := s.mailbox.CheckConversation(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, check)
}
