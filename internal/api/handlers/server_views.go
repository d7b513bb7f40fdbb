package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "crm-relay.io/relay/internal/pkg/errors"
)

// GetLeadView handles GET /api/v1/views/leads/:id.
func (s *Server) GetLeadView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := s.composer.ComposeLead(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(apperrors.ErrComposeFailed(err))
		return
	}
	if view == nil {
		_ = c.Error(apperrors.NotFound(apperrors.CodeLeadNotFound, "lead not found"))
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetCustomerView handles GET /api/v1/views/customers/:id.
func (s *Server) GetCustomerView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := s.composer.ComposeCustomer(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(apperrors.ErrComposeFailed(err))
		return
	}
	if view == nil {
		_ = c.Error(apperrors.NotFound(apperrors.CodeCustomerNotFound, "customer not found"))
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetDealView handles GET /api/v1/views/deals/:id.
func (s *Server) GetDealView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := s.composer.ComposeDeal(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(apperrors.ErrComposeFailed(err))
		return
	}
	if view == nil {
		_ = c.Error(apperrors.NotFound(apperrors.CodeDealNotFound, "deal not found"))
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetContactView handles GET /api/v1/views/contacts/:id.
func (s *Server) GetContactView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := s.composer.ComposeContact(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(apperrors.ErrComposeFailed(err))
		return
	}
	if view == nil {
		_ = c.Error(apperrors.NotFound(apperrors.CodeContactNotFound, "contact not found"))
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetActivityView handles GET /api/v1/views/activities/:id.
func (s *Server) GetActivityView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := s.composer.ComposeActivity(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(apperrors.ErrComposeFailed(err))
		return
	}
	if view == nil {
		_ = c.Error(apperrors.NotFound(apperrors.CodeActivityNotFound, "activity not found"))
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetEmailView handles GET /api/v1/views/emails/:id.
func (s *Server) GetEmailView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := s.composer.ComposeEmail(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(apperrors.ErrComposeFailed(err))
		return
	}
	if view == nil {
		_ = c.Error(apperrors.NotFound(apperrors.CodeEmailNotFound, "email not found"))
		return
	}
	c.JSON(http.StatusOK, view)
}
