package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "crm-relay.io/relay/internal/pkg/errors"
	"crm-relay.io/relay/internal/pkg/logger"
	"crm-relay.io/relay/internal/usecase"
)

// CreateLead handles POST /api/v1/leads.
func (s *Server) CreateLead(c *gin.Context) {
	var input usecase.CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed,
			"invalid lead creation payload", http.StatusBadRequest))
		return
	}

	out, err := s.createLeadUC.Execute(c.Request.Context(), input)
	if err != nil {
		logger.Error("lead creation failed",
			zap.String("title", input.Lead.Title),
			zap.Error(err),
		)
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeLeadCreateFail,
			"could not create lead", http.StatusBadGateway))
		return
	}
	c.JSON(http.StatusCreated, out)
}

// CreateDeal handles POST /api/v1/deals.
func (s *Server) CreateDeal(c *gin.Context) {
	var input usecase.CreateDealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed,
			"invalid deal creation payload", http.StatusBadRequest))
		return
	}

	out, err := s.createDealUC.Execute(c.Request.Context(), input)
	if err != nil {
		logger.Error("deal creation failed",
			zap.String("title", input.Deal.Title),
			zap.Error(err),
		)
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeDealCreateFail,
			"could not create deal", http.StatusBadGateway))
		return
	}
	c.JSON(http.StatusCreated, out)
}
