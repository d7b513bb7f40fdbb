// Package handlers implements the HTTP surface of CRM Relay: enriched
// view endpoints, the dashboard, the mailbox conversation check, and the
// lead/deal creation endpoints. Route registration lives in internal/app;
// handlers do not register their own routes.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-relay.io/relay/internal/api/middleware"
	"crm-relay.io/relay/internal/gateway"
	apperrors "crm-relay.io/relay/internal/pkg/errors"
	"crm-relay.io/relay/internal/service"
	"crm-relay.io/relay/internal/usecase"
)

// Server implements all API handlers.
type Server struct {
	composer     *service.Composer
	dashboard    *service.DashboardService
	mailbox      *service.MailboxService
	createLeadUC *usecase.CreateLeadUseCase
	createDealUC *usecase.CreateDealUseCase
	health       *gateway.HealthChecker
	jwtCfg       middleware.JWTConfig
}

// ServerDeps holds all dependencies for creating a Server.
// Manual DI, no Wire/Dig.
type ServerDeps struct {
	Composer     *service.Composer
	Dashboard    *service.DashboardService
	Mailbox      *service.MailboxService
	CreateLeadUC *usecase.CreateLeadUseCase
	CreateDealUC *usecase.CreateDealUseCase
	Health       *gateway.HealthChecker
	JWTCfg       middleware.JWTConfig
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		composer:     deps.Composer,
		dashboard:    deps.Dashboard,
		mailbox:      deps.Mailbox,
		createLeadUC: deps.CreateLeadUC,
		createDealUC: deps.CreateDealUC,
		health:       deps.Health,
		jwtCfg:       deps.JWTCfg,
	}
}

// pathID parses the :id path parameter. A non-numeric id aborts with 400
// through the error-handler middleware.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequestField, "id must be a positive integer"))
		return 0, false
	}
	return id, true
}
