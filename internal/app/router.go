package app

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crm-relay.io/relay/internal/api"
	"crm-relay.io/relay/internal/api/handlers"
	"crm-relay.io/relay/internal/api/middleware"
	"crm-relay.io/relay/internal/config"
)

// Public routes that do NOT require JWT authentication.
var publicPrefixes = []string{
	"/health/",
	"/metrics",
}

func newRouter(cfg *config.Config, server *handlers.Server, jwtCfg middleware.JWTConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.ErrorHandler(),
	)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: cfg.Server.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(jwtSkipPublic(jwtCfg.SigningKey))
	router.Use(middleware.MustOpenAPIValidator(api.OpenAPISpec))

	router.GET("/health/live", server.GetLiveness)
	router.GET("/health/ready", server.GetReadiness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		views := v1.Group("/views")
		views.GET("/leads/:id", server.GetLeadView)
		views.GET("/customers/:id", server.GetCustomerView)
		views.GET("/deals/:id", server.GetDealView)
		views.GET("/contacts/:id", server.GetContactView)
		views.GET("/activities/:id", server.GetActivityView)
		views.GET("/emails/:id", server.GetEmailView)

		v1.GET("/dashboard/stats", server.GetDashboardStats)
		v1.GET("/mailbox/conversations/:id/check", server.GetConversationCheck)

		v1.POST("/leads", server.CreateLead)
		v1.POST("/deals", server.CreateDeal)
	}

	return router
}

// jwtSkipPublic returns middleware that applies JWT auth only on
// non-public routes.
func jwtSkipPublic(signingKey []byte) gin.HandlerFunc {
	jwtMw := middleware.JWTAuth(signingKey)
	return func(c *gin.Context) {
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		jwtMw(c)
	}
}
