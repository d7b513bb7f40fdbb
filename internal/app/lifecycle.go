package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"crm-relay.io/relay/internal/pkg/logger"
)

// Start starts all background services (collaborator health probes).
func (a *Application) Start(ctx context.Context) error {
	if a.Infra != nil && a.Infra.HealthCheck != nil {
		if err := a.Infra.HealthCheck.Start(); err != nil {
			return fmt.Errorf("start health checker: %w", err)
		}
		logger.Info("Collaborator health probes started")
	}
	return nil
}

// Shutdown gracefully shuts down all application components.
func (a *Application) Shutdown() {
	shutdownCtx := context.Background()

	for _, mod := range a.Modules {
		if mod == nil {
			continue
		}
		if err := mod.Shutdown(shutdownCtx); err != nil {
			logger.Warn("module shutdown returned error",
				zap.String("module", mod.Name()),
				zap.Error(err),
			)
		}
	}

	if a.Infra != nil {
		a.Infra.Close()
	}
}
