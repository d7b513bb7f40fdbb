package modules

import (
	"context"
	"fmt"

	"crm-relay.io/relay/internal/config"
	"crm-relay.io/relay/internal/gateway"
	"crm-relay.io/relay/internal/gateway/mail"
	"crm-relay.io/relay/internal/gateway/rest"
	"crm-relay.io/relay/internal/pkg/worker"
)

// Infrastructure holds shared cross-cutting dependencies for all modules.
// It is a provider, not a Module.
type Infrastructure struct {
	Config *config.Config
	Pools  *worker.Pools

	// CRM is the backend gateway every composition consumes.
	CRM gateway.CRM
	// Mailbox is nil when no mail server is configured; the conversation
	// check degrades accordingly.
	Mailbox gateway.Mailbox

	HealthCheck *gateway.HealthChecker
}

// NewInfrastructure initializes the worker pools, remote gateways, and
// the collaborator health checker.
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	pools, err := worker.NewPools(ctx, worker.PoolConfig{
		GeneralPoolSize: cfg.Worker.GeneralPoolSize,
		BackendPoolSize: cfg.Worker.BackendPoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("init worker pools: %w", err)
	}

	crm := rest.New(cfg.Backend)

	var mailbox gateway.Mailbox
	if cfg.Mailbox.Enabled {
		mailbox = mail.New(cfg.Mailbox)
	}

	checker := gateway.NewHealthChecker(cfg.Health.ProbeInterval, cfg.Health.ProbeTimeout, pools)
	checker.Register("backend", crm)
	if mailbox != nil {
		checker.Register("mailbox", mailbox)
	}

	return &Infrastructure{
		Config:      cfg,
		Pools:       pools,
		CRM:         crm,
		Mailbox:     mailbox,
		HealthCheck: checker,
	}, nil
}

// Close releases infrastructure resources.
func (i *Infrastructure) Close() {
	if i.HealthCheck != nil {
		i.HealthCheck.Stop()
	}
	if i.Pools != nil {
		i.Pools.Shutdown()
	}
}
