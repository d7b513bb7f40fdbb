package modules

import (
	"crm-relay.io/relay/internal/api/handlers"
	"crm-relay.io/relay/internal/api/middleware"
	"crm-relay.io/relay/internal/config"
)

// NewServerDeps builds base server deps then lets each module contribute
// explicit wiring.
func NewServerDeps(cfg *config.Config, infra *Infrastructure, mods []Module) handlers.ServerDeps {
	deps := handlers.ServerDeps{
		Health: infra.HealthCheck,
		JWTCfg: middleware.JWTConfig{
			SigningKey: []byte(cfg.Security.APISigningKey),
			Issuer:     cfg.Security.JWTIssuer,
			ExpiresIn:  cfg.Security.TokenLifetime,
		},
	}
	for _, mod := range mods {
		if mod == nil {
			continue
		}
		mod.ContributeServerDeps(&deps)
	}
	return deps
}
