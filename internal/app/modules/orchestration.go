package modules

import (
	"context"

	"crm-relay.io/relay/internal/api/handlers"
	"crm-relay.io/relay/internal/usecase"
)

// OrchestrationModule wires the write side: lead and deal creation.
type OrchestrationModule struct {
	createLeadUC *usecase.CreateLeadUseCase
	createDealUC *usecase.CreateDealUseCase
}

// NewOrchestrationModule creates the orchestration module.
func NewOrchestrationModule(infra *Infrastructure) *OrchestrationModule {
	return &OrchestrationModule{
		createLeadUC: usecase.NewCreateLeadUseCase(infra.CRM),
		createDealUC: usecase.NewCreateDealUseCase(infra.CRM),
	}
}

func (m *OrchestrationModule) Name() string { return "orchestration" }

func (m *OrchestrationModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	if deps == nil {
		return
	}
	deps.CreateLeadUC = m.createLeadUC
	deps.CreateDealUC = m.createDealUC
}

func (m *OrchestrationModule) Shutdown(context.Context) error { return nil }
