package modules

import (
	"context"

	"crm-relay.io/relay/internal/api/handlers"
	"crm-relay.io/relay/internal/service"
)

// ViewsModule wires the read side: the view composer, the dashboard
// aggregator, and the mailbox conversation check.
type ViewsModule struct {
	composer  *service.Composer
	dashboard *service.DashboardService
	mailbox   *service.MailboxService
}

// NewViewsModule creates the views module with explicit constructor wiring.
func NewViewsModule(infra *Infrastructure) *ViewsModule {
	mailboxSvc := service.NewMailboxService(infra.Mailbox)
	return &ViewsModule{
		composer:  service.NewComposer(infra.CRM, mailboxSvc, infra.Config.Worker.ComposeConcurrency),
		dashboard: service.NewDashboardService(infra.CRM),
		mailbox:   mailboxSvc,
	}
}

func (m *ViewsModule) Name() string { return "views" }

func (m *ViewsModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	if deps == nil {
		return
	}
	deps.Composer = m.composer
	deps.Dashboard = m.dashboard
	deps.Mailbox = m.mailbox
}

func (m *ViewsModule) Shutdown(context.Context) error { return nil }
