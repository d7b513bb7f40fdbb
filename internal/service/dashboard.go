package service

import (
	"context"
	"fmt"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
	"crm-relay.io/relay/internal/pkg/fanout"
)

// DashboardService aggregates backend collections into flat statistics.
// It fetches all six collections concurrently and reduces them locally;
// no partial dashboard is ever returned.
type DashboardService struct {
	crm gateway.CRM
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(crm gateway.CRM) *DashboardService {
	return &DashboardService{crm: crm}
}

// Stats computes the dashboard snapshot. Any fetch failure fails the
// whole aggregation.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		leads      []domain.Lead
		customers  []domain.Customer
		deals      []domain.Deal
		quotations []domain.Quotation
		activities []domain.Activity
		emails     []domain.Email
	)

	g := fanout.New(ctx)
	g.Go(func(ctx context.Context) error {
		var err error
		leads, err = s.crm.Leads().List(ctx)
		return err
	})
	g.Go(func(ctx context.Context) error {
		var err error
		customers, err = s.crm.Customers().List(ctx)
		return err
	})
	g.Go(func(ctx context.Context) error {
		var err error
		deals, err = s.crm.Deals().List(ctx)
		return err
	})
	g.Go(func(ctx context.Context) error {
		var err error
		quotations, err = s.crm.Quotations().List(ctx)
		return err
	})
	g.Go(func(ctx context.Context) error {
		var err error
		activities, err = s.crm.Activities().List(ctx)
		return err
	})
	g.Go(func(ctx context.Context) error {
		var err error
		emails, err = s.crm.Emails().List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard aggregation: %w", err)
	}

	stats := &domain.DashboardStats{
		LeadsByStatus:        map[string]int{},
		LeadsBySource:        map[string]int{},
		DealsByStage:         map[string]int{},
		QuotationsByStatus:   map[string]int{},
		ActivitiesByCategory: map[string]int{},
		ActivitiesByPriority: map[string]int{},
		EmailsByImportance:   map[string]int{},
	}
	reduceLeads(stats, leads)
	stats.CustomersTotal = len(customers)
	reduceDeals(stats, deals)
	reduceQuotations(stats, quotations)
	reduceActivities(stats, activities)
	reduceEmails(stats, emails)
	return stats, nil
}

func reduceLeads(stats *domain.DashboardStats, leads []domain.Lead) {
	stats.LeadsTotal = len(leads)
	converted := 0
	var scoreSum float64
	for _, lead := range leads {
		stats.LeadsByStatus[lead.Status]++
		stats.LeadsBySource[lead.Source]++
		if lead.Status == "converted" {
			converted++
		}
		scoreSum += lead.Score
	}
	// Ratios over empty collections are defined as zero, never NaN.
	if len(leads) > 0 {
		stats.ConversionRate = float64(converted) / float64(len(leads))
		stats.AverageLeadScore = scoreSum / float64(len(leads))
	}
}

func reduceDeals(stats *domain.DashboardStats, deals []domain.Deal) {
	stats.DealsTotal = len(deals)
	var valueSum float64
	for _, deal := range deals {
		stats.DealsByStage[deal.Stage]++
		valueSum += deal.Value
		if deal.Stage == "won" {
			stats.TotalRevenue += deal.Value
		}
	}
	if len(deals) > 0 {
		stats.AverageDealValue = valueSum / float64(len(deals))
	}
}

func reduceQuotations(stats *domain.DashboardStats, quotations []domain.Quotation) {
	stats.QuotationsTotal = len(quotations)
	for _, q := range quotations {
		stats.QuotationsByStatus[q.Status]++
		stats.TotalQuotationValue += q.Total
	}
	if len(quotations) > 0 {
		stats.AverageQuotationValue = stats.TotalQuotationValue / float64(len(quotations))
	}
}

func reduceActivities(stats *domain.DashboardStats, activities []domain.Activity) {
	stats.ActivitiesTotal = len(activities)
	for _, a := range activities {
		stats.ActivitiesByCategory[string(a.Category)]++
		stats.ActivitiesByPriority[a.Priority]++
	}
}

func reduceEmails(stats *domain.DashboardStats, emails []domain.Email) {
	stats.EmailsTotal = len(emails)
	for _, e := range emails {
		if e.Unread {
			stats.UnreadEmails++
		}
		if e.Flagged {
			stats.FlaggedEmails++
		}
		if e.Synced {
			stats.SyncedEmails++
		}
		stats.EmailsByImportance[e.Importance]++
	}
}
