package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/testutil"
)

func TestDashboardStats_EmptyBackend(t *testing.T) {
	crm := testutil.NewFakeCRM()
	svc := NewDashboardService(crm)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Zero(t, stats.LeadsTotal)
	assert.Zero(t, stats.ConversionRate)
	assert.Zero(t, stats.AverageLeadScore)
	assert.Zero(t, stats.AverageDealValue)
	assert.Zero(t, stats.AverageQuotationValue)
	assert.NotNil(t, stats.LeadsByStatus)
	assert.NotNil(t, stats.DealsByStage)
	assert.NotNil(t, stats.EmailsByImportance)

	// All six collections are fetched exactly once.
	assert.Equal(t, 6, crm.TotalCalls())
}

func TestDashboardStats_Reductions(t *testing.T) {
	crm := testutil.NewFakeCRM()
	crm.LeadsByID[1] = domain.Lead{ID: 1, Status: "new", Source: "web", Score: 40}
	crm.LeadsByID[2] = domain.Lead{ID: 2, Status: "converted", Source: "web", Score: 80}
	crm.LeadsByID[3] = domain.Lead{ID: 3, Status: "converted", Source: "referral", Score: 60}
	crm.LeadsByID[4] = domain.Lead{ID: 4, Status: "lost", Source: "cold_call", Score: 20}

	crm.CustomersByID[7] = domain.Customer{ID: 7}

	crm.DealsByID[10] = domain.Deal{ID: 10, Stage: "won", Value: 100}
	crm.DealsByID[11] = domain.Deal{ID: 11, Stage: "won", Value: 300}
	crm.DealsByID[12] = domain.Deal{ID: 12, Stage: "proposal", Value: 200}

	crm.QuotationsByID[20] = domain.Quotation{ID: 20, Status: "sent", Total: 150}
	crm.QuotationsByID[21] = domain.Quotation{ID: 21, Status: "accepted", Total: 250}

	crm.ActivitiesByID[30] = domain.Activity{ID: 30, Category: domain.CategoryCall, Priority: "high"}
	crm.ActivitiesByID[31] = domain.Activity{ID: 31, Category: domain.CategoryCall, Priority: "low"}
	crm.ActivitiesByID[32] = domain.Activity{ID: 32, Category: domain.CategoryNote, Priority: "high"}

	crm.EmailsByID[40] = domain.Email{ID: 40, Unread: true, Flagged: true, Importance: "high"}
	crm.EmailsByID[41] = domain.Email{ID: 41, Synced: true, Importance: "normal"}

	svc := NewDashboardService(crm)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.LeadsTotal)
	assert.Equal(t, 2, stats.LeadsByStatus["converted"])
	assert.Equal(t, 2, stats.LeadsBySource["web"])
	assert.InDelta(t, 0.5, stats.ConversionRate, 1e-9)
	assert.InDelta(t, 50.0, stats.AverageLeadScore, 1e-9)

	assert.Equal(t, 1, stats.CustomersTotal)

	assert.Equal(t, 3, stats.DealsTotal)
	assert.Equal(t, 2, stats.DealsByStage["won"])
	assert.InDelta(t, 400.0, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 200.0, stats.AverageDealValue, 1e-9)

	assert.Equal(t, 2, stats.QuotationsTotal)
	assert.InDelta(t, 400.0, stats.TotalQuotationValue, 1e-9)
	assert.InDelta(t, 200.0, stats.AverageQuotationValue, 1e-9)

	assert.Equal(t, 3, stats.ActivitiesTotal)
	assert.Equal(t, 2, stats.ActivitiesByCategory["call"])
	assert.Equal(t, 2, stats.ActivitiesByPriority["high"])

	assert.Equal(t, 2, stats.EmailsTotal)
	assert.Equal(t, 1, stats.UnreadEmails)
	assert.Equal(t, 1, stats.FlaggedEmails)
	assert.Equal(t, 1, stats.SyncedEmails)
	assert.Equal(t, 1, stats.EmailsByImportance["high"])
}

func TestDashboardStats_FetchFailureFailsAggregation(t *testing.T) {
	crm := testutil.NewFakeCRM()
	boom := errors.New("backend down")
	crm.FailOn["deals.list"] = boom
	svc := NewDashboardService(crm)

	stats, err := svc.Stats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, stats)
}
