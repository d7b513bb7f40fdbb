package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/testutil"
)

func seedDealGraph(crm *testutil.FakeCRM) {
	crm.CustomersByID[7] = domain.Customer{ID: 7, Name: "Vandelay Industries"}
	crm.ContactsByID[9] = domain.Contact{ID: 9, FirstName: "Ada"}
	crm.LeadsByID[42] = domain.Lead{ID: 42, Title: "Origin lead", Status: "converted"}
	crm.DealsByID[11] = domain.Deal{
		ID:         11,
		Title:      "Expansion",
		Stage:      "proposal",
		Value:      50000,
		CustomerID: int64Ptr(7),
		ContactID:  int64Ptr(9),
		LeadID:     int64Ptr(42),
	}

	dealRef := domain.Ref(domain.RelationDeal, 11)
	leadRef := domain.Ref(domain.RelationLead, 42)
	crm.ActivitiesByRelation[dealRef] = []domain.Activity{
		{ID: 100, Subject: "Proposal review", Relation: dealRef, CreatedAt: at(5)},
	}
	crm.ActivitiesByRelation[leadRef] = []domain.Activity{
		{ID: 101, Subject: "Qualification call", Relation: leadRef, CreatedAt: at(60)},
		{ID: 102, Subject: "Follow-up email", Relation: leadRef, CreatedAt: at(2)},
	}

	crm.QuotationsByID[500] = domain.Quotation{ID: 500, Number: "Q-500", Status: "sent", Total: 48000}
	crm.DealQuotationsByDeal[11] = []domain.DealQuotation{
		{ID: 1, DealID: 11, QuotationID: 500},
		{ID: 2, DealID: 11, QuotationID: 501}, // quotation record gone
	}
	crm.PipelineLogsByDeal[11] = []domain.PipelineLog{
		{ID: 1, DealID: 11, FromStage: "qualification", ToStage: "proposal"},
	}
}

func TestComposeDeal_MergesLeadActivitiesWithProvenance(t *testing.T) {
	crm := testutil.NewFakeCRM()
	seedDealGraph(crm)
	c := newComposer(crm, nil)

	view, err := c.ComposeDeal(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, view)

	require.NotNil(t, view.Lead)
	assert.Equal(t, "Origin lead", view.Lead.Title)

	require.Len(t, view.Activities, 3)
	// Merged collection is ordered newest first regardless of origin.
	assert.Equal(t, "Follow-up email", view.Activities[0].Subject)
	assert.Equal(t, "Proposal review", view.Activities[1].Subject)
	assert.Equal(t, "Qualification call", view.Activities[2].Subject)

	byID := map[int64]domain.EnrichedActivity{}
	for _, a := range view.Activities {
		byID[a.ID] = a
	}
	assert.False(t, byID[100].FromLead)
	assert.True(t, byID[101].FromLead)
	assert.True(t, byID[102].FromLead)
}

func TestComposeDeal_JoinsQuotations(t *testing.T) {
	crm := testutil.NewFakeCRM()
	seedDealGraph(crm)
	c := newComposer(crm, nil)

	view, err := c.ComposeDeal(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, view.Quotations, 2)

	byLink := map[int64]domain.DealQuotationView{}
	for _, q := range view.Quotations {
		byLink[q.DealQuotation.ID] = q
	}
	require.NotNil(t, byLink[1].Quotation)
	assert.Equal(t, "Q-500", byLink[1].Quotation.Number)
	assert.Nil(t, byLink[2].Quotation)

	require.Len(t, view.PipelineLogs, 1)
	assert.Equal(t, "proposal", view.PipelineLogs[0].ToStage)
}

func TestComposeDeal_WithoutLead(t *testing.T) {
	crm := testutil.NewFakeCRM()
	crm.DealsByID[12] = domain.Deal{ID: 12, Title: "Direct deal", Stage: "prospecting"}
	c := newComposer(crm, nil)

	view, err := c.ComposeDeal(context.Background(), 12)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Nil(t, view.Lead)
	assert.Empty(t, view.Activities)
	// No lead means no lead-side lookups at all.
	assert.Equal(t, 0, crm.CallCount("leads.get"))
}

func TestComposeDeal_NotFoundShortCircuits(t *testing.T) {
	crm := testutil.NewFakeCRM()
	c := newComposer(crm, nil)

	view, err := c.ComposeDeal(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, view)
	assert.Equal(t, []string{"deals.get"}, crm.Order())
}
