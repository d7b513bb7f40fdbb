package service

import (
	"context"
	"fmt"

	"crm-relay.io/relay/internal/domain"
	apperrors "crm-relay.io/relay/internal/pkg/errors"
	"crm-relay.io/relay/internal/pkg/fanout"
)

// ComposeDeal returns the enriched aggregate for a deal, or (nil, nil)
// when the id does not resolve. When the deal originates from a lead, the
// lead's activities are merged in tagged from_lead and the combined
// collection is re-ordered newest first.
func (c *Composer) ComposeDeal(ctx context.Context, id int64) (*domain.DealView, error) {
	deal, ok, err := primary(func() (*domain.Deal, error) { return c.crm.Deals().Get(ctx, id) })
	if err != nil {
		return nil, fmt.Errorf("compose deal %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	view := &domain.DealView{
		Deal:         *deal,
		Assignees:    []domain.Assignee{},
		Activities:   []domain.EnrichedActivity{},
		Addresses:    []domain.Address{},
		Quotations:   []domain.DealQuotationView{},
		PipelineLogs: []domain.PipelineLog{},
	}
	ref := domain.Ref(domain.RelationDeal, id)

	var leadActivities []domain.EnrichedActivity

	g := fanout.New(ctx)
	if deal.CustomerID != nil {
		g.Go(func(ctx context.Context) error {
			customer, err := c.optionalCustomer(ctx, *deal.CustomerID)
			if err != nil {
				return err
			}
			view.Customer = customer
			return nil
		})
	}
	if deal.ContactID != nil {
		g.Go(func(ctx context.Context) error {
			contact, err := c.optionalContact(ctx, *deal.ContactID)
			if err != nil {
				return err
			}
			view.Contact = contact
			return nil
		})
	}
	if deal.LeadID != nil {
		g.Go(func(ctx context.Context) error {
			lead, err := c.optionalLead(ctx, *deal.LeadID)
			if err != nil {
				return err
			}
			view.Lead = lead
			return nil
		})
		g.Go(func(ctx context.Context) error {
			activities, err := c.relatedActivities(ctx, domain.Ref(domain.RelationLead, *deal.LeadID), true)
			if err != nil {
				return err
			}
			leadActivities = activities
			return nil
		})
	}
	g.Go(func(ctx context.Context) error {
		assignees, err := c.crm.Assignees().ListByRelation(ctx, ref)
		if err != nil {
			return err
		}
		view.Assignees = assignees
		return nil
	})
	g.Go(func(ctx context.Context) error {
		activities, err := c.relatedActivities(ctx, ref, false)
		if err != nil {
			return err
		}
		view.Activities = activities
		return nil
	})
	g.Go(func(ctx context.Context) error {
		addresses, err := c.crm.Addresses().ListByRelation(ctx, ref)
		if err != nil {
			return err
		}
		view.Addresses = addresses
		return nil
	})
	g.Go(func(ctx context.Context) error {
		quotations, err := c.dealQuotations(ctx, id)
		if err != nil {
			return err
		}
		view.Quotations = quotations
		return nil
	})
	g.Go(func(ctx context.Context) error {
		logs, err := c.crm.PipelineLogs().ListByDeal(ctx, id)
		if err != nil {
			return err
		}
		view.PipelineLogs = logs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compose deal %d: %w", id, err)
	}

	view.Activities = append(view.Activities, leadActivities...)
	domain.SortActivitiesByCreatedDesc(view.Activities)
	return view, nil
}

// dealQuotations joins the deal's quotation links with their quotation
// records. A link whose quotation is gone stays in the collection with a
// nil Quotation.
func (c *Composer) dealQuotations(ctx context.Context, dealID int64) ([]domain.DealQuotationView, error) {
	links, err := c.crm.DealQuotations().ListByDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	joined := make([]domain.DealQuotationView, len(links))
	g := fanout.New(ctx)
	for i, link := range links {
		i, link := i, link
		g.Go(func(ctx context.Context) error {
			joined[i] = domain.DealQuotationView{DealQuotation: link}
			quotation, err := c.crm.Quotations().Get(ctx, link.QuotationID)
			if err != nil {
				if apperrors.IsNotFound(err) {
					return nil
				}
				return err
			}
			joined[i].Quotation = quotation
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return joined, nil
}
