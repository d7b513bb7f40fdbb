package service

import (
	"context"
	"fmt"

	"crm-relay.io/relay/internal/domain"
	apperrors "crm-relay.io/relay/internal/pkg/errors"
)

// ComposeActivity returns the enriched aggregate for an activity, or
// (nil, nil) when the id does not resolve. The polymorphic relation target
// is fetched alongside the sub-enrichment; a dangling relation leaves
// RelatedEntity nil.
func (c *Composer) ComposeActivity(ctx context.Context, id int64) (*domain.ActivityView, error) {
	activity, ok, err := primary(func() (*domain.Activity, error) { return c.crm.Activities().Get(ctx, id) })
	if err != nil {
		return nil, fmt.Errorf("compose activity %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	enriched, err := c.enrichActivity(ctx, *activity)
	if err != nil {
		return nil, fmt.Errorf("compose activity %d: %w", id, err)
	}

	view := &domain.ActivityView{EnrichedActivity: *enriched}
	related, err := c.relatedEntity(ctx, activity.Relation)
	if err != nil {
		return nil, fmt.Errorf("compose activity %d: %w", id, err)
	}
	view.RelatedEntity = related
	return view, nil
}

// relatedEntity resolves a polymorphic relation reference into the typed
// target record. A reference to a missing record yields nil.
func (c *Composer) relatedEntity(ctx context.Context, ref domain.RelationRef) (*domain.RelatedEntity, error) {
	related := &domain.RelatedEntity{Type: ref.Type}
	switch ref.Type {
	case domain.RelationLead:
		lead, err := c.optionalLead(ctx, ref.ID)
		if err != nil || lead == nil {
			return nil, err
		}
		related.Lead = lead
	case domain.RelationContact:
		contact, err := c.optionalContact(ctx, ref.ID)
		if err != nil || contact == nil {
			return nil, err
		}
		related.Contact = contact
	case domain.RelationCustomer:
		customer, err := c.optionalCustomer(ctx, ref.ID)
		if err != nil || customer == nil {
			return nil, err
		}
		related.Customer = customer
	case domain.RelationDeal:
		deal, err := c.optionalDeal(ctx, ref.ID)
		if err != nil || deal == nil {
			return nil, err
		}
		related.Deal = deal
	case domain.RelationActivity:
		activity, err := c.crm.Activities().Get(ctx, ref.ID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		related.Activity = activity
	default:
		return nil, nil
	}
	return related, nil
}

// optionalDeal resolves a deal FK; a dangling reference yields nil.
func (c *Composer) optionalDeal(ctx context.Context, id int64) (*domain.Deal, error) {
	deal, err := c.crm.Deals().Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return deal, nil
}
