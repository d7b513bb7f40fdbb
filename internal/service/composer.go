// Package service implements the enriched view composition engine: per
// request it fans out to the CRM backend's entity gateways, merges the
// results into a nested aggregate, and propagates failures per branch
// policy (fail-fast everywhere, best-effort for the mailbox check).
package service

import (
	"context"
	"fmt"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
	"crm-relay.io/relay/internal/pkg/fanout"
	apperrors "crm-relay.io/relay/internal/pkg/errors"
)

// defaultEnrichConcurrency bounds concurrent activity sub-enrichments per
// composition call.
const defaultEnrichConcurrency = 16

// Composer assembles enriched views of primary records. It holds no state
// between requests and is safe for concurrent use.
type Composer struct {
	crm           gateway.CRM
	mailbox       *MailboxService
	enrichLimit   int
}

// NewComposer creates a Composer. enrichConcurrency <= 0 selects the
// default.
func NewComposer(crm gateway.CRM, mailbox *MailboxService, enrichConcurrency int) *Composer {
	if enrichConcurrency <= 0 {
		enrichConcurrency = defaultEnrichConcurrency
	}
	return &Composer{
		crm:         crm,
		mailbox:     mailbox,
		enrichLimit: enrichConcurrency,
	}
}

// primary fetches the composition root. A not-found primary short-circuits
// the whole composition: the caller gets (nil, nil) and no dependent
// branch is launched.
func primary[T any](get func() (*T, error)) (*T, bool, error) {
	record, err := get()
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return record, true, nil
}

// ComposeLead returns the enriched aggregate for a lead, or (nil, nil)
// when the id does not resolve.
func (c *Composer) ComposeLead(ctx context.Context, id int64) (*domain.LeadView, error) {
	lead, ok, err := primary(func() (*domain.Lead, error) { return c.crm.Leads().Get(ctx, id) })
	if err != nil {
		return nil, fmt.Errorf("compose lead %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	view := &domain.LeadView{
		Lead:       *lead,
		Assignees:  []domain.Assignee{},
		Activities: []domain.EnrichedActivity{},
		Addresses:  []domain.Address{},
	}
	ref := domain.Ref(domain.RelationLead, id)

	g := fanout.New(ctx)
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
	if lead.CustomerID != nil {
		g.Go(func(ctx context.Context) error {
			customer, err := c.optionalCustomer(ctx, *lead.CustomerID)
			if err != nil {
				return err
			}
			view.Customer = customer
			return nil
		})
	}
	if lead.ContactID != nil {
		g.Go(func(ctx context.Context) error {
			contact, err := c.optionalContact(ctx, *lead.ContactID)
			if err != nil {
				return err
			}
			view.Contact = contact
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compose lead %d: %w", id, err)
	}

	domain.SortActivitiesByCreatedDesc(view.Activities)
	return view, nil
}

// ComposeCustomer returns the enriched aggregate for a customer, or
// (nil, nil) when the id does not resolve.
func (c *Composer) ComposeCustomer(ctx context.Context, id int64) (*domain.CustomerView, error) {
	customer, ok, err := primary(func() (*domain.Customer, error) { return c.crm.Customers().Get(ctx, id) })
	if err != nil {
		return nil, fmt.Errorf("compose customer %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	view := &domain.CustomerView{
		Customer:   *customer,
		Contacts:   []domain.Contact{},
		Deals:      []domain.Deal{},
		Assignees:  []domain.Assignee{},
		Activities: []domain.EnrichedActivity{},
		Addresses:  []domain.Address{},
	}
	ref := domain.Ref(domain.RelationCustomer, id)

	g := fanout.New(ctx)
	g.Go(func(ctx context.Context) error {
		contacts, err := c.crm.Contacts().ListByCustomer(ctx, id)
		if err != nil {
			return err
		}
		view.Contacts = contacts
		return nil
	})
	g.Go(func(ctx context.Context) error {
		deals, err := c.crm.Deals().ListByCustomer(ctx, id)
		if err != nil {
			return err
		}
		view.Deals = deals
		return nil
	})
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

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compose customer %d: %w", id, err)
	}

	domain.SortActivitiesByCreatedDesc(view.Activities)
	return view, nil
}

// ComposeContact returns the enriched aggregate for a contact, or
// (nil, nil) when the id does not resolve.
func (c *Composer) ComposeContact(ctx context.Context, id int64) (*domain.ContactView, error) {
	contact, ok, err := primary(func() (*domain.Contact, error) { return c.crm.Contacts().Get(ctx, id) })
	if err != nil {
		return nil, fmt.Errorf("compose contact %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	view := &domain.ContactView{
		Contact:    *contact,
		Assignees:  []domain.Assignee{},
		Activities: []domain.EnrichedActivity{},
		Addresses:  []domain.Address{},
	}
	ref := domain.Ref(domain.RelationContact, id)

	g := fanout.New(ctx)
	if contact.CustomerID != nil {
		g.Go(func(ctx context.Context) error {
			customer, err := c.optionalCustomer(ctx, *contact.CustomerID)
			if err != nil {
				return err
			}
			view.Customer = customer
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

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compose contact %d: %w", id, err)
	}

	domain.SortActivitiesByCreatedDesc(view.Activities)
	return view, nil
}

// relatedActivities lists the activities attached to ref and runs the
// sub-enricher across the collection.
func (c *Composer) relatedActivities(ctx context.Context, ref domain.RelationRef, fromLead bool) ([]domain.EnrichedActivity, error) {
	activities, err := c.crm.Activities().ListByRelation(ctx, ref)
	if err != nil {
		return nil, err
	}
	return c.enrichActivities(ctx, activities, fromLead)
}

// optionalCustomer resolves a customer FK; a dangling reference yields nil
// rather than an error.
func (c *Composer) optionalCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := c.crm.Customers().Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}

// optionalContact resolves a contact FK; a dangling reference yields nil.
func (c *Composer) optionalContact(ctx context.Context, id int64) (*domain.Contact, error) {
	contact, err := c.crm.Contacts().Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return contact, nil
}

// optionalLead resolves a lead FK; a dangling reference yields nil.
func (c *Composer) optionalLead(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := c.crm.Leads().Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return lead, nil
}
