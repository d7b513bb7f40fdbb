package service

import (
	"context"

	"crm-relay.io/relay/internal/domain"
	apperrors "crm-relay.io/relay/internal/pkg/errors"
	"crm-relay.io/relay/internal/pkg/fanout"
)

// enrichActivities runs the sub-enricher across a collection with bounded
// concurrency. Results keep their input positions; ordering across merged
// collections is imposed by the composer afterwards.
func (c *Composer) enrichActivities(ctx context.Context, activities []domain.Activity, fromLead bool) ([]domain.EnrichedActivity, error) {
	enriched := make([]domain.EnrichedActivity, len(activities))
	g := fanout.WithLimit(ctx, c.enrichLimit)
	for i, activity := range activities {
		i, activity := i, activity
		g.Go(func(ctx context.Context) error {
			ea, err := c.enrichActivity(ctx, activity)
			if err != nil {
				return err
			}
			ea.FromLead = fromLead
			enriched[i] = *ea
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// enrichActivity fetches participants, attachments, and linked emails for
// one activity concurrently, then resolves each participant's reference.
func (c *Composer) enrichActivity(ctx context.Context, activity domain.Activity) (*domain.EnrichedActivity, error) {
	ea := &domain.EnrichedActivity{
		Activity:     activity,
		Participants: []domain.EnrichedParticipant{},
		Attachments:  []domain.ActivityAttachment{},
		Emails:       []domain.Email{},
	}

	g := fanout.New(ctx)
	g.Go(func(ctx context.Context) error {
		participants, err := c.crm.Participants().ListByActivity(ctx, activity.ID)
		if err != nil {
			return err
		}
		resolved, err := c.resolveParticipants(ctx, participants)
		if err != nil {
			return err
		}
		ea.Participants = resolved
		return nil
	})
	g.Go(func(ctx context.Context) error {
		attachments, err := c.crm.Attachments().ListByActivity(ctx, activity.ID)
		if err != nil {
			return err
		}
		ea.Attachments = attachments
		return nil
	})
	g.Go(func(ctx context.Context) error {
		emails, err := c.crm.Emails().ListByActivity(ctx, activity.ID)
		if err != nil {
			return err
		}
		ea.Emails = emails
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ea, nil
}

// resolveParticipants resolves each participant's single reference. A
// participant carries at most one foreign key; a dangling key leaves the
// participant unresolved rather than failing the enrichment.
func (c *Composer) resolveParticipants(ctx context.Context, participants []domain.ActivityParticipant) ([]domain.EnrichedParticipant, error) {
	resolved := make([]domain.EnrichedParticipant, len(participants))
	g := fanout.New(ctx)
	for i, p := range participants {
		i, p := i, p
		g.Go(func(ctx context.Context) error {
			ep := domain.EnrichedParticipant{ActivityParticipant: p}
			switch {
			case p.ContactID != nil:
				contact, err := c.crm.Contacts().Get(ctx, *p.ContactID)
				if err != nil && !apperrors.IsNotFound(err) {
					return err
				}
				ep.Contact = contact
			case p.UserID != nil:
				user, err := c.crm.Users().Get(ctx, *p.UserID)
				if err != nil && !apperrors.IsNotFound(err) {
					return err
				}
				ep.User = user
			}
			resolved[i] = ep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
