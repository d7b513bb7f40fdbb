package service

import (
	"context"
	"fmt"

	"crm-relay.io/relay/internal/domain"
	apperrors "crm-relay.io/relay/internal/pkg/errors"
	"crm-relay.io/relay/internal/pkg/fanout"
)

// ComposeEmail returns the enriched aggregate for an email, or (nil, nil)
// when the id does not resolve. The conversation branch is best-effort: a
// mail server outage degrades it to the empty check instead of failing the
// view.
func (c *Composer) ComposeEmail(ctx context.Context, id int64) (*domain.EmailView, error) {
	email, ok, err := primary(func() (*domain.Email, error) { return c.crm.Emails().Get(ctx, id) })
	if err != nil {
		return nil, fmt.Errorf("compose email %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	view := &domain.EmailView{
		Email:        *email,
		Conversation: EmptyConversationCheck(),
	}

	g := fanout.New(ctx)
	if email.PotentialRelationType != nil && email.PotentialRelationID != nil {
		g.Go(func(ctx context.Context) error {
			related, err := c.relatedEntity(ctx, domain.Ref(*email.PotentialRelationType, *email.PotentialRelationID))
			if err != nil {
				return err
			}
			view.RelatedEntity = related
			return nil
		})
	}
	if email.MatchedContactID != nil {
		g.Go(func(ctx context.Context) error {
			contact, err := c.optionalContact(ctx, *email.MatchedContactID)
			if err != nil {
				return err
			}
			view.MatchedContact = contact
			return nil
		})
	}
	if email.ActivityID != nil {
		g.Go(func(ctx context.Context) error {
			activity, err := c.crm.Activities().Get(ctx, *email.ActivityID)
			if err != nil {
				if apperrors.IsNotFound(err) {
					return nil
				}
				return err
			}
			enriched, err := c.enrichActivity(ctx, *activity)
			if err != nil {
				return err
			}
			view.SyncedActivity = enriched
			return nil
		})
	}
	g.Go(func(ctx context.Context) error {
		view.Conversation = c.mailbox.CheckConversation(ctx, email.ConversationID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compose email %d: %w", id, err)
	}
	return view, nil
}
