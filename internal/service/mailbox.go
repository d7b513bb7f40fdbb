package service

import (
	"context"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
	"crm-relay.io/relay/internal/pkg/fanout"
)

// MailboxService answers conversation checks against the external mail
// server. CheckConversation is a total function: it never returns an
// error, degrading every failure mode to the empty check.
type MailboxService struct {
	mailbox gateway.Mailbox
}

// NewMailboxService creates a MailboxService. A nil mailbox models a
// deployment with no mail server configured; all checks degrade.
func NewMailboxService(mailbox gateway.Mailbox) *MailboxService {
	return &MailboxService{mailbox: mailbox}
}

// EmptyConversationCheck is the degraded result: no messages, with the
// Emails collection present and empty.
func EmptyConversationCheck() domain.ConversationCheck {
	return domain.ConversationCheck{Emails: []domain.MailMessage{}}
}

// CheckConversation reports the messages of a conversation. Blank ids,
// a missing mail server, transport failures, and cancellation all resolve
// to the empty check.
func (s *MailboxService) CheckConversation(ctx context.Context, conversationID string) domain.ConversationCheck {
	if conversationID == "" || s.mailbox == nil {
		return EmptyConversationCheck()
	}

	messages := fanout.BestEffort(ctx, "mailbox.conversation",
		func(ctx context.Context) ([]domain.MailMessage, error) {
			return s.mailbox.Messages(ctx, conversationID)
		})
	if messages == nil {
		messages = []domain.MailMessage{}
	}

	return domain.ConversationCheck{
		Emails:     messages,
		HasEmails:  len(messages) > 0,
		EmailCount: len(messages),
	}
}
