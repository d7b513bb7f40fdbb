package testutil

import (
	"context"
	"sync"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
)

// FakeMailbox is an in-memory gateway.Mailbox.
type FakeMailbox struct {
	mu sync.Mutex

	MessagesByConversation map[string][]domain.MailMessage
	// Err, when set, is returned by every call.
	Err error

	calls int
}

var _ gateway.Mailbox = (*FakeMailbox)(nil)

// NewFakeMailbox creates an empty FakeMailbox.
func NewFakeMailbox() *FakeMailbox {
	return &FakeMailbox{
		MessagesByConversation: map[string][]domain.MailMessage{},
	}
}

// Messages returns the configured messages for a conversation.
func (m *FakeMailbox) Messages(ctx context.Context, conversationID string) ([]domain.MailMessage, error) {
	m.mu.Lock()
	m.calls++
	err := m.Err
	msgs := append([]domain.MailMessage{}, m.MessagesByConversation[conversationID]...)
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Ping reports the injected error state.
func (m *FakeMailbox) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

// CallCount returns how many Messages calls were made.
func (m *FakeMailbox) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
