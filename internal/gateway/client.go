// Package gateway defines the anti-corruption layer over the CRM backend
// and the external mail server. The composition engine consumes these
// contracts only; the actual HTTP binding lives in gateway/rest and
// gateway/mail and is wired at the composition root.
package gateway

import (
	"context"

	"crm-relay.io/relay/internal/domain"
)

// CombinedCreate is the result of an atomic primary+activity creation.
// Activity persistence is the backend's transactional responsibility.
type CombinedCreate struct {
	PrimaryID  int64  `json:"primary_id"`
	ActivityID *int64 `json:"activity_id"`
}

// LeadClient abstracts lead operations.
type LeadClient interface {
	Get(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	CreateWithActivity(ctx context.Context, lead *domain.Lead, activity *domain.Activity) (*CombinedCreate, error)
}

// ContactClient abstracts contact operations.
type ContactClient interface {
	Get(ctx context.Context, id int64) (*domain.Contact, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Contact, error)
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
}

// CustomerClient abstracts customer operations.
type CustomerClient interface {
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// DealClient abstracts deal operations.
type DealClient interface {
	Get(ctx context.Context, id int64) (*domain.Deal, error)
	List(ctx context.Context) ([]domain.Deal, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Deal, error)
	Create(ctx context.Context, deal *domain.Deal) (*domain.Deal, error)
	CreateWithActivity(ctx context.Context, deal *domain.Deal, activity *domain.Activity) (*CombinedCreate, error)
}

// ActivityClient abstracts activity operations. ListByRelation is the
// relation index used by every view composer.
type ActivityClient interface {
	Get(ctx context.Context, id int64) (*domain.Activity, error)
	List(ctx context.Context) ([]domain.Activity, error)
	ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Activity, error)
}

// ParticipantClient abstracts activity participant lookups.
type ParticipantClient interface {
	ListByActivity(ctx context.Context, activityID int64) ([]domain.ActivityParticipant, error)
}

// AttachmentClient abstracts activity attachment lookups.
type AttachmentClient interface {
	ListByActivity(ctx context.Context, activityID int64) ([]domain.ActivityAttachment, error)
}

// EmailClient abstracts email operations.
type EmailClient interface {
	Get(ctx context.Context, id int64) (*domain.Email, error)
	List(ctx context.Context) ([]domain.Email, error)
	ListByActivity(ctx context.Context, activityID int64) ([]domain.Email, error)
}

// AssigneeClient abstracts the assignee relation index.
type AssigneeClient interface {
	ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Assignee, error)
}

// AddressClient abstracts the address relation index.
type AddressClient interface {
	ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Address, error)
}

// QuotationClient abstracts quotation operations.
type QuotationClient interface {
	Get(ctx context.Context, id int64) (*domain.Quotation, error)
	List(ctx context.Context) ([]domain.Quotation, error)
}

// DealQuotationClient abstracts deal-quotation link lookups.
type DealQuotationClient interface {
	ListByDeal(ctx context.Context, dealID int64) ([]domain.DealQuotation, error)
}

// PipelineLogClient abstracts deal stage history lookups.
type PipelineLogClient interface {
	ListByDeal(ctx context.Context, dealID int64) ([]domain.PipelineLog, error)
}

// UserClient abstracts internal user lookups.
type UserClient interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
}

// CRM groups all entity clients of the backend.
type CRM interface {
	Leads() LeadClient
	Contacts() ContactClient
	Customers() CustomerClient
	Deals() DealClient
	Activities() ActivityClient
	Participants() ParticipantClient
	Attachments() AttachmentClient
	Emails() EmailClient
	Assignees() AssigneeClient
	Addresses() AddressClient
	Quotations() QuotationClient
	DealQuotations() DealQuotationClient
	PipelineLogs() PipelineLogClient
	Users() UserClient

	// Ping verifies backend reachability (used by health probes).
	Ping(ctx context.Context) error
}

// Mailbox abstracts the external mail server.
type Mailbox interface {
	// Messages returns the messages of a conversation.
	Messages(ctx context.Context, conversationID string) ([]domain.MailMessage, error)
	Ping(ctx context.Context) error
}
