// Package testutil provides in-memory test doubles for the remote
// collaborators of the composition engine.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
	apperrors "crm-relay.io/relay/internal/pkg/errors"
)

// FakeCRM is an in-memory gateway.CRM. It records every call by operation
// name so tests can assert on call counts and ordering, and injects
// failures per operation via FailOn.
type FakeCRM struct {
	mu sync.Mutex

	LeadsByID     map[int64]domain.Lead
	ContactsByID  map[int64]domain.Contact
	CustomersByID map[int64]domain.Customer
	DealsByID     map[int64]domain.Deal
	ActivitiesByID map[int64]domain.Activity
	EmailsByID    map[int64]domain.Email
	UsersByID     map[int64]domain.User
	QuotationsByID map[int64]domain.Quotation

	AssigneesByRelation  map[domain.RelationRef][]domain.Assignee
	ActivitiesByRelation map[domain.RelationRef][]domain.Activity
	AddressesByRelation  map[domain.RelationRef][]domain.Address

	ContactsByCustomer map[int64][]domain.Contact
	DealsByCustomer    map[int64][]domain.Deal

	ParticipantsByActivity map[int64][]domain.ActivityParticipant
	AttachmentsByActivity  map[int64][]domain.ActivityAttachment
	EmailsByActivity       map[int64][]domain.Email

	DealQuotationsByDeal map[int64][]domain.DealQuotation
	PipelineLogsByDeal   map[int64][]domain.PipelineLog

	// Calls counts invocations per operation name (e.g. "leads.get").
	Calls map[string]int
	// CallOrder records operation names in invocation order.
	CallOrder []string
	// FailOn injects an error for an operation name.
	FailOn map[string]error

	nextID int64
}

var _ gateway.CRM = (*FakeCRM)(nil)

// NewFakeCRM creates an empty FakeCRM.
func NewFakeCRM() *FakeCRM {
	return &FakeCRM{
		LeadsByID:              map[int64]domain.Lead{},
		ContactsByID:           map[int64]domain.Contact{},
		CustomersByID:          map[int64]domain.Customer{},
		DealsByID:              map[int64]domain.Deal{},
		ActivitiesByID:         map[int64]domain.Activity{},
		EmailsByID:             map[int64]domain.Email{},
		UsersByID:              map[int64]domain.User{},
		QuotationsByID:         map[int64]domain.Quotation{},
		AssigneesByRelation:    map[domain.RelationRef][]domain.Assignee{},
		ActivitiesByRelation:   map[domain.RelationRef][]domain.Activity{},
		AddressesByRelation:    map[domain.RelationRef][]domain.Address{},
		ContactsByCustomer:     map[int64][]domain.Contact{},
		DealsByCustomer:        map[int64][]domain.Deal{},
		ParticipantsByActivity: map[int64][]domain.ActivityParticipant{},
		AttachmentsByActivity:  map[int64][]domain.ActivityAttachment{},
		EmailsByActivity:       map[int64][]domain.Email{},
		DealQuotationsByDeal:   map[int64][]domain.DealQuotation{},
		PipelineLogsByDeal:     map[int64][]domain.PipelineLog{},
		Calls:                  map[string]int{},
		FailOn:                 map[string]error{},
		nextID:                 1000,
	}
}

// record counts a call and returns the injected error, if any.
func (f *FakeCRM) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[op]++
	f.CallOrder = append(f.CallOrder, op)
	return f.FailOn[op]
}

// CallCount returns the number of calls to an operation.
func (f *FakeCRM) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[op]
}

// TotalCalls returns the total number of gateway calls made.
func (f *FakeCRM) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.CallOrder)
}

// Order returns a copy of the recorded operation order.
func (f *FakeCRM) Order() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.CallOrder))
	copy(out, f.CallOrder)
	return out
}

func (f *FakeCRM) allocID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

func notFound(op string, id int64) error {
	return fmt.Errorf("%s %d: %w", op, id, apperrors.ErrNotFound)
}

func (f *FakeCRM) Ping(ctx context.Context) error { return f.record("ping") }

func (f *FakeCRM) Leads() gateway.LeadClient                   { return fakeLeads{f} }
func (f *FakeCRM) Contacts() gateway.ContactClient             { return fakeContacts{f} }
func (f *FakeCRM) Customers() gateway.CustomerClient           { return fakeCustomers{f} }
func (f *FakeCRM) Deals() gateway.DealClient                   { return fakeDeals{f} }
func (f *FakeCRM) Activities() gateway.ActivityClient          { return fakeActivities{f} }
func (f *FakeCRM) Participants() gateway.ParticipantClient     { return fakeParticipants{f} }
func (f *FakeCRM) Attachments() gateway.AttachmentClient       { return fakeAttachments{f} }
func (f *FakeCRM) Emails() gateway.EmailClient                 { return fakeEmails{f} }
func (f *FakeCRM) Assignees() gateway.AssigneeClient           { return fakeAssignees{f} }
func (f *FakeCRM) Addresses() gateway.AddressClient            { return fakeAddresses{f} }
func (f *FakeCRM) Quotations() gateway.QuotationClient         { return fakeQuotations{f} }
func (f *FakeCRM) DealQuotations() gateway.DealQuotationClient { return fakeDealQuotations{f} }
func (f *FakeCRM) PipelineLogs() gateway.PipelineLogClient     { return fakePipelineLogs{f} }
func (f *FakeCRM) Users() gateway.UserClient                   { return fakeUsers{f} }
