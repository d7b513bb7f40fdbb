package testutil

import (
	"context"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
)

type fakeLeads struct{ f *FakeCRM }

func (l fakeLeads) Get(ctx context.Context, id int64) (*domain.Lead, error) {
	if err := l.f.record("leads.get"); err != nil {
		return nil, err
	}
	lead, ok := l.f.LeadsByID[id]
	if !ok {
		return nil, notFound("lead", id)
	}
	return &lead, nil
}

func (l fakeLeads) List(ctx context.Context) ([]domain.Lead, error) {
	if err := l.f.record("leads.list"); err != nil {
		return nil, err
	}
	out := []domain.Lead{}
	for _, lead := range l.f.LeadsByID {
		out = append(out, lead)
	}
	return out, nil
}

func (l fakeLeads) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if err := l.f.record("leads.create"); err != nil {
		return nil, err
	}
	created := *lead
	created.ID = l.f.allocID()
	l.f.mu.Lock()
	l.f.LeadsByID[created.ID] = created
	l.f.mu.Unlock()
	return &created, nil
}

func (l fakeLeads) CreateWithActivity(ctx context.Context, lead *domain.Lead, activity *domain.Activity) (*gateway.CombinedCreate, error) {
	if err := l.f.record("leads.create_with_activity"); err != nil {
		return nil, err
	}
	leadID := l.f.allocID()
	activityID := l.f.allocID()
	created := *lead
	created.ID = leadID
	l.f.mu.Lock()
	l.f.LeadsByID[leadID] = created
	l.f.mu.Unlock()
	return &gateway.CombinedCreate{PrimaryID: leadID, ActivityID: &activityID}, nil
}

type fakeContacts struct{ f *FakeCRM }

func (c fakeContacts) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	if err := c.f.record("contacts.get"); err != nil {
		return nil, err
	}
	contact, ok := c.f.ContactsByID[id]
	if !ok {
		return nil, notFound("contact", id)
	}
	return &contact, nil
}

func (c fakeContacts) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Contact, error) {
	if err := c.f.record("contacts.list_by_customer"); err != nil {
		return nil, err
	}
	return append([]domain.Contact{}, c.f.ContactsByCustomer[customerID]...), nil
}

func (c fakeContacts) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if err := c.f.record("contacts.create"); err != nil {
		return nil, err
	}
	created := *contact
	created.ID = c.f.allocID()
	c.f.mu.Lock()
	c.f.ContactsByID[created.ID] = created
	c.f.mu.Unlock()
	return &created, nil
}

type fakeCustomers struct{ f *FakeCRM }

func (c fakeCustomers) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	if err := c.f.record("customers.get"); err != nil {
		return nil, err
	}
	customer, ok := c.f.CustomersByID[id]
	if !ok {
		return nil, notFound("customer", id)
	}
	return &customer, nil
}

func (c fakeCustomers) List(ctx context.Context) ([]domain.Customer, error) {
	if err := c.f.record("customers.list"); err != nil {
		return nil, err
	}
	out := []domain.Customer{}
	for _, customer := range c.f.CustomersByID {
		out = append(out, customer)
	}
	return out, nil
}

func (c fakeCustomers) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := c.f.record("customers.create"); err != nil {
		return nil, err
	}
	created := *customer
	created.ID = c.f.allocID()
	c.f.mu.Lock()
	c.f.CustomersByID[created.ID] = created
	c.f.mu.Unlock()
	return &created, nil
}

type fakeDeals struct{ f *FakeCRM }

func (d fakeDeals) Get(ctx context.Context, id int64) (*domain.Deal, error) {
	if err := d.f.record("deals.get"); err != nil {
		return nil, err
	}
	deal, ok := d.f.DealsByID[id]
	if !ok {
		return nil, notFound("deal", id)
	}
	return &deal, nil
}

func (d fakeDeals) List(ctx context.Context) ([]domain.Deal, error) {
	if err := d.f.record("deals.list"); err != nil {
		return nil, err
	}
	out := []domain.Deal{}
	for _, deal := range d.f.DealsByID {
		out = append(out, deal)
	}
	return out, nil
}

func (d fakeDeals) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Deal, error) {
	if err := d.f.record("deals.list_by_customer"); err != nil {
		return nil, err
	}
	return append([]domain.Deal{}, d.f.DealsByCustomer[customerID]...), nil
}

func (d fakeDeals) Create(ctx context.Context, deal *domain.Deal) (*domain.Deal, error) {
	if err := d.f.record("deals.create"); err != nil {
		return nil, err
	}
	created := *deal
	created.ID = d.f.allocID()
	d.f.mu.Lock()
	d.f.DealsByID[created.ID] = created
	d.f.mu.Unlock()
	return &created, nil
}

func (d fakeDeals) CreateWithActivity(ctx context.Context, deal *domain.Deal, activity *domain.Activity) (*gateway.CombinedCreate, error) {
	if err := d.f.record("deals.create_with_activity"); err != nil {
		return nil, err
	}
	dealID := d.f.allocID()
	activityID := d.f.allocID()
	created := *deal
	created.ID = dealID
	d.f.mu.Lock()
	d.f.DealsByID[dealID] = created
	d.f.mu.Unlock()
	return &gateway.CombinedCreate{PrimaryID: dealID, ActivityID: &activityID}, nil
}

type fakeActivities struct{ f *FakeCRM }

func (a fakeActivities) Get(ctx context.Context, id int64) (*domain.Activity, error) {
	if err := a.f.record("activities.get"); err != nil {
		return nil, err
	}
	activity, ok := a.f.ActivitiesByID[id]
	if !ok {
		return nil, notFound("activity", id)
	}
	return &activity, nil
}

func (a fakeActivities) List(ctx context.Context) ([]domain.Activity, error) {
	if err := a.f.record("activities.list"); err != nil {
		return nil, err
	}
	out := []domain.Activity{}
	for _, activity := range a.f.ActivitiesByID {
		out = append(out, activity)
	}
	return out, nil
}

func (a fakeActivities) ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Activity, error) {
	if err := a.f.record("activities.list_by_relation"); err != nil {
		return nil, err
	}
	return append([]domain.Activity{}, a.f.ActivitiesByRelation[ref]...), nil
}

type fakeParticipants struct{ f *FakeCRM }

func (p fakeParticipants) ListByActivity(ctx context.Context, activityID int64) ([]domain.ActivityParticipant, error) {
	if err := p.f.record("participants.list_by_activity"); err != nil {
		return nil, err
	}
	return append([]domain.ActivityParticipant{}, p.f.ParticipantsByActivity[activityID]...), nil
}

type fakeAttachments struct{ f *FakeCRM }

func (a fakeAttachments) ListByActivity(ctx context.Context, activityID int64) ([]domain.ActivityAttachment, error) {
	if err := a.f.record("attachments.list_by_activity"); err != nil {
		return nil, err
	}
	return append([]domain.ActivityAttachment{}, a.f.AttachmentsByActivity[activityID]...), nil
}

type fakeEmails struct{ f *FakeCRM }

func (e fakeEmails) Get(ctx context.Context, id int64) (*domain.Email, error) {
	if err := e.f.record("emails.get"); err != nil {
		return nil, err
	}
	email, ok := e.f.EmailsByID[id]
	if !ok {
		return nil, notFound("email", id)
	}
	return &email, nil
}

func (e fakeEmails) List(ctx context.Context) ([]domain.Email, error) {
	if err := e.f.record("emails.list"); err != nil {
		return nil, err
	}
	out := []domain.Email{}
	for _, email := range e.f.EmailsByID {
		out = append(out, email)
	}
	return out, nil
}

func (e fakeEmails) ListByActivity(ctx context.Context, activityID int64) ([]domain.Email, error) {
	if err := e.f.record("emails.list_by_activity"); err != nil {
		return nil, err
	}
	return append([]domain.Email{}, e.f.EmailsByActivity[activityID]...), nil
}

type fakeAssignees struct{ f *FakeCRM }

func (a fakeAssignees) ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Assignee, error) {
	if err := a.f.record("assignees.list_by_relation"); err != nil {
		return nil, err
	}
	return append([]domain.Assignee{}, a.f.AssigneesByRelation[ref]...), nil
}

type fakeAddresses struct{ f *FakeCRM }

func (a fakeAddresses) ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Address, error) {
	if err := a.f.record("addresses.list_by_relation"); err != nil {
		return nil, err
	}
	return append([]domain.Address{}, a.f.AddressesByRelation[ref]...), nil
}

type fakeQuotations struct{ f *FakeCRM }

func (q fakeQuotations) Get(ctx context.Context, id int64) (*domain.Quotation, error) {
	if err := q.f.record("quotations.get"); err != nil {
		return nil, err
	}
	quotation, ok := q.f.QuotationsByID[id]
	if !ok {
		return nil, notFound("quotation", id)
	}
	return &quotation, nil
}

func (q fakeQuotations) List(ctx context.Context) ([]domain.Quotation, error) {
	if err := q.f.record("quotations.list"); err != nil {
		return nil, err
	}
	out := []domain.Quotation{}
	for _, quotation := range q.f.QuotationsByID {
		out = append(out, quotation)
	}
	return out, nil
}

type fakeDealQuotations struct{ f *FakeCRM }

func (d fakeDealQuotations) ListByDeal(ctx context.Context, dealID int64) ([]domain.DealQuotation, error) {
	if err := d.f.record("deal_quotations.list_by_deal"); err != nil {
		return nil, err
	}
	return append([]domain.DealQuotation{}, d.f.DealQuotationsByDeal[dealID]...), nil
}

type fakePipelineLogs struct{ f *FakeCRM }

func (p fakePipelineLogs) ListByDeal(ctx context.Context, dealID int64) ([]domain.PipelineLog, error) {
	if err := p.f.record("pipeline_logs.list_by_deal"); err != nil {
		return nil, err
	}
	return append([]domain.PipelineLog{}, p.f.PipelineLogsByDeal[dealID]...), nil
}

type fakeUsers struct{ f *FakeCRM }

func (u fakeUsers) Get(ctx context.Context, id int64) (*domain.User, error) {
	if err := u.f.record("users.get"); err != nil {
		return nil, err
	}
	user, ok := u.f.UsersByID[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &user, nil
}
