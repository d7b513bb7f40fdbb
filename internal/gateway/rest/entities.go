package rest

import (
	"context"
	"fmt"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
)

// Sub-client accessors. Each returns a narrow typed view over the shared
// client, mirroring the backend's per-entity routes.

func (c *Client) Leads() gateway.LeadClient                 { return leadClient{c} }
func (c *Client) Contacts() gateway.ContactClient           { return contactClient{c} }
func (c *Client) Customers() gateway.CustomerClient         { return customerClient{c} }
func (c *Client) Deals() gateway.DealClient                 { return dealClient{c} }
func (c *Client) Activities() gateway.ActivityClient        { return activityClient{c} }
func (c *Client) Participants() gateway.ParticipantClient   { return participantClient{c} }
func (c *Client) Attachments() gateway.AttachmentClient     { return attachmentClient{c} }
func (c *Client) Emails() gateway.EmailClient               { return emailClient{c} }
func (c *Client) Assignees() gateway.AssigneeClient         { return assigneeClient{c} }
func (c *Client) Addresses() gateway.AddressClient          { return addressClient{c} }
func (c *Client) Quotations() gateway.QuotationClient       { return quotationClient{c} }
func (c *Client) DealQuotations() gateway.DealQuotationClient { return dealQuotationClient{c} }
func (c *Client) PipelineLogs() gateway.PipelineLogClient   { return pipelineLogClient{c} }
func (c *Client) Users() gateway.UserClient                 { return userClient{c} }

type leadClient struct{ c *Client }

func (l leadClient) Get(ctx context.Context, id int64) (*domain.Lead, error) {
	return getOne[domain.Lead](ctx, l.c, fmt.Sprintf("/api/leads/%d", id))
}

func (l leadClient) List(ctx context.Context) ([]domain.Lead, error) {
	return getList[domain.Lead](ctx, l.c, "/api/leads", nil)
}

func (l leadClient) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	return postOne[domain.Lead](ctx, l.c, "/api/leads", lead)
}

func (l leadClient) CreateWithActivity(ctx context.Context, lead *domain.Lead, activity *domain.Activity) (*gateway.CombinedCreate, error) {
	payload := struct {
		Lead     *domain.Lead     `json:"lead"`
		Activity *domain.Activity `json:"activity"`
	}{lead, activity}
	return postOne[gateway.CombinedCreate](ctx, l.c, "/api/leads/with-activity", payload)
}

type contactClient struct{ c *Client }

func (cc contactClient) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	return getOne[domain.Contact](ctx, cc.c, fmt.Sprintf("/api/contacts/%d", id))
}

func (cc contactClient) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Contact, error) {
	return getList[domain.Contact](ctx, cc.c, "/api/contacts", idQuery("customer_id", customerID))
}

func (cc contactClient) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	return postOne[domain.Contact](ctx, cc.c, "/api/contacts", contact)
}

type customerClient struct{ c *Client }

func (cu customerClient) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return getOne[domain.Customer](ctx, cu.c, fmt.Sprintf("/api/customers/%d", id))
}

func (cu customerClient) List(ctx context.Context) ([]domain.Customer, error) {
	return getList[domain.Customer](ctx, cu.c, "/api/customers", nil)
}

func (cu customerClient) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	return postOne[domain.Customer](ctx, cu.c, "/api/customers", customer)
}

type dealClient struct{ c *Client }

func (d dealClient) Get(ctx context.Context, id int64) (*domain.Deal, error) {
	return getOne[domain.Deal](ctx, d.c, fmt.Sprintf("/api/deals/%d", id))
}

func (d dealClient) List(ctx context.Context) ([]domain.Deal, error) {
	return getList[domain.Deal](ctx, d.c, "/api/deals", nil)
}

func (d dealClient) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Deal, error) {
	return getList[domain.Deal](ctx, d.c, "/api/deals", idQuery("customer_id", customerID))
}

func (d dealClient) Create(ctx context.Context, deal *domain.Deal) (*domain.Deal, error) {
	return postOne[domain.Deal](ctx, d.c, "/api/deals", deal)
}

func (d dealClient) CreateWithActivity(ctx context.Context, deal *domain.Deal, activity *domain.Activity) (*gateway.CombinedCreate, error) {
	payload := struct {
		Deal     *domain.Deal     `json:"deal"`
		Activity *domain.Activity `json:"activity"`
	}{deal, activity}
	return postOne[gateway.CombinedCreate](ctx, d.c, "/api/deals/with-activity", payload)
}

type activityClient struct{ c *Client }

func (a activityClient) Get(ctx context.Context, id int64) (*domain.Activity, error) {
	return getOne[domain.Activity](ctx, a.c, fmt.Sprintf("/api/activities/%d", id))
}

func (a activityClient) List(ctx context.Context) ([]domain.Activity, error) {
	return getList[domain.Activity](ctx, a.c, "/api/activities", nil)
}

func (a activityClient) ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Activity, error) {
	return getList[domain.Activity](ctx, a.c, "/api/activities", relationQuery(ref))
}

type participantClient struct{ c *Client }

func (p participantClient) ListByActivity(ctx context.Context, activityID int64) ([]domain.ActivityParticipant, error) {
	return getList[domain.ActivityParticipant](ctx, p.c, "/api/activity-participants", idQuery("activity_id", activityID))
}

type attachmentClient struct{ c *Client }

func (a attachmentClient) ListByActivity(ctx context.Context, activityID int64) ([]domain.ActivityAttachment, error) {
	return getList[domain.ActivityAttachment](ctx, a.c, "/api/activity-attachments", idQuery("activity_id", activityID))
}

type emailClient struct{ c *Client }

func (e emailClient) Get(ctx context.Context, id int64) (*domain.Email, error) {
	return getOne[domain.Email](ctx, e.c, fmt.Sprintf("/api/emails/%d", id))
}

func (e emailClient) List(ctx context.Context) ([]domain.Email, error) {
	return getList[domain.Email](ctx, e.c, "/api/emails", nil)
}

func (e emailClient) ListByActivity(ctx context.Context, activityID int64) ([]domain.Email, error) {
	return getList[domain.Email](ctx, e.c, "/api/emails", idQuery("activity_id", activityID))
}

type assigneeClient struct{ c *Client }

func (a assigneeClient) ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Assignee, error) {
	return getList[domain.Assignee](ctx, a.c, "/api/assignees", relationQuery(ref))
}

type addressClient struct{ c *Client }

func (a addressClient) ListByRelation(ctx context.Context, ref domain.RelationRef) ([]domain.Address, error) {
	return getList[domain.Address](ctx, a.c, "/api/addresses", relationQuery(ref))
}

type quotationClient struct{ c *Client }

func (q quotationClient) Get(ctx context.Context, id int64) (*domain.Quotation, error) {
	return getOne[domain.Quotation](ctx, q.c, fmt.Sprintf("/api/quotations/%d", id))
}

func (q quotationClient) List(ctx context.Context) ([]domain.Quotation, error) {
	return getList[domain.Quotation](ctx, q.c, "/api/quotations", nil)
}

type dealQuotationClient struct{ c *Client }

func (d dealQuotationClient) ListByDeal(ctx context.Context, dealID int64) ([]domain.DealQuotation, error) {
	return getList[domain.DealQuotation](ctx, d.c, "/api/deal-quotations", idQuery("deal_id", dealID))
}

type pipelineLogClient struct{ c *Client }

func (p pipelineLogClient) ListByDeal(ctx context.Context, dealID int64) ([]domain.PipelineLog, error) {
	return getList[domain.PipelineLog](ctx, p.c, "/api/pipeline-logs", idQuery("deal_id", dealID))
}

type userClient struct{ c *Client }

func (u userClient) Get(ctx context.Context, id int64) (*domain.User, error) {
	return getOne[domain.User](ctx, u.c, fmt.Sprintf("/api/users/%d", id))
}
