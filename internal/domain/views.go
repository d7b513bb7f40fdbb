package domain

import "sort"

// EnrichedParticipant is a participant with its reference resolved. At most
// one of Contact/User is non-nil, driven by which foreign key was set.
type EnrichedParticipant struct {
	ActivityParticipant
	Contact *Contact `json:"contact"`
	User    *User    `json:"user"`
}

// EnrichedActivity is an activity augmented with participants, attachments,
// and linked emails. FromLead marks activities pulled in transitively from
// a deal's source lead.
type EnrichedActivity struct {
	Activity
	Participants []EnrichedParticipant `json:"participants"`
	Attachments  []ActivityAttachment  `json:"attachments"`
	Emails       []Email               `json:"emails"`
	FromLead     bool                  `json:"from_lead"`
}

// SortActivitiesByCreatedDesc orders a merged activity collection by
// creation time, newest first. Ordering is imposed explicitly after all
// sub-enrichments complete, never left to fetch-completion order.
func SortActivitiesByCreatedDesc(activities []EnrichedActivity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
}

// LeadView is the enriched aggregate for a lead.
type LeadView struct {
	Lead
	Assignees  []Assignee         `json:"assignees"`
	Activities []EnrichedActivity `json:"activities"`
	Addresses  []Address          `json:"addresses"`
	Customer   *Customer          `json:"customer"`
	Contact    *Contact           `json:"contact"`
}

// CustomerView is the enriched aggregate for a customer.
type CustomerView struct {
	Customer
	Contacts   []Contact          `json:"contacts"`
	Deals      []Deal             `json:"deals"`
	Assignees  []Assignee         `json:"assignees"`
	Activities []EnrichedActivity `json:"activities"`
	Addresses  []Address          `json:"addresses"`
}

// DealView is the enriched aggregate for a deal. Activities contain both
// directly-owned items and the source lead's items tagged from_lead.
type DealView struct {
	Deal
	Customer     *Customer          `json:"customer"`
	Contact      *Contact           `json:"contact"`
	Lead         *Lead              `json:"lead"`
	Assignees    []Assignee         `json:"assignees"`
	Activities   []EnrichedActivity `json:"activities"`
	Addresses    []Address          `json:"addresses"`
	Quotations   []DealQuotationView `json:"quotations"`
	PipelineLogs []PipelineLog      `json:"pipeline_logs"`
}

// DealQuotationView joins a deal-quotation link with its quotation record.
type DealQuotationView struct {
	DealQuotation
	Quotation *Quotation `json:"quotation"`
}

// ContactView is the enriched aggregate for a contact.
type ContactView struct {
	Contact
	Customer   *Customer          `json:"customer"`
	Assignees  []Assignee         `json:"assignees"`
	Activities []EnrichedActivity `json:"activities"`
	Addresses  []Address          `json:"addresses"`
}

// ActivityView is the enriched aggregate for an activity, including the
// resolved polymorphic relation target.
type ActivityView struct {
	EnrichedActivity
	RelatedEntity *RelatedEntity `json:"related_entity"`
}

// EmailView is the enriched aggregate for an email. Conversation is a
// best-effort mailbox hint and is always well-formed.
type EmailView struct {
	Email
	RelatedEntity  *RelatedEntity    `json:"related_entity"`
	MatchedContact *Contact          `json:"matched_contact"`
	SyncedActivity *EnrichedActivity `json:"synced_activity"`
	Conversation   ConversationCheck `json:"conversation"`
}

// ConversationCheck is the fixed-shape result of the mail-server
// conversation check. Every failure mode degrades to the zero value.
type ConversationCheck struct {
	Emails     []MailMessage `json:"emails"`
	HasEmails  bool          `json:"has_emails"`
	EmailCount int           `json:"email_count"`
}

// DashboardStats is the flat statistics object produced by the dashboard
// aggregator.
type DashboardStats struct {
	LeadsTotal       int                `json:"leads_total"`
	LeadsByStatus    map[string]int     `json:"leads_by_status"`
	LeadsBySource    map[string]int     `json:"leads_by_source"`
	ConversionRate   float64            `json:"conversion_rate"`
	AverageLeadScore float64            `json:"average_lead_score"`

	CustomersTotal int `json:"customers_total"`

	DealsTotal       int            `json:"deals_total"`
	DealsByStage     map[string]int `json:"deals_by_stage"`
	TotalRevenue     float64        `json:"total_revenue"`
	AverageDealValue float64        `json:"average_deal_value"`

	QuotationsTotal       int            `json:"quotations_total"`
	QuotationsByStatus    map[string]int `json:"quotations_by_status"`
	TotalQuotationValue   float64        `json:"total_quotation_value"`
	AverageQuotationValue float64        `json:"average_quotation_value"`

	ActivitiesTotal      int            `json:"activities_total"`
	ActivitiesByCategory map[string]int `json:"activities_by_category"`
	ActivitiesByPriority map[string]int `json:"activities_by_priority"`

	EmailsTotal        int            `json:"emails_total"`
	UnreadEmails       int            `json:"unread_emails"`
	FlaggedEmails      int            `json:"flagged_emails"`
	SyncedEmails       int            `json:"synced_emails"`
	EmailsByImportance map[string]int `json:"emails_by_importance"`
}
