package domain

import "time"

// Lead is an unconverted sales prospect.
type Lead struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"` // new, contacted, qualified, converted, lost
	Source         string    `json:"source"` // web, referral, campaign, cold_call, import
	Score          float64   `json:"score"`
	EstimatedValue float64   `json:"estimated_value"`
	CustomerID     *int64    `json:"customer_id"`
	ContactID      *int64    `json:"contact_id"`
	OwnerID        *int64    `json:"owner_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Contact is a person attached to a customer.
type Contact struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Position   string    `json:"position"`
	CustomerID *int64    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Customer is an account (company).
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	Website   string    `json:"website"`
	Phone     string    `json:"phone"`
	Revenue   float64   `json:"revenue"`
	CreatedAt time.Time `json:"created_at"`
}

// Deal is an opportunity in the sales pipeline.
type Deal struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Stage      string     `json:"stage"` // prospecting, qualification, proposal, negotiation, won, lost
	Value      float64    `json:"value"`
	Currency   string     `json:"currency"`
	CustomerID *int64     `json:"customer_id"`
	ContactID  *int64     `json:"contact_id"`
	LeadID     *int64     `json:"lead_id"`
	OwnerID    *int64     `json:"owner_id"`
	ClosedAt   *time.Time `json:"closed_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Activity is a unit of work or communication attached to a primary record
// by polymorphic relation.
type Activity struct {
	ID        int64            `json:"id"`
	Subject   string           `json:"subject"`
	Category  ActivityCategory `json:"category"`
	Status    string           `json:"status"`   // open, in_progress, done, cancelled
	Priority  string           `json:"priority"` // low, medium, high
	Relation  RelationRef      `json:"relation"`
	OwnerID   *int64           `json:"owner_id"`
	DueAt     *time.Time       `json:"due_at"`
	CreatedAt time.Time        `json:"created_at"`
}

// ActivityParticipant references exactly one of a contact or an internal
// user. Both references nil is a valid, unresolved participant.
type ActivityParticipant struct {
	ID         int64  `json:"id"`
	ActivityID int64  `json:"activity_id"`
	ContactID  *int64 `json:"contact_id"`
	UserID     *int64 `json:"user_id"`
}

// ActivityAttachment is file metadata linked to an activity; the blob
// itself lives in external storage.
type ActivityAttachment struct {
	ID          int64  `json:"id"`
	ActivityID  int64  `json:"activity_id"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
}

// Email is a synced message, optionally linked to an activity and
// tentatively matched to a contact and a related primary entity.
type Email struct {
	ID                    int64         `json:"id"`
	Subject               string        `json:"subject"`
	FromAddress           string        `json:"from_address"`
	ToAddresses           []string      `json:"to_addresses"`
	BodyPreview           string        `json:"body_preview"`
	Unread                bool          `json:"unread"`
	Flagged               bool          `json:"flagged"`
	Synced                bool          `json:"synced"`
	Importance            string        `json:"importance"` // low, normal, high
	ConversationID        string        `json:"conversation_id"`
	ActivityID            *int64        `json:"activity_id"`
	MatchedContactID      *int64        `json:"matched_contact_id"`
	PotentialRelationType *RelationType `json:"potential_relation_type"`
	PotentialRelationID   *int64        `json:"potential_relation_id"`
	ReceivedAt            time.Time     `json:"received_at"`
}

// AssigneeRole is the role of a user on a record.
type AssigneeRole string

const (
	RoleOwner        AssigneeRole = "owner"
	RoleCollaborator AssigneeRole = "collaborator"
	RoleFollower     AssigneeRole = "follower"
)

// Assignee binds a relation reference to a user identified by email.
type Assignee struct {
	ID        int64        `json:"id"`
	Relation  RelationRef  `json:"relation"`
	UserEmail string       `json:"user_email"`
	Role      AssigneeRole `json:"role"`
}

// Address is a postal address attached by polymorphic relation.
type Address struct {
	ID       int64       `json:"id"`
	Relation RelationRef `json:"relation"`
	Kind     string      `json:"kind"` // billing, shipping, office
	Street   string      `json:"street"`
	City     string      `json:"city"`
	Zip      string      `json:"zip"`
	Country  string      `json:"country"`
}

// Quotation is a priced offer document.
type Quotation struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"` // draft, sent, accepted, declined
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// DealQuotation links a quotation to a deal.
type DealQuotation struct {
	ID          int64 `json:"id"`
	DealID      int64 `json:"deal_id"`
	QuotationID int64 `json:"quotation_id"`
}

// PipelineLog records a deal stage transition.
type PipelineLog struct {
	ID        int64     `json:"id"`
	DealID    int64     `json:"deal_id"`
	FromStage string    `json:"from_stage"`
	ToStage   string    `json:"to_stage"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// User is an internal CRM user.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// MailMessage is a message as reported by the external mail server.
type MailMessage struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	From       string    `json:"from"`
	ReceivedAt time.Time `json:"received_at"`
}
