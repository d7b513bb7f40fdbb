// Package usecase implements the write-side orchestration: creating a
// lead or deal together with its dependent customer, contact, and initial
// activity. Dependent records are created strictly before the primary;
// the optional initial activity rides the backend's combined call so its
// persistence is transactional with the primary record.
package usecase

import (
	"context"
	"fmt"
	"time"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
)

// ActivityInput is the caller-supplied initial activity. Category is free
// text and is normalized before submission.
type ActivityInput struct {
	Subject  string     `json:"subject" binding:"required"`
	Category string     `json:"category"`
	Status   string     `json:"status"`
	Priority string     `json:"priority"`
	DueAt    *time.Time `json:"due_at"`
}

// CustomerInput is the payload for an inline customer creation.
type CustomerInput struct {
	Name     string `json:"name" binding:"required"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
	Phone    string `json:"phone"`
}

// ContactInput is the payload for an inline contact creation.
type ContactInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
}

// CreateLeadInput drives one lead creation. Selected ids win over inline
// payloads: when SelectedCustomerID is set the Customer payload is
// ignored, and likewise for contacts.
type CreateLeadInput struct {
	Lead struct {
		Title          string  `json:"title" binding:"required"`
		Status         string  `json:"status"`
		Source         string  `json:"source"`
		Score          float64 `json:"score"`
		EstimatedValue float64 `json:"estimated_value"`
		OwnerID        *int64  `json:"owner_id"`
	} `json:"lead"`

	Customer *CustomerInput `json:"customer"`
	Contact  *ContactInput  `json:"contact"`
	Activity *ActivityInput `json:"activity"`

	SelectedCustomerID *int64 `json:"selected_customer_id"`
	SelectedContactID  *int64 `json:"selected_contact_id"`
}

// CreateLeadOutput reports the created record graph.
type CreateLeadOutput struct {
	Lead       *domain.Lead `json:"lead"`
	CustomerID *int64       `json:"customer_id"`
	ContactID  *int64       `json:"contact_id"`
	ActivityID *int64       `json:"activity_id"`
}

// CreateLeadUseCase orchestrates lead creation.
type CreateLeadUseCase struct {
	crm gateway.CRM
}

// NewCreateLeadUseCase creates a CreateLeadUseCase.
func NewCreateLeadUseCase(crm gateway.CRM) *CreateLeadUseCase {
	return &CreateLeadUseCase{crm: crm}
}

// Execute runs the creation sequence: customer, then contact, then the
// lead (combined with the initial activity when one is supplied). Any
// dependent-creation failure aborts the whole operation.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	customerID, contactID, err := resolveDependents(ctx, uc.crm,
		input.SelectedCustomerID, input.Customer,
		input.SelectedContactID, input.Contact)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	lead := &domain.Lead{
		Title:          input.Lead.Title,
		Status:         input.Lead.Status,
		Source:         input.Lead.Source,
		Score:          input.Lead.Score,
		EstimatedValue: input.Lead.EstimatedValue,
		OwnerID:        input.Lead.OwnerID,
		CustomerID:     customerID,
		ContactID:      contactID,
	}

	out := &CreateLeadOutput{CustomerID: customerID, ContactID: contactID}

	if input.Activity == nil {
		created, err := uc.crm.Leads().Create(ctx, lead)
		if err != nil {
			return nil, fmt.Errorf("create lead: %w", err)
		}
		out.Lead = created
		return out, nil
	}

	combined, err := uc.crm.Leads().CreateWithActivity(ctx, lead, buildActivity(input.Activity))
	if err != nil {
		return nil, fmt.Errorf("create lead with activity: %w", err)
	}
	lead.ID = combined.PrimaryID
	out.Lead = lead
	out.ActivityID = combined.ActivityID
	return out, nil
}

// resolveDependents creates the customer and contact unless existing ids
// were selected. The contact references whichever customer id won.
func resolveDependents(ctx context.Context, crm gateway.CRM,
	selectedCustomerID *int64, customer *CustomerInput,
	selectedContactID *int64, contact *ContactInput,
) (customerID, contactID *int64, err error) {
	switch {
	case selectedCustomerID != nil:
		customerID = selectedCustomerID
	case customer != nil:
		created, err := crm.Customers().Create(ctx, &domain.Customer{
			Name:     customer.Name,
			Industry: customer.Industry,
			Website:  customer.Website,
			Phone:    customer.Phone,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create dependent customer: %w", err)
		}
		customerID = &created.ID
	}

	switch {
	case selectedContactID != nil:
		contactID = selectedContactID
	case contact != nil:
		created, err := crm.Contacts().Create(ctx, &domain.Contact{
			FirstName:  contact.FirstName,
			LastName:   contact.LastName,
			Email:      contact.Email,
			Phone:      contact.Phone,
			Position:   contact.Position,
			CustomerID: customerID,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create dependent contact: %w", err)
		}
		contactID = &created.ID
	}

	return customerID, contactID, nil
}

// buildActivity converts caller input into the backend payload, applying
// category normalization.
func buildActivity(input *ActivityInput) *domain.Activity {
	return &domain.Activity{
		Subject:  input.Subject,
		Category: domain.NormalizeCategory(input.Category),
		Status:   input.Status,
		Priority: input.Priority,
		DueAt:    input.DueAt,
	}
}
