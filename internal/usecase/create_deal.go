package usecase

import (
	"context"
	"fmt"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
)

// CreateDealInput drives one deal creation. Selection semantics match
// CreateLeadInput: selected ids win over inline payloads.
type CreateDealInput struct {
	Deal struct {
		Title    string  `json:"title" binding:"required"`
		Stage    string  `json:"stage"`
		Value    float64 `json:"value"`
		Currency string  `json:"currency"`
		LeadID   *int64  `json:"lead_id"`
		OwnerID  *int64  `json:"owner_id"`
	} `json:"deal"`

	Customer *CustomerInput `json:"customer"`
	Contact  *ContactInput  `json:"contact"`
	Activity *ActivityInput `json:"activity"`

	SelectedCustomerID *int64 `json:"selected_customer_id"`
	SelectedContactID  *int64 `json:"selected_contact_id"`
}

// CreateDealOutput reports the created record graph.
type CreateDealOutput struct {
	Deal       *domain.Deal `json:"deal"`
	CustomerID *int64       `json:"customer_id"`
	ContactID  *int64       `json:"contact_id"`
	ActivityID *int64       `json:"activity_id"`
}

// CreateDealUseCase orchestrates deal creation.
type CreateDealUseCase struct {
	crm gateway.CRM
}

// NewCreateDealUseCase creates a CreateDealUseCase.
func NewCreateDealUseCase(crm gateway.CRM) *CreateDealUseCase {
	return &CreateDealUseCase{crm: crm}
}

// Execute runs the creation sequence for a deal, with the same dependent
// ordering and failure policy as lead creation.
func (uc *CreateDealUseCase) Execute(ctx context.Context, input CreateDealInput) (*CreateDealOutput, error) {
	customerID, contactID, err := resolveDependents(ctx, uc.crm,
		input.SelectedCustomerID, input.Customer,
		input.SelectedContactID, input.Contact)
	if err != nil {
		return nil, fmt.Errorf("create deal: %w", err)
	}

	deal := &domain.Deal{
		Title:      input.Deal.Title,
		Stage:      input.Deal.Stage,
		Value:      input.Deal.Value,
		Currency:   input.Deal.Currency,
		LeadID:     input.Deal.LeadID,
		OwnerID:    input.Deal.OwnerID,
		CustomerID: customerID,
		ContactID:  contactID,
	}

	out := &CreateDealOutput{CustomerID: customerID, ContactID: contactID}

	if input.Activity == nil {
		created, err := uc.crm.Deals().Create(ctx, deal)
		if err != nil {
			return nil, fmt.Errorf("create deal: %w", err)
		}
		out.Deal = created
		return out, nil
	}

	combined, err := uc.crm.Deals().CreateWithActivity(ctx, deal, buildActivity(input.Activity))
	if err != nil {
		return nil, fmt.Errorf("create deal with activity: %w", err)
	}
	deal.ID = combined.PrimaryID
	out.Deal = deal
	out.ActivityID = combined.ActivityID
	return out, nil
}
