package usecase

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/pkg/logger"
	"crm-relay.io/relay/internal/testutil"
)

func TestMain(m *testing.M) {
	_ = logger.Init("error", "json")
	os.Exit(m.Run())
}

func int64Ptr(v int64) *int64 { return &v }

func leadInput() CreateLeadInput {
	var input CreateLeadInput
	input.Lead.Title = "Expansion lead"
	input.Lead.Status = "new"
	input.Lead.Source = "web"
	return input
}

func TestCreateLead_FullGraphInOrder(t *testing.T) {
	crm := testutil.NewFakeCRM()
	uc := NewCreateLeadUseCase(crm)

	input := leadInput()
	input.Customer = &CustomerInput{Name: "Vandelay Industries"}
	input.Contact = &ContactInput{FirstName: "Ada", LastName: "Byrne"}
	input.Activity = &ActivityInput{Subject: "Intro call", Category: "call"}

	out, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, out)

	require.NotNil(t, out.CustomerID)
	require.NotNil(t, out.ContactID)
	require.NotNil(t, out.ActivityID)
	require.NotNil(t, out.Lead)
	assert.Equal(t, out.CustomerID, out.Lead.CustomerID)
	assert.Equal(t, out.ContactID, out.Lead.ContactID)

	// Dependents strictly precede the primary, and exactly three
	// creation calls are made.
	assert.Equal(t, []string{
		"customers.create",
		"contacts.create",
		"leads.create_with_activity",
	}, crm.Order())

	// The created contact references the created customer.
	contact := crm.ContactsByID[*out.ContactID]
	require.NotNil(t, contact.CustomerID)
	assert.Equal(t, *out.CustomerID, *contact.CustomerID)
}

func TestCreateLead_SelectedIDsSkipDependentCreation(t *testing.T) {
	crm := testutil.NewFakeCRM()
	uc := NewCreateLeadUseCase(crm)

	input := leadInput()
	input.Customer = &CustomerInput{Name: "ignored"}
	input.Contact = &ContactInput{FirstName: "ignored"}
	input.SelectedCustomerID = int64Ptr(7)
	input.SelectedContactID = int64Ptr(9)

	out, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(7), *out.CustomerID)
	assert.Equal(t, int64(9), *out.ContactID)
	assert.Equal(t, 0, crm.CallCount("customers.create"))
	assert.Equal(t, 0, crm.CallCount("contacts.create"))
	assert.Equal(t, []string{"leads.create"}, crm.Order())
}

func TestCreateLead_WithoutActivityUsesPlainCreate(t *testing.T) {
	crm := testutil.NewFakeCRM()
	uc := NewCreateLeadUseCase(crm)

	out, err := uc.Execute(context.Background(), leadInput())
	require.NoError(t, err)
	require.NotNil(t, out.Lead)
	assert.Nil(t, out.ActivityID)
	assert.Nil(t, out.CustomerID)
	assert.Nil(t, out.ContactID)
	assert.Equal(t, 1, crm.CallCount("leads.create"))
	assert.Equal(t, 0, crm.CallCount("leads.create_with_activity"))
}

func TestCreateLead_DependentFailureAborts(t *testing.T) {
	crm := testutil.NewFakeCRM()
	boom := errors.New("backend rejected customer")
	crm.FailOn["customers.create"] = boom
	uc := NewCreateLeadUseCase(crm)

	input := leadInput()
	input.Customer = &CustomerInput{Name: "Vandelay Industries"}
	input.Contact = &ContactInput{FirstName: "Ada"}

	out, err := uc.Execute(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)

	// Nothing after the failed dependent is attempted.
	assert.Equal(t, 0, crm.CallCount("contacts.create"))
	assert.Equal(t, 0, crm.CallCount("leads.create"))
	assert.Equal(t, 0, crm.CallCount("leads.create_with_activity"))
}

func TestCreateLead_NormalizesActivityCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.ActivityCategory
	}{
		{"call", domain.CategoryCall},
		{"  Meeting ", domain.CategoryMeeting},
		{"EMAIL", domain.CategoryEmail},
		{"carrier-pigeon", domain.CategoryNote},
		{"", domain.CategoryNote},
	}
	for _, tt := range tests {
		activity := buildActivity(&ActivityInput{Subject: "x", Category: tt.raw})
		assert.Equal(t, tt.want, activity.Category, "category %q", tt.raw)
	}
}

func TestCreateDeal_FullGraphInOrder(t *testing.T) {
	crm := testutil.NewFakeCRM()
	uc := NewCreateDealUseCase(crm)

	var input CreateDealInput
	input.Deal.Title = "Expansion"
	input.Deal.Stage = "prospecting"
	input.Deal.LeadID = int64Ptr(42)
	input.Customer = &CustomerInput{Name: "Vandelay Industries"}
	input.Contact = &ContactInput{FirstName: "Ada"}
	input.Activity = &ActivityInput{Subject: "Kickoff", Category: "meeting"}

	out, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, out.Deal)
	require.NotNil(t, out.ActivityID)
	assert.Equal(t, int64Ptr(42), out.Deal.LeadID)

	assert.Equal(t, []string{
		"customers.create",
		"contacts.create",
		"deals.create_with_activity",
	}, crm.Order())
}

func TestCreateDeal_SelectedCustomerOnly(t *testing.T) {
	crm := testutil.NewFakeCRM()
	uc := NewCreateDealUseCase(crm)

	var input CreateDealInput
	input.Deal.Title = "Direct deal"
	input.SelectedCustomerID = int64Ptr(7)
	input.Contact = &ContactInput{FirstName: "Ada"}

	out, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(7), *out.CustomerID)
	require.NotNil(t, out.ContactID)

	// Inline contact still references the selected customer.
	contact := crm.ContactsByID[*out.ContactID]
	require.NotNil(t, contact.CustomerID)
	assert.Equal(t, int64(7), *contact.CustomerID)
	assert.Equal(t, []string{"contacts.create", "deals.create"}, crm.Order())
}
