package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFixtures = `
customers:
  - name: Acme Rockets
    industry: aerospace
    revenue: 1000000
  - name: Globex
    industry: energy

contacts:
  - first_name: Jane
    last_name: Doe
    email: jane@acme.example.com
    customer: 0

leads:
  - title: Acme booster inquiry
    status: new
    source: web
    score: 70
    estimated_value: 5000
    customer: 1
  - title: Walk-in lead
    status: new
    source: cold_call

deals:
  - title: Globex expansion
    stage: proposal
    value: 90000
    currency: USD
    customer: 1
`

func writeFixtureFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}
	return path
}

func TestLoadFixtures_ParsesAllCollections(t *testing.T) {
	t.Parallel()

	fx, err := loadFixtures(writeFixtureFile(t, sampleFixtures))
	if err != nil {
		t.Fatalf("loadFixtures: %v", err)
	}

	if len(fx.Customers) != 2 {
		t.Fatalf("customers = %d, want 2", len(fx.Customers))
	}
	if fx.Customers[0].Name != "Acme Rockets" || fx.Customers[0].Revenue != 1000000 {
		t.Fatalf("unexpected first customer: %+v", fx.Customers[0])
	}
	if len(fx.Contacts) != 1 || fx.Contacts[0].Customer == nil || *fx.Contacts[0].Customer != 0 {
		t.Fatalf("unexpected contacts: %+v", fx.Contacts)
	}
	if len(fx.Leads) != 2 {
		t.Fatalf("leads = %d, want 2", len(fx.Leads))
	}
	if fx.Leads[1].Customer != nil {
		t.Fatalf("walk-in lead should have no customer reference")
	}
	if len(fx.Deals) != 1 || fx.Deals[0].Currency != "USD" {
		t.Fatalf("unexpected deals: %+v", fx.Deals)
	}
}

func TestLoadFixtures_RejectsOutOfRangeCustomerRef(t *testing.T) {
	t.Parallel()

	broken := strings.Replace(sampleFixtures, "customer: 1", "customer: 7", 1)
	_, err := loadFixtures(writeFixtureFile(t, broken))
	if err == nil {
		t.Fatal("expected out-of-range customer reference to fail")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFixtures_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := loadFixtures(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}

func TestResolveCustomer(t *testing.T) {
	t.Parallel()

	ids := []int64{101, 102, 103}
	if got := resolveCustomer(nil, ids); got != nil {
		t.Fatalf("nil reference resolved to %v", *got)
	}
	ref := 2
	got := resolveCustomer(&ref, ids)
	if got == nil || *got != 103 {
		t.Fatalf("resolveCustomer(&2) = %v, want 103", got)
	}
}
