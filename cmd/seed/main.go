// Package main seeds demo records into the CRM backend through the public
// relay gateway. It is test-environment only and safe to re-run: the backend
// assigns fresh ids on every pass, so running it against a shared instance
// will duplicate data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"crm-relay.io/relay/internal/config"
	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
	"crm-relay.io/relay/internal/gateway/rest"
	"crm-relay.io/relay/internal/pkg/logger"
)

const defaultFixtureFile = "fixtures/demo.yaml"

// fixtureSet mirrors the YAML fixture layout. Contacts, leads and deals
// reference customers by zero-based position in the customers list, not by
// backend id, so the file stays portable across environments.
type fixtureSet struct {
	Customers []customerFixture `yaml:"customers"`
	Contacts  []contactFixture  `yaml:"contacts"`
	Leads     []leadFixture     `yaml:"leads"`
	Deals     []dealFixture     `yaml:"deals"`
}

type customerFixture struct {
	Name     string  `yaml:"name"`
	Industry string  `yaml:"industry"`
	Website  string  `yaml:"website"`
	Phone    string  `yaml:"phone"`
	Revenue  float64 `yaml:"revenue"`
}

type contactFixture struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Position  string `yaml:"position"`
	Customer  *int   `yaml:"customer"`
}

type leadFixture struct {
	Title          string  `yaml:"title"`
	Status         string  `yaml:"status"`
	Source         string  `yaml:"source"`
	Score          float64 `yaml:"score"`
	EstimatedValue float64 `yaml:"estimated_value"`
	Customer       *int    `yaml:"customer"`
}

type dealFixture struct {
	Title    string  `yaml:"title"`
	Stage    string  `yaml:"stage"`
	Value    float64 `yaml:"value"`
	Currency string  `yaml:"currency"`
	Customer *int    `yaml:"customer"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fixturePath := flag.String("fixtures", defaultFixtureFile, "path to the YAML fixture file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	fx, err := loadFixtures(*fixturePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	crm := rest.New(cfg.Backend)

	if err := crm.Ping(ctx); err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}

	logger.Info("Starting demo data seeding",
		zap.String("fixtures", *fixturePath),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	// Customers first: everything else references them by position.
	customerIDs, err := seedCustomers(ctx, crm, fx.Customers)
	if err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}

	if err := seedContacts(ctx, crm, fx.Contacts, customerIDs); err != nil {
		return fmt.Errorf("seed contacts: %w", err)
	}
	if err := seedLeads(ctx, crm, fx.Leads, customerIDs); err != nil {
		return fmt.Errorf("seed leads: %w", err)
	}
	if err := seedDeals(ctx, crm, fx.Deals, customerIDs); err != nil {
		return fmt.Errorf("seed deals: %w", err)
	}

	logger.Info("Demo data seeding completed",
		zap.Int("customers", len(fx.Customers)),
		zap.Int("contacts", len(fx.Contacts)),
		zap.Int("leads", len(fx.Leads)),
		zap.Int("deals", len(fx.Deals)),
	)
	return nil
}

func loadFixtures(path string) (*fixtureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}

	var fx fixtureSet
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}

	for i, c := range fx.Contacts {
		if err := checkCustomerRef(c.Customer, len(fx.Customers)); err != nil {
			return nil, fmt.Errorf("contact %d: %w", i, err)
		}
	}
	for i, l := range fx.Leads {
		if err := checkCustomerRef(l.Customer, len(fx.Customers)); err != nil {
			return nil, fmt.Errorf("lead %d: %w", i, err)
		}
	}
	for i, d := range fx.Deals {
		if err := checkCustomerRef(d.Customer, len(fx.Customers)); err != nil {
			return nil, fmt.Errorf("deal %d: %w", i, err)
		}
	}
	return &fx, nil
}

func checkCustomerRef(ref *int, customers int) error {
	if ref == nil {
		return nil
	}
	if *ref < 0 || *ref >= customers {
		return fmt.Errorf("customer reference %d out of range (have %d customers)", *ref, customers)
	}
	return nil
}

// seedCustomers creates customers sequentially so the returned id slice is
// positionally aligned with the fixture list.
func seedCustomers(ctx context.Context, crm gateway.CRM, fixtures []customerFixture) ([]int64, error) {
	ids := make([]int64, 0, len(fixtures))
	for _, f := range fixtures {
		created, err := crm.Customers().Create(ctx, &domain.Customer{
			Name:     f.Name,
			Industry: f.Industry,
			Website:  f.Website,
			Phone:    f.Phone,
			Revenue:  f.Revenue,
		})
		if err != nil {
			return nil, fmt.Errorf("create customer %q: %w", f.Name, err)
		}
		logger.Info("Seeded customer", zap.String("name", f.Name), zap.Int64("id", created.ID))
		ids = append(ids, created.ID)
	}
	return ids, nil
}

func seedContacts(ctx context.Context, crm gateway.CRM, fixtures []contactFixture, customerIDs []int64) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range fixtures {
		f := f
		g.Go(func() error {
			created, err := crm.Contacts().Create(ctx, &domain.Contact{
				FirstName:  f.FirstName,
				LastName:   f.LastName,
				Email:      f.Email,
				Phone:      f.Phone,
				Position:   f.Position,
				CustomerID: resolveCustomer(f.Customer, customerIDs),
			})
			if err != nil {
				return fmt.Errorf("create contact %s %s: %w", f.FirstName, f.LastName, err)
			}
			logger.Info("Seeded contact",
				zap.String("email", f.Email),
				zap.Int64("id", created.ID),
			)
			return nil
		})
	}
	return g.Wait()
}

func seedLeads(ctx context.Context, crm gateway.CRM, fixtures []leadFixture, customerIDs []int64) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range fixtures {
		f := f
		g.Go(func() error {
			created, err := crm.Leads().Create(ctx, &domain.Lead{
				Title:          f.Title,
				Status:         f.Status,
				Source:         f.Source,
				Score:          f.Score,
				EstimatedValue: f.EstimatedValue,
				CustomerID:     resolveCustomer(f.Customer, customerIDs),
			})
			if err != nil {
				return fmt.Errorf("create lead %q: %w", f.Title, err)
			}
			logger.Info("Seeded lead", zap.String("title", f.Title), zap.Int64("id", created.ID))
			return nil
		})
	}
	return g.Wait()
}

func seedDeals(ctx context.Context, crm gateway.CRM, fixtures []dealFixture, customerIDs []int64) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range fixtures {
		f := f
		g.Go(func() error {
			created, err := crm.Deals().Create(ctx, &domain.Deal{
				Title:      f.Title,
				Stage:      f.Stage,
				Value:      f.Value,
				Currency:   f.Currency,
				CustomerID: resolveCustomer(f.Customer, customerIDs),
			})
			if err != nil {
				return fmt.Errorf("create deal %q: %w", f.Title, err)
			}
			logger.Info("Seeded deal", zap.String("title", f.Title), zap.Int64("id", created.ID))
			return nil
		})
	}
	return g.Wait()
}

func resolveCustomer(ref *int, ids []int64) *int64 {
	if ref == nil {
		return nil
	}
	id := ids[*ref]
	return &id
}
