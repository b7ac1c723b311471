package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ciroschultz/Renovacampo/internal/adapter/memory"
	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

// fakeCampaigns overrides only the methods a test needs; a call to anything
// else panics through the embedded nil interface, which is exactly what we
// want from an unexpected repository hit.
type fakeCampaigns struct {
	port.CampaignRepository
	created *domain.Campaign
}

func (f *fakeCampaigns) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	c.ID = 1
	f.created = c
	return nil
}

type fakeInvestors struct {
	port.InvestorRepository
	byTaxID map[string]*domain.Investor
	byID    map[int64]*domain.Investor
	deleted []int64
}

func (f *fakeInvestors) CreateInvestor(_ context.Context, inv *domain.Investor) error {
	inv.ID = int64(len(f.byID) + 1)
	f.byID[inv.ID] = inv
	f.byTaxID[inv.TaxID] = inv
	return nil
}

func (f *fakeInvestors) GetInvestor(_ context.Context, id int64) (*domain.Investor, error) {
	return f.byID[id], nil
}

func (f *fakeInvestors) GetInvestorByTaxID(_ context.Context, taxID string) (*domain.Investor, error) {
	return f.byTaxID[taxID], nil
}

func (f *fakeInvestors) DeleteInvestor(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func newFakeInvestors() *fakeInvestors {
	return &fakeInvestors{
		byTaxID: make(map[string]*domain.Investor),
		byID:    make(map[int64]*domain.Investor),
	}
}

type fakeProperties struct {
	port.PropertyRepository
	created *domain.Property
}

func (f *fakeProperties) CreateProperty(_ context.Context, p *domain.Property) error {
	p.ID = 1
	f.created = p
	return nil
}

type fakeProjects struct {
	port.ProjectRepository
	created *domain.Project
}

func (f *fakeProjects) CreateProject(_ context.Context, p *domain.Project) error {
	p.ID = 1
	f.created = p
	return nil
}

func TestCreateCampaignValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewRegistryUseCase(&fakeCampaigns{}, nil, nil, nil, nil)

	cases := []struct {
		name     string
		campaign domain.Campaign
	}{
		{"missing name", domain.Campaign{PropertyID: 1, ProjectID: 1}},
		{"missing property", domain.Campaign{Name: "c", ProjectID: 1}},
		{"missing project", domain.Campaign{Name: "c", PropertyID: 1}},
		{"negative required", domain.Campaign{Name: "c", PropertyID: 1, ProjectID: 1, RequiredAmount: dec("-1")}},
		{"bad status", domain.Campaign{Name: "c", PropertyID: 1, ProjectID: 1, Status: "BOGUS"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateCampaign(ctx, &tc.campaign); !errors.Is(err, port.ErrInvalidInput) {
			t.Fatalf("%s: err = %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

func TestCreateCampaignDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &fakeCampaigns{}
	svc := NewRegistryUseCase(repo, nil, nil, nil, nil)

	// a client-sent raised amount must not survive creation
	c, err := svc.CreateCampaign(ctx, &domain.Campaign{
		Name:           "Boa Vista round",
		PropertyID:     1,
		ProjectID:      1,
		RequiredAmount: dec("10000.00"),
		RaisedAmount:   dec("9999.00"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Status != domain.StatusPlanning {
		t.Fatalf("status = %s, want PLANNING default", c.Status)
	}
	if !c.RaisedAmount.IsZero() {
		t.Fatalf("raised = %s, want 0", c.RaisedAmount)
	}
	if !c.Active {
		t.Fatal("new campaign not active")
	}
	if repo.created == nil || repo.created.ID != 1 {
		t.Fatal("campaign not persisted")
	}
}

func TestCreateInvestorDuplicateTaxID(t *testing.T) {
	ctx := context.Background()
	investors := newFakeInvestors()
	svc := NewRegistryUseCase(nil, investors, nil, nil, nil)

	first := &domain.Investor{Name: "Ana", TaxID: "111.444.777-35", TotalFunds: dec("1000")}
	if _, err := svc.CreateInvestor(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	second := &domain.Investor{Name: "Bruno", TaxID: "111.444.777-35"}
	if _, err := svc.CreateInvestor(ctx, second); !errors.Is(err, port.ErrDuplicateTaxID) {
		t.Fatalf("duplicate tax id: %v, want ErrDuplicateTaxID", err)
	}
}

func TestCreateInvestorFundCoherence(t *testing.T) {
	ctx := context.Background()
	svc := NewRegistryUseCase(nil, newFakeInvestors(), nil, nil, nil)

	inv := &domain.Investor{Name: "Ana", TaxID: "x", TotalFunds: dec("100"), InvestedFunds: dec("150")}
	if _, err := svc.CreateInvestor(ctx, inv); !errors.Is(err, port.ErrInvalidInput) {
		t.Fatalf("invested > total: %v, want ErrInvalidInput", err)
	}
}

func TestUpdateInvestorChecks(t *testing.T) {
	ctx := context.Background()
	investors := newFakeInvestors()
	svc := NewRegistryUseCase(nil, investors, nil, nil, nil)

	ana, _ := svc.CreateInvestor(ctx, &domain.Investor{Name: "Ana", TaxID: "tax-a", TotalFunds: dec("1000")})
	bruno, _ := svc.CreateInvestor(ctx, &domain.Investor{Name: "Bruno", TaxID: "tax-b", TotalFunds: dec("1000")})

	// stealing another investor's tax id is refused
	taken := ana.TaxID
	if _, err := svc.UpdateInvestor(ctx, &domain.InvestorUpdate{ID: bruno.ID, TaxID: &taken}); !errors.Is(err, port.ErrDuplicateTaxID) {
		t.Fatalf("tax id clash: %v, want ErrDuplicateTaxID", err)
	}

	// lowering total funds below the invested figure is refused
	lowTotal := dec("50")
	invested := dec("200")
	if _, err := svc.UpdateInvestor(ctx, &domain.InvestorUpdate{ID: ana.ID, TotalFunds: &lowTotal, InvestedFunds: &invested}); !errors.Is(err, port.ErrInvalidInput) {
		t.Fatalf("incoherent funds: %v, want ErrInvalidInput", err)
	}
}

func TestDeleteInvestorGuardedByContributions(t *testing.T) {
	ctx := context.Background()
	investors := newFakeInvestors()
	ledger := memory.NewLedgerStore()
	svc := NewRegistryUseCase(nil, investors, nil, nil, ledger)

	ana, _ := svc.CreateInvestor(ctx, &domain.Investor{Name: "Ana", TaxID: "tax-a", TotalFunds: dec("1000")})

	ledger.PutCampaign(activeCampaign(1, "1000.00", "0"))
	if err := ledger.AdmitContribution(ctx, &domain.Contribution{CampaignID: 1, InvestorID: ana.ID, Amount: dec("100")}); err != nil {
		t.Fatalf("seed contribution: %v", err)
	}

	if err := svc.DeleteInvestor(ctx, ana.ID); !errors.Is(err, port.ErrInvestorHasContributions) {
		t.Fatalf("delete with contributions: %v, want ErrInvestorHasContributions", err)
	}

	if err := ledger.WithdrawContribution(ctx, 1, ana.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if err := svc.DeleteInvestor(ctx, ana.ID); err != nil {
		t.Fatalf("delete after withdrawal: %v", err)
	}
	if len(investors.deleted) != 1 || investors.deleted[0] != ana.ID {
		t.Fatalf("deleted ids = %v, want [%d]", investors.deleted, ana.ID)
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	ctx := context.Background()
	repo := &fakeProperties{}
	svc := NewRegistryUseCase(nil, nil, repo, nil, nil)

	if _, err := svc.CreateProperty(ctx, &domain.Property{TotalArea: 10}); !errors.Is(err, port.ErrInvalidInput) {
		t.Fatalf("missing name: %v, want ErrInvalidInput", err)
	}
	if _, err := svc.CreateProperty(ctx, &domain.Property{Name: "Fazenda", TotalArea: 10, AvailableArea: 20}); !errors.Is(err, port.ErrInvalidInput) {
		t.Fatalf("available > total: %v, want ErrInvalidInput", err)
	}

	p, err := svc.CreateProperty(ctx, &domain.Property{Name: "Fazenda", TotalArea: 100, AvailableArea: 40})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !p.Active {
		t.Fatal("new property not active")
	}
}

func TestCreateProjectDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &fakeProjects{}
	svc := NewRegistryUseCase(nil, nil, nil, repo, nil)

	p, err := svc.CreateProject(ctx, &domain.Project{Name: "Irrigation overhaul"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != domain.ProjectPlanned {
		t.Fatalf("status = %s, want PLANNED default", p.Status)
	}
	if !p.Active {
		t.Fatal("new project not active")
	}
}
