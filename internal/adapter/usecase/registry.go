package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

// RegistryUseCase implements the back-office CRUD over campaigns,
// investors, properties and projects. Validation happens here; repositories
// only persist.
type RegistryUseCase struct {
	campaigns  port.CampaignRepository
	investors  port.InvestorRepository
	properties port.PropertyRepository
	projects   port.ProjectRepository
	ledger     port.LedgerRepository

	now func() time.Time
}

// NewRegistryUseCase wires the registry over its repositories. The ledger
// repository is consulted when deleting investors, to refuse removal while
// contributions exist.
func NewRegistryUseCase(
	campaigns port.CampaignRepository,
	investors port.InvestorRepository,
	properties port.PropertyRepository,
	projects port.ProjectRepository,
	ledger port.LedgerRepository,
) *RegistryUseCase {
	return &RegistryUseCase{
		campaigns:  campaigns,
		investors:  investors,
		properties: properties,
		projects:   projects,
		ledger:     ledger,
		now:        time.Now,
	}
}

// Campaigns

// CreateCampaign validates and stores a new campaign. New campaigns start
// in PLANNING with nothing raised unless a status is given explicitly.
func (u *RegistryUseCase) CreateCampaign(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("%w: campaign name is required", port.ErrInvalidInput)
	}
	if c.PropertyID == 0 || c.ProjectID == 0 {
		return nil, fmt.Errorf("%w: campaign needs a property and a project", port.ErrInvalidInput)
	}
	if c.RequiredAmount.IsNegative() {
		return nil, fmt.Errorf("%w: required amount cannot be negative", port.ErrInvalidInput)
	}
	if c.MinimumContribution.Valid && c.MinimumContribution.Decimal.IsNegative() {
		return nil, fmt.Errorf("%w: minimum contribution cannot be negative", port.ErrInvalidInput)
	}
	if c.Status == "" {
		c.Status = domain.StatusPlanning
	}
	if !domain.ValidStatus(c.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", port.ErrInvalidInput, c.Status)
	}
	c.RaisedAmount = decimal.Zero
	c.Active = true
	if err := u.campaigns.CreateCampaign(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return c, nil
}

// GetCampaign returns an active campaign by id.
func (u *RegistryUseCase) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := u.campaigns.GetActiveCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, port.ErrCampaignNotFound
	}
	return c, nil
}

// ListCampaigns returns campaigns newest first, optionally including
// deactivated ones.
func (u *RegistryUseCase) ListCampaigns(ctx context.Context, includeInactive bool) ([]domain.Campaign, error) {
	if includeInactive {
		return u.campaigns.ListAllCampaigns(ctx)
	}
	return u.campaigns.ListActiveCampaigns(ctx)
}

// UpdateCampaign applies a partial update and returns the updated record.
func (u *RegistryUseCase) UpdateCampaign(ctx context.Context, upd *domain.CampaignUpdate) (*domain.Campaign, error) {
	if upd.ID == 0 {
		return nil, fmt.Errorf("%w: campaign id is required", port.ErrInvalidInput)
	}
	if upd.Status != nil && !domain.ValidStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", port.ErrInvalidInput, *upd.Status)
	}
	if upd.RequiredAmount != nil && upd.RequiredAmount.IsNegative() {
		return nil, fmt.Errorf("%w: required amount cannot be negative", port.ErrInvalidInput)
	}
	if err := u.campaigns.UpdateCampaign(ctx, upd); err != nil {
		return nil, err
	}
	return u.GetCampaign(ctx, upd.ID)
}

// DeactivateCampaign soft-deletes a campaign, hiding it from all default
// queries while keeping its history.
func (u *RegistryUseCase) DeactivateCampaign(ctx context.Context, id int64) error {
	return u.campaigns.DeactivateCampaign(ctx, id)
}

// DeleteCampaign removes the campaign and, by cascade, its contributions.
func (u *RegistryUseCase) DeleteCampaign(ctx context.Context, id int64) error {
	return u.campaigns.DeleteCampaign(ctx, id)
}

func (u *RegistryUseCase) CampaignsByStatus(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", port.ErrInvalidInput, status)
	}
	return u.campaigns.ListCampaignsByStatus(ctx, status)
}

func (u *RegistryUseCase) CampaignsByProperty(ctx context.Context, propertyID int64) ([]domain.Campaign, error) {
	return u.campaigns.ListCampaignsByProperty(ctx, propertyID)
}

func (u *RegistryUseCase) CampaignsByProject(ctx context.Context, projectID int64) ([]domain.Campaign, error) {
	return u.campaigns.ListCampaignsByProject(ctx, projectID)
}

func (u *RegistryUseCase) OpenFundingCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return u.campaigns.ListOpenFunding(ctx, u.now())
}

func (u *RegistryUseCase) OverdueFundingCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return u.campaigns.ListOverdueFunding(ctx, u.now())
}

func (u *RegistryUseCase) UnderfundedCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return u.campaigns.ListUnderfunded(ctx)
}

func (u *RegistryUseCase) SearchCampaigns(ctx context.Context, term string) ([]domain.Campaign, error) {
	if term == "" {
		return u.campaigns.ListActiveCampaigns(ctx)
	}
	return u.campaigns.SearchCampaigns(ctx, term)
}

// Investors

// CreateInvestor stores a new investor after checking the tax id is free
// and the fund figures are coherent.
func (u *RegistryUseCase) CreateInvestor(ctx context.Context, inv *domain.Investor) (*domain.Investor, error) {
	if inv.Name == "" || inv.TaxID == "" {
		return nil, fmt.Errorf("%w: investor name and tax id are required", port.ErrInvalidInput)
	}
	if inv.InvestedFunds.GreaterThan(inv.TotalFunds) {
		return nil, fmt.Errorf("%w: invested funds cannot exceed total funds", port.ErrInvalidInput)
	}
	existing, err := u.investors.GetInvestorByTaxID(ctx, inv.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, port.ErrDuplicateTaxID
	}
	inv.Active = true
	if err := u.investors.CreateInvestor(ctx, inv); err != nil {
		return nil, fmt.Errorf("create investor: %w", err)
	}
	return inv, nil
}

func (u *RegistryUseCase) GetInvestor(ctx context.Context, id int64) (*domain.Investor, error) {
	inv, err := u.investors.GetInvestor(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, port.ErrInvestorNotFound
	}
	return inv, nil
}

func (u *RegistryUseCase) ListInvestors(ctx context.Context, activeOnly bool) ([]domain.Investor, error) {
	return u.investors.ListInvestors(ctx, activeOnly)
}

// UpdateInvestor applies a partial update, re-checking tax id uniqueness
// and fund coherence against the resulting record.
func (u *RegistryUseCase) UpdateInvestor(ctx context.Context, upd *domain.InvestorUpdate) (*domain.Investor, error) {
	if upd.ID == 0 {
		return nil, fmt.Errorf("%w: investor id is required", port.ErrInvalidInput)
	}
	current, err := u.GetInvestor(ctx, upd.ID)
	if err != nil {
		return nil, err
	}
	if upd.TaxID != nil && *upd.TaxID != current.TaxID {
		other, err := u.investors.GetInvestorByTaxID(ctx, *upd.TaxID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, port.ErrDuplicateTaxID
		}
	}
	total := current.TotalFunds
	if upd.TotalFunds != nil {
		total = *upd.TotalFunds
	}
	invested := current.InvestedFunds
	if upd.InvestedFunds != nil {
		invested = *upd.InvestedFunds
	}
	if invested.GreaterThan(total) {
		return nil, fmt.Errorf("%w: invested funds cannot exceed total funds", port.ErrInvalidInput)
	}
	if err := u.investors.UpdateInvestor(ctx, upd); err != nil {
		return nil, err
	}
	return u.GetInvestor(ctx, upd.ID)
}

func (u *RegistryUseCase) DeactivateInvestor(ctx context.Context, id int64) error {
	return u.investors.SetInvestorActive(ctx, id, false)
}

// DeleteInvestor removes the investor unless contributions still reference
// them; withdrawals must happen first.
func (u *RegistryUseCase) DeleteInvestor(ctx context.Context, id int64) error {
	count, err := u.ledger.CountInvestorCampaigns(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return port.ErrInvestorHasContributions
	}
	return u.investors.DeleteInvestor(ctx, id)
}

// Properties

func (u *RegistryUseCase) CreateProperty(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: property name is required", port.ErrInvalidInput)
	}
	if p.AvailableArea > p.TotalArea {
		return nil, fmt.Errorf("%w: available area cannot exceed total area", port.ErrInvalidInput)
	}
	p.Active = true
	if err := u.properties.CreateProperty(ctx, p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return p, nil
}

func (u *RegistryUseCase) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := u.properties.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, port.ErrPropertyNotFound
	}
	return p, nil
}

func (u *RegistryUseCase) ListProperties(ctx context.Context, activeOnly bool) ([]domain.Property, error) {
	return u.properties.ListProperties(ctx, activeOnly)
}

func (u *RegistryUseCase) UpdateProperty(ctx context.Context, upd *domain.PropertyUpdate) (*domain.Property, error) {
	if upd.ID == 0 {
		return nil, fmt.Errorf("%w: property id is required", port.ErrInvalidInput)
	}
	if err := u.properties.UpdateProperty(ctx, upd); err != nil {
		return nil, err
	}
	return u.GetProperty(ctx, upd.ID)
}

func (u *RegistryUseCase) DeleteProperty(ctx context.Context, id int64) error {
	return u.properties.DeleteProperty(ctx, id)
}

// Projects

func (u *RegistryUseCase) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", port.ErrInvalidInput)
	}
	if p.Status == "" {
		p.Status = domain.ProjectPlanned
	}
	p.Active = true
	if err := u.projects.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (u *RegistryUseCase) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := u.projects.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, port.ErrProjectNotFound
	}
	return p, nil
}

func (u *RegistryUseCase) ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	return u.projects.ListProjects(ctx, activeOnly)
}

func (u *RegistryUseCase) UpdateProject(ctx context.Context, upd *domain.ProjectUpdate) (*domain.Project, error) {
	if upd.ID == 0 {
		return nil, fmt.Errorf("%w: project id is required", port.ErrInvalidInput)
	}
	if err := u.projects.UpdateProject(ctx, upd); err != nil {
		return nil, err
	}
	return u.GetProject(ctx, upd.ID)
}

func (u *RegistryUseCase) DeleteProject(ctx context.Context, id int64) error {
	return u.projects.DeleteProject(ctx, id)
}
