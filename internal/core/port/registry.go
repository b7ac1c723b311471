package port

import (
	"context"
	"time"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

// CampaignRepository is the outbound port for campaign records outside the
// ledger's hot path: CRUD and finder queries. Campaigns are soft-deleted
// via the active flag; only DeleteCampaign removes rows (contributions
// cascade).
type CampaignRepository interface {
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	GetActiveCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	ListActiveCampaigns(ctx context.Context) ([]domain.Campaign, error)
	ListAllCampaigns(ctx context.Context) ([]domain.Campaign, error)
	UpdateCampaign(ctx context.Context, u *domain.CampaignUpdate) error
	DeactivateCampaign(ctx context.Context, id int64) error
	DeleteCampaign(ctx context.Context, id int64) error

	ListCampaignsByStatus(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error)
	ListCampaignsByProperty(ctx context.Context, propertyID int64) ([]domain.Campaign, error)
	ListCampaignsByProject(ctx context.Context, projectID int64) ([]domain.Campaign, error)
	// ListOpenFunding returns active campaigns whose deadline is on the
	// given day or later, nearest deadline first.
	ListOpenFunding(ctx context.Context, today time.Time) ([]domain.Campaign, error)
	// ListOverdueFunding returns active campaigns whose deadline passed
	// without reaching COMPLETED or CANCELLED.
	ListOverdueFunding(ctx context.Context, today time.Time) ([]domain.Campaign, error)
	// ListUnderfunded returns active campaigns still short of their
	// target, nearest deadline first.
	ListUnderfunded(ctx context.Context) ([]domain.Campaign, error)
	// SearchCampaigns matches term against campaign name, description and
	// the linked property's name, case-insensitively.
	SearchCampaigns(ctx context.Context, term string) ([]domain.Campaign, error)
}

// InvestorRepository is the outbound port for investor records.
type InvestorRepository interface {
	CreateInvestor(ctx context.Context, inv *domain.Investor) error
	GetInvestor(ctx context.Context, id int64) (*domain.Investor, error)
	GetInvestorByTaxID(ctx context.Context, taxID string) (*domain.Investor, error)
	ListInvestors(ctx context.Context, activeOnly bool) ([]domain.Investor, error)
	UpdateInvestor(ctx context.Context, u *domain.InvestorUpdate) error
	SetInvestorActive(ctx context.Context, id int64, active bool) error
	DeleteInvestor(ctx context.Context, id int64) error
}

// PropertyRepository is the outbound port for property records.
type PropertyRepository interface {
	CreateProperty(ctx context.Context, p *domain.Property) error
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	ListProperties(ctx context.Context, activeOnly bool) ([]domain.Property, error)
	UpdateProperty(ctx context.Context, u *domain.PropertyUpdate) error
	DeleteProperty(ctx context.Context, id int64) error
}

// ProjectRepository is the outbound port for project records.
type ProjectRepository interface {
	CreateProject(ctx context.Context, p *domain.Project) error
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error)
	UpdateProject(ctx context.Context, u *domain.ProjectUpdate) error
	DeleteProject(ctx context.Context, id int64) error
}

// RegistryUseCase is the inbound port for back-office CRUD over campaigns,
// investors, properties and projects.
type RegistryUseCase interface {
	CreateCampaign(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, includeInactive bool) ([]domain.Campaign, error)
	UpdateCampaign(ctx context.Context, u *domain.CampaignUpdate) (*domain.Campaign, error)
	DeactivateCampaign(ctx context.Context, id int64) error
	DeleteCampaign(ctx context.Context, id int64) error
	CampaignsByStatus(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error)
	CampaignsByProperty(ctx context.Context, propertyID int64) ([]domain.Campaign, error)
	CampaignsByProject(ctx context.Context, projectID int64) ([]domain.Campaign, error)
	OpenFundingCampaigns(ctx context.Context) ([]domain.Campaign, error)
	OverdueFundingCampaigns(ctx context.Context) ([]domain.Campaign, error)
	UnderfundedCampaigns(ctx context.Context) ([]domain.Campaign, error)
	SearchCampaigns(ctx context.Context, term string) ([]domain.Campaign, error)

	CreateInvestor(ctx context.Context, inv *domain.Investor) (*domain.Investor, error)
	GetInvestor(ctx context.Context, id int64) (*domain.Investor, error)
	ListInvestors(ctx context.Context, activeOnly bool) ([]domain.Investor, error)
	UpdateInvestor(ctx context.Context, u *domain.InvestorUpdate) (*domain.Investor, error)
	DeactivateInvestor(ctx context.Context, id int64) error
	DeleteInvestor(ctx context.Context, id int64) error

	CreateProperty(ctx context.Context, p *domain.Property) (*domain.Property, error)
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	ListProperties(ctx context.Context, activeOnly bool) ([]domain.Property, error)
	UpdateProperty(ctx context.Context, u *domain.PropertyUpdate) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id int64) error

	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context, activeOnly bool) ([]domain.Project, error)
	UpdateProject(ctx context.Context, u *domain.ProjectUpdate) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}
