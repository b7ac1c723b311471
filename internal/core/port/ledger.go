package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

// LedgerRepository is the persistence contract of the funding ledger. It is
// an outbound port; implementations must make AdmitContribution's
// insert-and-raise atomic against concurrent admissions on the same
// campaign, so that the raised amount never exceeds the required amount and
// the (campaign, investor) pair stays unique.
type LedgerRepository interface {
	// GetActiveCampaign returns the campaign by id, or nil when it does
	// not exist or is soft-deleted.
	GetActiveCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ContributionExists reports whether the investor already holds a
	// contribution in the campaign.
	ContributionExists(ctx context.Context, campaignID, investorID int64) (bool, error)
	// AdmitContribution persists c and increments the campaign's raised
	// amount in one atomic step, re-checking eligibility and headroom
	// under a row lock. When the campaign reaches its target the status
	// flips from ACTIVE to COMPLETED in the same step. Returns
	// ErrCampaignNotAccepting when a concurrent admission consumed the
	// headroom, ErrDuplicateContribution on a pair collision.
	AdmitContribution(ctx context.Context, c *domain.Contribution) error
	// WithdrawContribution deletes the contribution for the pair and
	// lowers the raised amount by its amount, floored at zero. Absent
	// contributions are a no-op. Campaign status is never reverted.
	WithdrawContribution(ctx context.Context, campaignID, investorID int64) error

	CampaignContributions(ctx context.Context, campaignID int64) ([]domain.Contribution, error)
	InvestorContributions(ctx context.Context, investorID int64) ([]domain.Contribution, error)
	// CampaignContributionTotal sums the admitted amounts of one campaign.
	CampaignContributionTotal(ctx context.Context, campaignID int64) (decimal.Decimal, error)
	// InvestorContributionTotal sums one investor's amounts across campaigns.
	InvestorContributionTotal(ctx context.Context, investorID int64) (decimal.Decimal, error)
	CountCampaignInvestors(ctx context.Context, campaignID int64) (int64, error)
	CountInvestorCampaigns(ctx context.Context, investorID int64) (int64, error)
	// TotalRequired and TotalRaised aggregate across active campaigns.
	TotalRequired(ctx context.Context) (decimal.Decimal, error)
	TotalRaised(ctx context.Context) (decimal.Decimal, error)
	CountActiveCampaigns(ctx context.Context) (int64, error)
	// AverageExpectedReturn averages the expected return over active
	// campaigns that declare one; zero when none do.
	AverageExpectedReturn(ctx context.Context) (decimal.Decimal, error)
}

// FundingOverview aggregates ledger-wide figures for the dashboard.
type FundingOverview struct {
	TotalRequired   decimal.Decimal `json:"totalRequired"`
	TotalRaised     decimal.Decimal `json:"totalRaised"`
	ActiveCampaigns int64           `json:"activeCampaigns"`
	AverageReturn   decimal.Decimal `json:"averageExpectedReturn"`
}

// LedgerUseCase is the inbound port of the funding ledger.
type LedgerUseCase interface {
	// AdmitContribution admits amount from the investor into the
	// campaign. Precondition failures surface as the distinct sentinel
	// errors in this package; on success the created contribution is
	// returned with its shareholding percentage set.
	AdmitContribution(ctx context.Context, campaignID, investorID int64, amount decimal.Decimal) (*domain.Contribution, error)
	// WithdrawContribution removes the investor's contribution from the
	// campaign. Withdrawing an absent contribution is a no-op.
	WithdrawContribution(ctx context.Context, campaignID, investorID int64) error
	// CanAcceptContribution reports whether the campaign would currently
	// admit a contribution of amount. It never mutates state.
	CanAcceptContribution(ctx context.Context, campaignID int64, amount decimal.Decimal) (bool, error)
	// MeetsMinimum reports whether amount satisfies the campaign's
	// minimum ticket, or true when no minimum is set.
	MeetsMinimum(ctx context.Context, campaignID int64, amount decimal.Decimal) (bool, error)

	CampaignContributions(ctx context.Context, campaignID int64) ([]domain.Contribution, error)
	InvestorContributions(ctx context.Context, investorID int64) ([]domain.Contribution, error)
	Overview(ctx context.Context) (*FundingOverview, error)
}
