package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

// LedgerUseCase implements the funding ledger: admission and withdrawal of
// investor contributions and the derived reporting queries. Precondition
// checks run over already-loaded state; the repository closes the
// admission race under a row lock, so the usecase never needs to retry.
type LedgerUseCase struct {
	repo port.LedgerRepository

	// now is swapped in tests to pin the deadline checks to a fixed day.
	now func() time.Time
}

// NewLedgerUseCase creates a ledger over the given repository.
func NewLedgerUseCase(repo port.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{repo: repo, now: time.Now}
}

// AdmitContribution runs the admission preconditions in order, each failing
// with its own sentinel, then persists the contribution and the raised
// amount increment atomically. No state is mutated unless every check
// passes.
func (u *LedgerUseCase) AdmitContribution(ctx context.Context, campaignID, investorID int64, amount decimal.Decimal) (*domain.Contribution, error) {
	campaign, err := u.repo.GetActiveCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, port.ErrCampaignNotFound
	}

	exists, err := u.repo.ContributionExists(ctx, campaignID, investorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, port.ErrDuplicateContribution
	}

	if !amount.IsPositive() {
		return nil, port.ErrInvalidAmount
	}

	if campaign.MinimumContribution.Valid && amount.LessThan(campaign.MinimumContribution.Decimal) {
		return nil, port.ErrBelowMinimum
	}

	if !campaign.AcceptsOn(u.now()) || campaign.AvailableFundingAmount().LessThan(amount) {
		return nil, port.ErrCampaignNotAccepting
	}

	contribution := &domain.Contribution{
		CampaignID:             campaignID,
		InvestorID:             investorID,
		Amount:                 amount,
		ShareholdingPercentage: domain.ShareholdingFor(amount, campaign.RequiredAmount),
		ContributedAt:          time.Now().UTC(),
	}
	// The repository re-checks headroom and eligibility under the row
	// lock; a concurrent admission that consumed the remaining capacity
	// surfaces here as ErrCampaignNotAccepting.
	if err := u.repo.AdmitContribution(ctx, contribution); err != nil {
		return nil, err
	}
	return contribution, nil
}

// WithdrawContribution removes the investor's contribution and lowers the
// campaign's raised amount, floored at zero. A missing contribution is a
// no-op. A COMPLETED campaign stays COMPLETED even if the withdrawal drops
// it below target.
func (u *LedgerUseCase) WithdrawContribution(ctx context.Context, campaignID, investorID int64) error {
	return u.repo.WithdrawContribution(ctx, campaignID, investorID)
}

// CanAcceptContribution reports whether the campaign would admit amount
// right now: it must exist, be ACTIVE and within its deadline, and have at
// least amount of headroom left. Unknown campaigns report false.
func (u *LedgerUseCase) CanAcceptContribution(ctx context.Context, campaignID int64, amount decimal.Decimal) (bool, error) {
	campaign, err := u.repo.GetActiveCampaign(ctx, campaignID)
	if err != nil {
		return false, err
	}
	if campaign == nil {
		return false, nil
	}
	return campaign.AcceptsOn(u.now()) && !campaign.AvailableFundingAmount().LessThan(amount), nil
}

// MeetsMinimum reports whether amount satisfies the campaign's minimum
// ticket. Campaigns without a minimum accept any amount.
func (u *LedgerUseCase) MeetsMinimum(ctx context.Context, campaignID int64, amount decimal.Decimal) (bool, error) {
	campaign, err := u.repo.GetActiveCampaign(ctx, campaignID)
	if err != nil {
		return false, err
	}
	if campaign == nil {
		return false, nil
	}
	if !campaign.MinimumContribution.Valid {
		return true, nil
	}
	return !amount.LessThan(campaign.MinimumContribution.Decimal), nil
}

// CampaignContributions lists the contributions admitted into a campaign.
func (u *LedgerUseCase) CampaignContributions(ctx context.Context, campaignID int64) ([]domain.Contribution, error) {
	return u.repo.CampaignContributions(ctx, campaignID)
}

// InvestorContributions lists one investor's contributions across campaigns.
func (u *LedgerUseCase) InvestorContributions(ctx context.Context, investorID int64) ([]domain.Contribution, error) {
	return u.repo.InvestorContributions(ctx, investorID)
}

// Overview aggregates ledger-wide totals across active campaigns.
func (u *LedgerUseCase) Overview(ctx context.Context) (*port.FundingOverview, error) {
	required, err := u.repo.TotalRequired(ctx)
	if err != nil {
		return nil, err
	}
	raised, err := u.repo.TotalRaised(ctx)
	if err != nil {
		return nil, err
	}
	active, err := u.repo.CountActiveCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := u.repo.AverageExpectedReturn(ctx)
	if err != nil {
		return nil, err
	}
	return &port.FundingOverview{
		TotalRequired:   required,
		TotalRaised:     raised,
		ActiveCampaigns: active,
		AverageReturn:   avg,
	}, nil
}
