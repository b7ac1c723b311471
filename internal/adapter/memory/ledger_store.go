// Package memory provides an in-memory LedgerRepository with the same
// conditional-admission semantics as the Postgres adapter. It backs the
// usecase tests, including the concurrent-admission property.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

type pairKey struct {
	campaignID int64
	investorID int64
}

// LedgerStore keeps campaigns and contributions in maps guarded by one
// mutex, which plays the role the row lock plays in Postgres: AdmitContribution
// re-checks headroom and inserts under it, so two concurrent admissions can
// never jointly overshoot the required amount.
type LedgerStore struct {
	mu            sync.Mutex
	campaigns     map[int64]*domain.Campaign
	contributions map[pairKey]*domain.Contribution
	nextID        int64
}

// NewLedgerStore returns an empty store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		campaigns:     make(map[int64]*domain.Campaign),
		contributions: make(map[pairKey]*domain.Contribution),
		nextID:        1,
	}
}

// PutCampaign inserts or replaces a campaign. Intended for test setup.
func (s *LedgerStore) PutCampaign(c *domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.campaigns[c.ID] = &cp
}

// GetActiveCampaign returns a copy of the campaign, or nil when absent or
// soft-deleted.
func (s *LedgerStore) GetActiveCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok || !c.Active {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// ContributionExists reports whether the pair already holds a contribution.
func (s *LedgerStore) ContributionExists(_ context.Context, campaignID, investorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.contributions[pairKey{campaignID, investorID}]
	return ok, nil
}

// AdmitContribution re-checks eligibility, headroom and pair uniqueness
// under the lock, then inserts the contribution and raises the campaign
// total, flipping ACTIVE to COMPLETED when the target is reached.
func (s *LedgerStore) AdmitContribution(_ context.Context, c *domain.Contribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, ok := s.campaigns[c.CampaignID]
	if !ok || !campaign.Active {
		return port.ErrCampaignNotFound
	}
	if _, dup := s.contributions[pairKey{c.CampaignID, c.InvestorID}]; dup {
		return port.ErrDuplicateContribution
	}
	if !campaign.AcceptsOn(time.Now()) {
		return port.ErrCampaignNotAccepting
	}
	newTotal := campaign.RaisedAmount.Add(c.Amount)
	if newTotal.GreaterThan(campaign.RequiredAmount) {
		return port.ErrCampaignNotAccepting
	}

	c.ID = s.nextID
	s.nextID++
	cp := *c
	s.contributions[pairKey{c.CampaignID, c.InvestorID}] = &cp

	campaign.RaisedAmount = newTotal
	if campaign.Status == domain.StatusActive && !newTotal.LessThan(campaign.RequiredAmount) {
		campaign.Status = domain.StatusCompleted
	}
	campaign.UpdatedAt = time.Now().UTC()
	return nil
}

// WithdrawContribution removes the pair's contribution and lowers the
// raised amount, floored at zero. Absent pairs are a no-op; the campaign
// status is left alone.
func (s *LedgerStore) WithdrawContribution(_ context.Context, campaignID, investorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{campaignID, investorID}
	c, ok := s.contributions[key]
	if !ok {
		return nil
	}
	if campaign, found := s.campaigns[campaignID]; found {
		lowered := campaign.RaisedAmount.Sub(c.Amount)
		if lowered.IsNegative() {
			lowered = decimal.Zero
		}
		campaign.RaisedAmount = lowered
		campaign.UpdatedAt = time.Now().UTC()
	}
	delete(s.contributions, key)
	return nil
}

// CampaignContributions lists the contributions of one campaign.
func (s *LedgerStore) CampaignContributions(_ context.Context, campaignID int64) ([]domain.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Contribution
	for key, c := range s.contributions {
		if key.campaignID == campaignID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// InvestorContributions lists one investor's contributions.
func (s *LedgerStore) InvestorContributions(_ context.Context, investorID int64) ([]domain.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Contribution
	for key, c := range s.contributions {
		if key.investorID == investorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// CampaignContributionTotal sums the admitted amounts of one campaign.
func (s *LedgerStore) CampaignContributionTotal(_ context.Context, campaignID int64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for key, c := range s.contributions {
		if key.campaignID == campaignID {
			total = total.Add(c.Amount)
		}
	}
	return total, nil
}

// InvestorContributionTotal sums one investor's amounts across campaigns.
func (s *LedgerStore) InvestorContributionTotal(_ context.Context, investorID int64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for key, c := range s.contributions {
		if key.investorID == investorID {
			total = total.Add(c.Amount)
		}
	}
	return total, nil
}

// CountCampaignInvestors counts distinct investors in one campaign.
func (s *LedgerStore) CountCampaignInvestors(_ context.Context, campaignID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key := range s.contributions {
		if key.campaignID == campaignID {
			n++
		}
	}
	return n, nil
}

// CountInvestorCampaigns counts the campaigns an investor participates in.
func (s *LedgerStore) CountInvestorCampaigns(_ context.Context, investorID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key := range s.contributions {
		if key.investorID == investorID {
			n++
		}
	}
	return n, nil
}

// TotalRequired sums the targets of active campaigns.
func (s *LedgerStore) TotalRequired(_ context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, c := range s.campaigns {
		if c.Active {
			total = total.Add(c.RequiredAmount)
		}
	}
	return total, nil
}

// TotalRaised sums the raised amounts of active campaigns.
func (s *LedgerStore) TotalRaised(_ context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, c := range s.campaigns {
		if c.Active {
			total = total.Add(c.RaisedAmount)
		}
	}
	return total, nil
}

// CountActiveCampaigns counts campaigns not soft-deleted.
func (s *LedgerStore) CountActiveCampaigns(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.campaigns {
		if c.Active {
			n++
		}
	}
	return n, nil
}

// AverageExpectedReturn averages the expected return of active campaigns
// that declare one.
func (s *LedgerStore) AverageExpectedReturn(_ context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	var n int64
	for _, c := range s.campaigns {
		if c.Active && c.ExpectedReturn.Valid {
			sum = sum.Add(c.ExpectedReturn.Decimal)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(n)).Round(2), nil
}
