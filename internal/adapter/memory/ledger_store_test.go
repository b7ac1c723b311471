package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

func seeded(t *testing.T, required, raised string) *LedgerStore {
	t.Helper()
	s := NewLedgerStore()
	s.PutCampaign(&domain.Campaign{
		ID:             1,
		Name:           "campaign",
		RequiredAmount: decimal.RequireFromString(required),
		RaisedAmount:   decimal.RequireFromString(raised),
		Status:         domain.StatusActive,
		Active:         true,
	})
	return s
}

func TestAdmitRechecksHeadroom(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "1000.00", "950.00")

	err := s.AdmitContribution(ctx, &domain.Contribution{
		CampaignID: 1, InvestorID: 1, Amount: decimal.RequireFromString("100.00"),
	})
	require.ErrorIs(t, err, port.ErrCampaignNotAccepting)

	c, err := s.GetActiveCampaign(ctx, 1)
	require.NoError(t, err)
	require.True(t, c.RaisedAmount.Equal(decimal.RequireFromString("950.00")))
}

func TestWithdrawFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "1000.00", "0")

	require.NoError(t, s.AdmitContribution(ctx, &domain.Contribution{
		CampaignID: 1, InvestorID: 1, Amount: decimal.RequireFromString("300.00"),
	}))

	// an out-of-band lowered total must not push the raised amount
	// negative on withdrawal
	c, _ := s.GetActiveCampaign(ctx, 1)
	c.RaisedAmount = decimal.RequireFromString("100.00")
	s.PutCampaign(c)

	require.NoError(t, s.WithdrawContribution(ctx, 1, 1))

	after, err := s.GetActiveCampaign(ctx, 1)
	require.NoError(t, err)
	require.True(t, after.RaisedAmount.IsZero(), "raised = %s", after.RaisedAmount)
}

func TestAggregates(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "1000.00", "0")

	for i, amount := range []string{"100.00", "250.00"} {
		require.NoError(t, s.AdmitContribution(ctx, &domain.Contribution{
			CampaignID: 1, InvestorID: int64(i + 1), Amount: decimal.RequireFromString(amount),
		}))
	}

	total, err := s.CampaignContributionTotal(ctx, 1)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("350.00")))

	investors, err := s.CountCampaignInvestors(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, investors)

	perInvestor, err := s.InvestorContributionTotal(ctx, 2)
	require.NoError(t, err)
	require.True(t, perInvestor.Equal(decimal.RequireFromString("250.00")))

	campaigns, err := s.CountInvestorCampaigns(ctx, 2)
	require.NoError(t, err)
	require.EqualValues(t, 1, campaigns)
}
