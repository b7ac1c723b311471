package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is a single investor's committed amount within a campaign.
// The (CampaignID, InvestorID) pair is unique: an investor holds at most
// one contribution per campaign. Records are created by the ledger's
// admission operation and removed by withdrawal; they are never mutated.
type Contribution struct {
	ID                     int64
	CampaignID             int64
	InvestorID             int64
	Amount                 decimal.Decimal
	ShareholdingPercentage decimal.Decimal
	ContributedAt          time.Time
}

// ShareholdingFor computes the percentage of the campaign's required amount
// represented by amount, rounded half-up to 2 decimal places.
func ShareholdingFor(amount, requiredAmount decimal.Decimal) decimal.Decimal {
	if requiredAmount.IsZero() {
		return decimal.Zero
	}
	return amount.
		Div(requiredAmount).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
