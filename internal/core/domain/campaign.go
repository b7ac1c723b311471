package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus is the lifecycle state of a funding campaign.
type CampaignStatus string

const (
	StatusPlanning  CampaignStatus = "PLANNING"
	StatusActive    CampaignStatus = "ACTIVE"
	StatusCompleted CampaignStatus = "COMPLETED"
	StatusSuspended CampaignStatus = "SUSPENDED"
	StatusCancelled CampaignStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the known campaign states.
func ValidStatus(s CampaignStatus) bool {
	switch s {
	case StatusPlanning, StatusActive, StatusCompleted, StatusSuspended, StatusCancelled:
		return true
	}
	return false
}

// Campaign represents a capital-raising campaign tied to a property and a
// renovation project. Money values are stored as decimals with 2 fractional
// digits. RaisedAmount is a denormalized running total maintained by the
// funding ledger; it is never recomputed from contributions on read.
type Campaign struct {
	ID                  int64
	Name                string
	Description         string
	PropertyID          int64
	ProjectID           int64
	RequiredAmount      decimal.Decimal
	RaisedAmount        decimal.Decimal
	ExpectedReturn      decimal.NullDecimal // expected commodity value increase, percent
	MinimumContribution decimal.NullDecimal
	LaunchDate          *time.Time
	FundingDeadline     *time.Time
	ExpectedCompletion  *time.Time
	Status              CampaignStatus
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CampaignUpdate carries a partial campaign update; nil fields are kept.
// RaisedAmount is deliberately absent: the running total belongs to the
// funding ledger and is never set through the registry.
type CampaignUpdate struct {
	ID                  int64
	Name                *string
	Description         *string
	PropertyID          *int64
	ProjectID           *int64
	RequiredAmount      *decimal.Decimal
	ExpectedReturn      *decimal.Decimal
	MinimumContribution *decimal.Decimal
	LaunchDate          *time.Time
	FundingDeadline     *time.Time
	ExpectedCompletion  *time.Time
	Status              *CampaignStatus
	Active              *bool
}

// AvailableFundingAmount returns the capital still missing, floored at zero.
func (c *Campaign) AvailableFundingAmount() decimal.Decimal {
	avail := c.RequiredAmount.Sub(c.RaisedAmount)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// FundingProgress returns the raised amount as a percentage of the required
// amount, rounded half-up to 2 decimal places. A campaign without a funding
// target reports zero progress.
func (c *Campaign) FundingProgress() decimal.Decimal {
	if c.RequiredAmount.IsZero() {
		return decimal.Zero
	}
	return c.RaisedAmount.
		Div(c.RequiredAmount).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// IsFundingComplete reports whether the campaign has raised its full target.
func (c *Campaign) IsFundingComplete() bool {
	return !c.AvailableFundingAmount().IsPositive()
}

// IsUnderfunded reports whether the campaign is still seeking capital.
func (c *Campaign) IsUnderfunded() bool {
	return c.RaisedAmount.LessThan(c.RequiredAmount)
}

// IsOverdue reports whether the funding deadline has passed without the
// campaign reaching a terminal state. Campaigns without a deadline are
// never overdue.
func (c *Campaign) IsOverdue(today time.Time) bool {
	if c.FundingDeadline == nil {
		return false
	}
	if c.Status == StatusCompleted || c.Status == StatusCancelled {
		return false
	}
	return c.FundingDeadline.Before(DateOnly(today))
}

// AcceptsOn reports whether the campaign can in principle take new capital
// on the given day: it must be ACTIVE, the deadline (if any) must be the
// given day or later, and at least the smallest positive amount must fit.
// Amount-specific headroom is checked by the ledger.
func (c *Campaign) AcceptsOn(today time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	if c.FundingDeadline != nil && c.FundingDeadline.Before(DateOnly(today)) {
		return false
	}
	return true
}

// DateOnly truncates t to midnight UTC. Funding deadlines are calendar
// dates; comparisons must ignore the time of day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
