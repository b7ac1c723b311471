package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investor is a capital provider. TaxID is unique across investors.
type Investor struct {
	ID            int64
	Name          string
	TaxID         string
	Email         string
	Phone         string
	Address       string
	City          string
	State         string
	TotalFunds    decimal.Decimal
	InvestedFunds decimal.Decimal
	Description   string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvestorUpdate carries the fields of a partial investor update. Nil
// pointers leave the stored value untouched.
type InvestorUpdate struct {
	ID            int64
	Name          *string
	TaxID         *string
	Email         *string
	Phone         *string
	Address       *string
	City          *string
	State         *string
	TotalFunds    *decimal.Decimal
	InvestedFunds *decimal.Decimal
	Description   *string
	Active        *bool
}
