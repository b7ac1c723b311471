package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the execution state of a renovation project.
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "PLANNED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectFinished   ProjectStatus = "FINISHED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
)

// Project is the renovation work a campaign funds on a property.
type Project struct {
	ID              int64
	Name            string
	Category        string
	Description     string
	StartDate       *time.Time
	EstimatedEnd    *time.Time
	EndDate         *time.Time
	EstimatedCosts  decimal.Decimal
	TotalCosts      decimal.Decimal
	EstimatedReturn decimal.NullDecimal // percent over investment
	Status          ProjectStatus
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProjectUpdate carries a partial project update; nil fields are kept.
type ProjectUpdate struct {
	ID              int64
	Name            *string
	Category        *string
	Description     *string
	StartDate       *time.Time
	EstimatedEnd    *time.Time
	EndDate         *time.Time
	EstimatedCosts  *decimal.Decimal
	TotalCosts      *decimal.Decimal
	EstimatedReturn *decimal.Decimal
	Status          *ProjectStatus
	Active          *bool
}
