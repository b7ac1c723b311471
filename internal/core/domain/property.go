package domain

import "time"

// Property is a rural or urban real-estate asset campaigns are raised for.
// Areas are in hectares.
type Property struct {
	ID            int64
	Name          string
	Description   string
	TotalArea     int
	AvailableArea int
	Type          string
	Address       string
	City          string
	State         string
	Latitude      *float64
	Longitude     *float64
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PropertyUpdate carries a partial property update; nil fields are kept.
type PropertyUpdate struct {
	ID            int64
	Name          *string
	Description   *string
	TotalArea     *int
	AvailableArea *int
	Type          *string
	Address       *string
	City          *string
	State         *string
	Latitude      *float64
	Longitude     *float64
	Active        *bool
}
