package port

import "errors"

// Domain error taxonomy. The ledger and registries return these sentinels
// (possibly wrapped); the HTTP adapter translates them into status codes.
// Storage failures that are not part of this taxonomy propagate as-is.
var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrInvestorNotFound = errors.New("investor not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrFileNotFound     = errors.New("file not found")

	// ErrDuplicateContribution: the investor already participates in the
	// campaign. Repeat investments are rejected, not merged.
	ErrDuplicateContribution = errors.New("investor already participates in this campaign")

	// ErrBelowMinimum: the amount is under the campaign's minimum ticket.
	ErrBelowMinimum = errors.New("amount below minimum contribution")

	// ErrCampaignNotAccepting covers every reason a structurally valid
	// contribution cannot be admitted: campaign not ACTIVE, deadline
	// passed, or not enough funding headroom left.
	ErrCampaignNotAccepting = errors.New("campaign is not accepting contributions")

	// ErrInvalidAmount: a non-positive contribution amount.
	ErrInvalidAmount = errors.New("contribution amount must be positive")

	ErrDuplicateTaxID           = errors.New("investor with this tax id already exists")
	ErrInvestorHasContributions = errors.New("investor still holds contributions")
	ErrInvalidInput             = errors.New("invalid input")
)
