package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

type campaignRequest struct {
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	PropertyID          int64            `json:"propertyId"`
	ProjectID           int64            `json:"projectId"`
	RequiredAmount      decimal.Decimal  `json:"requiredAmount"`
	ExpectedReturn      *decimal.Decimal `json:"expectedReturn"`
	MinimumContribution *decimal.Decimal `json:"minimumContribution"`
	LaunchDate          *string          `json:"launchDate"`
	FundingDeadline     *string          `json:"fundingDeadline"`
	ExpectedCompletion  *string          `json:"expectedCompletion"`
	Status              string           `json:"status"`
}

type campaignUpdateRequest struct {
	Name                *string          `json:"name"`
	Description         *string          `json:"description"`
	PropertyID          *int64           `json:"propertyId"`
	ProjectID           *int64           `json:"projectId"`
	RequiredAmount      *decimal.Decimal `json:"requiredAmount"`
	ExpectedReturn      *decimal.Decimal `json:"expectedReturn"`
	MinimumContribution *decimal.Decimal `json:"minimumContribution"`
	LaunchDate          *string          `json:"launchDate"`
	FundingDeadline     *string          `json:"fundingDeadline"`
	ExpectedCompletion  *string          `json:"expectedCompletion"`
	Status              *string          `json:"status"`
	Active              *bool            `json:"active"`
}

type campaignResponse struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	PropertyID          int64            `json:"propertyId"`
	ProjectID           int64            `json:"projectId"`
	RequiredAmount      decimal.Decimal  `json:"requiredAmount"`
	RaisedAmount        decimal.Decimal  `json:"raisedAmount"`
	AvailableFunding    decimal.Decimal  `json:"availableFunding"`
	FundingProgress     decimal.Decimal  `json:"fundingProgress"`
	FundingComplete     bool             `json:"fundingComplete"`
	ExpectedReturn      *decimal.Decimal `json:"expectedReturn,omitempty"`
	MinimumContribution *decimal.Decimal `json:"minimumContribution,omitempty"`
	LaunchDate          *string          `json:"launchDate,omitempty"`
	FundingDeadline     *string          `json:"fundingDeadline,omitempty"`
	ExpectedCompletion  *string          `json:"expectedCompletion,omitempty"`
	Status              string           `json:"status"`
	Active              bool             `json:"active"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	resp := campaignResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Description:        c.Description,
		PropertyID:         c.PropertyID,
		ProjectID:          c.ProjectID,
		RequiredAmount:     c.RequiredAmount,
		RaisedAmount:       c.RaisedAmount,
		AvailableFunding:   c.AvailableFundingAmount(),
		FundingProgress:    c.FundingProgress(),
		FundingComplete:    c.IsFundingComplete(),
		LaunchDate:         formatDate(c.LaunchDate),
		FundingDeadline:    formatDate(c.FundingDeadline),
		ExpectedCompletion: formatDate(c.ExpectedCompletion),
		Status:             string(c.Status),
		Active:             c.Active,
	}
	if c.ExpectedReturn.Valid {
		resp.ExpectedReturn = &c.ExpectedReturn.Decimal
	}
	if c.MinimumContribution.Valid {
		resp.MinimumContribution = &c.MinimumContribution.Decimal
	}
	return resp
}

func toCampaignResponses(campaigns []domain.Campaign) []campaignResponse {
	out := make([]campaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, toCampaignResponse(&campaigns[i]))
	}
	return out
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// handleCreateCampaign registers a new campaign. Dates use YYYY-MM-DD.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	launch, err := parseDate(req.LaunchDate)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid launchDate"})
		return
	}
	deadline, err := parseDate(req.FundingDeadline)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid fundingDeadline"})
		return
	}
	completion, err := parseDate(req.ExpectedCompletion)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid expectedCompletion"})
		return
	}

	campaign := &domain.Campaign{
		Name:                req.Name,
		Description:         req.Description,
		PropertyID:          req.PropertyID,
		ProjectID:           req.ProjectID,
		RequiredAmount:      req.RequiredAmount,
		ExpectedReturn:      nullDecimal(req.ExpectedReturn),
		MinimumContribution: nullDecimal(req.MinimumContribution),
		LaunchDate:          launch,
		FundingDeadline:     deadline,
		ExpectedCompletion:  completion,
		Status:              domain.CampaignStatus(req.Status),
	}
	created, err := h.registry.CreateCampaign(r.Context(), campaign)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(created))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	campaign, err := h.registry.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(campaign))
}

// handleListCampaigns lists active campaigns; ?all=true includes
// deactivated ones.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("all") == "true"
	campaigns, err := h.registry.ListCampaigns(r.Context(), includeInactive)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponses(campaigns))
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	var req campaignUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	launch, err := parseDate(req.LaunchDate)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid launchDate"})
		return
	}
	deadline, err := parseDate(req.FundingDeadline)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid fundingDeadline"})
		return
	}
	completion, err := parseDate(req.ExpectedCompletion)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid expectedCompletion"})
		return
	}

	upd := &domain.CampaignUpdate{
		ID:                  id,
		Name:                req.Name,
		Description:         req.Description,
		PropertyID:          req.PropertyID,
		ProjectID:           req.ProjectID,
		RequiredAmount:      req.RequiredAmount,
		ExpectedReturn:      req.ExpectedReturn,
		MinimumContribution: req.MinimumContribution,
		LaunchDate:          launch,
		FundingDeadline:     deadline,
		ExpectedCompletion:  completion,
		Active:              req.Active,
	}
	if req.Status != nil {
		status := domain.CampaignStatus(*req.Status)
		upd.Status = &status
	}
	updated, err := h.registry.UpdateCampaign(r.Context(), upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(updated))
}

// handleDeleteCampaign removes the campaign and its contributions.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.registry.DeleteCampaign(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeactivateCampaign soft-deletes, preserving history.
func (h *Handler) handleDeactivateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.registry.DeactivateCampaign(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCampaignsByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.CampaignStatus(chi.URLParam(r, "status"))
	campaigns, err := h.registry.CampaignsByStatus(r.Context(), status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponses(campaigns))
}

func (h *Handler) handleOpenFunding(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.registry.OpenFundingCampaigns(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponses(campaigns))
}

func (h *Handler) handleOverdueFunding(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.registry.OverdueFundingCampaigns(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponses(campaigns))
}

func (h *Handler) handleUnderfunded(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.registry.UnderfundedCampaigns(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponses(campaigns))
}

func (h *Handler) handleSearchCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.registry.SearchCampaigns(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponses(campaigns))
}

func (h *Handler) handleCampaignsByProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	campaigns, err := h.registry.CampaignsByProperty(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponses(campaigns))
}

func (h *Handler) handleCampaignsByProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	campaigns, err := h.registry.CampaignsByProject(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponses(campaigns))
}
