package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

type contributionRequest struct {
	InvestorID int64           `json:"investorId"`
	Amount     decimal.Decimal `json:"amount"`
}

type contributionResponse struct {
	ID                     int64           `json:"id"`
	CampaignID             int64           `json:"campaignId"`
	InvestorID             int64           `json:"investorId"`
	Amount                 decimal.Decimal `json:"amount"`
	ShareholdingPercentage decimal.Decimal `json:"shareholdingPercentage"`
	ContributedAt          time.Time       `json:"contributedAt"`
}

func toContributionResponse(c *domain.Contribution) contributionResponse {
	return contributionResponse{
		ID:                     c.ID,
		CampaignID:             c.CampaignID,
		InvestorID:             c.InvestorID,
		Amount:                 c.Amount,
		ShareholdingPercentage: c.ShareholdingPercentage,
		ContributedAt:          c.ContributedAt,
	}
}

func toContributionResponses(contributions []domain.Contribution) []contributionResponse {
	out := make([]contributionResponse, 0, len(contributions))
	for i := range contributions {
		out = append(out, toContributionResponse(&contributions[i]))
	}
	return out
}

// handleAdmitContribution admits an investor's amount into the campaign.
// The ledger's sentinel errors map to 400/404/409/422.
func (h *Handler) handleAdmitContribution(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	if req.InvestorID <= 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid investorId"})
		return
	}
	contribution, err := h.ledger.AdmitContribution(r.Context(), campaignID, req.InvestorID, req.Amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toContributionResponse(contribution))
}

// handleWithdrawContribution removes the investor's contribution. The
// operation is idempotent: withdrawing an absent contribution is 204 too.
func (h *Handler) handleWithdrawContribution(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	investorID, ok := h.idParam(w, r, "investorID")
	if !ok {
		return
	}
	if err := h.ledger.WithdrawContribution(r.Context(), campaignID, investorID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCampaignContributions(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	contributions, err := h.ledger.CampaignContributions(r.Context(), campaignID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toContributionResponses(contributions))
}

func (h *Handler) handleInvestorContributions(w http.ResponseWriter, r *http.Request) {
	investorID, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	contributions, err := h.ledger.InvestorContributions(r.Context(), investorID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toContributionResponses(contributions))
}

// handleCanAccept reports whether the campaign would admit the amount in
// the ?amount= query parameter right now.
func (h *Handler) handleCanAccept(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid amount"})
		return
	}
	accepts, err := h.ledger.CanAcceptContribution(r.Context(), campaignID, amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	meetsMinimum, err := h.ledger.MeetsMinimum(r.Context(), campaignID, amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{
		"canAccept":    accepts && meetsMinimum,
		"meetsMinimum": meetsMinimum,
	})
}
