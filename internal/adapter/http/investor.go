package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

type investorRequest struct {
	Name          string           `json:"name"`
	TaxID         string           `json:"taxId"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	State         string           `json:"state"`
	TotalFunds    decimal.Decimal  `json:"totalFunds"`
	InvestedFunds decimal.Decimal  `json:"investedFunds"`
	Description   string           `json:"description"`
}

type investorUpdateRequest struct {
	Name          *string          `json:"name"`
	TaxID         *string          `json:"taxId"`
	Email         *string          `json:"email"`
	Phone         *string          `json:"phone"`
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	State         *string          `json:"state"`
	TotalFunds    *decimal.Decimal `json:"totalFunds"`
	InvestedFunds *decimal.Decimal `json:"investedFunds"`
	Description   *string          `json:"description"`
	Active        *bool            `json:"active"`
}

type investorResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	TaxID         string          `json:"taxId"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	TotalFunds    decimal.Decimal `json:"totalFunds"`
	InvestedFunds decimal.Decimal `json:"investedFunds"`
	Description   string          `json:"description"`
	Active        bool            `json:"active"`
}

func toInvestorResponse(inv *domain.Investor) investorResponse {
	return investorResponse{
		ID:            inv.ID,
		Name:          inv.Name,
		TaxID:         inv.TaxID,
		Email:         inv.Email,
		Phone:         inv.Phone,
		Address:       inv.Address,
		City:          inv.City,
		State:         inv.State,
		TotalFunds:    inv.TotalFunds,
		InvestedFunds: inv.InvestedFunds,
		Description:   inv.Description,
		Active:        inv.Active,
	}
}

func (h *Handler) handleCreateInvestor(w http.ResponseWriter, r *http.Request) {
	var req investorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	investor := &domain.Investor{
		Name:          req.Name,
		TaxID:         req.TaxID,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		TotalFunds:    req.TotalFunds,
		InvestedFunds: req.InvestedFunds,
		Description:   req.Description,
	}
	created, err := h.registry.CreateInvestor(r.Context(), investor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toInvestorResponse(created))
}

func (h *Handler) handleGetInvestor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	investor, err := h.registry.GetInvestor(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toInvestorResponse(investor))
}

// handleListInvestors lists investors; ?active=true narrows to active ones.
func (h *Handler) handleListInvestors(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	investors, err := h.registry.ListInvestors(r.Context(), activeOnly)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]investorResponse, 0, len(investors))
	for i := range investors {
		out = append(out, toInvestorResponse(&investors[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpdateInvestor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	var req investorUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	updated, err := h.registry.UpdateInvestor(r.Context(), &domain.InvestorUpdate{
		ID:            id,
		Name:          req.Name,
		TaxID:         req.TaxID,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		TotalFunds:    req.TotalFunds,
		InvestedFunds: req.InvestedFunds,
		Description:   req.Description,
		Active:        req.Active,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toInvestorResponse(updated))
}

// handleDeleteInvestor removes the investor; refused with 409 while the
// investor still holds contributions.
func (h *Handler) handleDeleteInvestor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.registry.DeleteInvestor(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeactivateInvestor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.registry.DeactivateInvestor(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
