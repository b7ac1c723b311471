package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

type projectRequest struct {
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Description     string           `json:"description"`
	StartDate       *string          `json:"startDate"`
	EstimatedEnd    *string          `json:"estimatedEnd"`
	EndDate         *string          `json:"endDate"`
	EstimatedCosts  decimal.Decimal  `json:"estimatedCosts"`
	TotalCosts      decimal.Decimal  `json:"totalCosts"`
	EstimatedReturn *decimal.Decimal `json:"estimatedReturn"`
	Status          string           `json:"status"`
}

type projectUpdateRequest struct {
	Name            *string          `json:"name"`
	Category        *string          `json:"category"`
	Description     *string          `json:"description"`
	StartDate       *string          `json:"startDate"`
	EstimatedEnd    *string          `json:"estimatedEnd"`
	EndDate         *string          `json:"endDate"`
	EstimatedCosts  *decimal.Decimal `json:"estimatedCosts"`
	TotalCosts      *decimal.Decimal `json:"totalCosts"`
	EstimatedReturn *decimal.Decimal `json:"estimatedReturn"`
	Status          *string          `json:"status"`
	Active          *bool            `json:"active"`
}

type projectResponse struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Description     string           `json:"description"`
	StartDate       *string          `json:"startDate,omitempty"`
	EstimatedEnd    *string          `json:"estimatedEnd,omitempty"`
	EndDate         *string          `json:"endDate,omitempty"`
	EstimatedCosts  decimal.Decimal  `json:"estimatedCosts"`
	TotalCosts      decimal.Decimal  `json:"totalCosts"`
	EstimatedReturn *decimal.Decimal `json:"estimatedReturn,omitempty"`
	Status          string           `json:"status"`
	Active          bool             `json:"active"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	resp := projectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Description:    p.Description,
		StartDate:      formatDate(p.StartDate),
		EstimatedEnd:   formatDate(p.EstimatedEnd),
		EndDate:        formatDate(p.EndDate),
		EstimatedCosts: p.EstimatedCosts,
		TotalCosts:     p.TotalCosts,
		Status:         string(p.Status),
		Active:         p.Active,
	}
	if p.EstimatedReturn.Valid {
		resp.EstimatedReturn = &p.EstimatedReturn.Decimal
	}
	return resp
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid startDate"})
		return
	}
	estimatedEnd, err := parseDate(req.EstimatedEnd)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid estimatedEnd"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid endDate"})
		return
	}
	project := &domain.Project{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		StartDate:       start,
		EstimatedEnd:    estimatedEnd,
		EndDate:         end,
		EstimatedCosts:  req.EstimatedCosts,
		TotalCosts:      req.TotalCosts,
		EstimatedReturn: nullDecimal(req.EstimatedReturn),
		Status:          domain.ProjectStatus(req.Status),
	}
	created, err := h.registry.CreateProject(r.Context(), project)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toProjectResponse(created))
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	project, err := h.registry.GetProject(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	projects, err := h.registry.ListProjects(r.Context(), activeOnly)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]projectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	var req projectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid startDate"})
		return
	}
	estimatedEnd, err := parseDate(req.EstimatedEnd)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid estimatedEnd"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid endDate"})
		return
	}
	upd := &domain.ProjectUpdate{
		ID:              id,
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		StartDate:       start,
		EstimatedEnd:    estimatedEnd,
		EndDate:         end,
		EstimatedCosts:  req.EstimatedCosts,
		TotalCosts:      req.TotalCosts,
		EstimatedReturn: req.EstimatedReturn,
		Active:          req.Active,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		upd.Status = &status
	}
	updated, err := h.registry.UpdateProject(r.Context(), upd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProjectResponse(updated))
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.registry.DeleteProject(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
