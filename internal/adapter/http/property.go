package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

type propertyRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	TotalArea     int      `json:"totalArea"`
	AvailableArea int      `json:"availableArea"`
	Type          string   `json:"type"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

type propertyUpdateRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	TotalArea     *int     `json:"totalArea"`
	AvailableArea *int     `json:"availableArea"`
	Type          *string  `json:"type"`
	Address       *string  `json:"address"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Active        *bool    `json:"active"`
}

type propertyResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	TotalArea     int      `json:"totalArea"`
	AvailableArea int      `json:"availableArea"`
	Type          string   `json:"type"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Active        bool     `json:"active"`
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		TotalArea:     p.TotalArea,
		AvailableArea: p.AvailableArea,
		Type:          p.Type,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Active:        p.Active,
	}
}

func (h *Handler) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	property := &domain.Property{
		Name:          req.Name,
		Description:   req.Description,
		TotalArea:     req.TotalArea,
		AvailableArea: req.AvailableArea,
		Type:          req.Type,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}
	created, err := h.registry.CreateProperty(r.Context(), property)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toPropertyResponse(created))
}

func (h *Handler) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	property, err := h.registry.GetProperty(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toPropertyResponse(property))
}

func (h *Handler) handleListProperties(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	properties, err := h.registry.ListProperties(r.Context(), activeOnly)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]propertyResponse, 0, len(properties))
	for i := range properties {
		out = append(out, toPropertyResponse(&properties[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	var req propertyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	updated, err := h.registry.UpdateProperty(r.Context(), &domain.PropertyUpdate{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		TotalArea:     req.TotalArea,
		AvailableArea: req.AvailableArea,
		Type:          req.Type,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Active:        req.Active,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toPropertyResponse(updated))
}

func (h *Handler) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.registry.DeleteProperty(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
