package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status. Encoding failures are logged;
// headers are already flushed at that point.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the domain error taxonomy onto status codes. Anything
// outside the taxonomy is an infrastructure failure: logged and reported
// as a bare 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, port.ErrCampaignNotFound),
		errors.Is(err, port.ErrInvestorNotFound),
		errors.Is(err, port.ErrPropertyNotFound),
		errors.Is(err, port.ErrProjectNotFound),
		errors.Is(err, port.ErrFileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, port.ErrDuplicateContribution),
		errors.Is(err, port.ErrDuplicateTaxID),
		errors.Is(err, port.ErrInvestorHasContributions):
		status = http.StatusConflict
	case errors.Is(err, port.ErrCampaignNotAccepting):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, port.ErrBelowMinimum),
		errors.Is(err, port.ErrInvalidAmount),
		errors.Is(err, port.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// idParam parses the named int64 URL parameter, writing a 400 on failure.
func (h *Handler) idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
