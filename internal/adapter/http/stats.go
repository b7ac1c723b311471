package httpadapter

import (
	"net/http"
)

// handleStatsOverview returns ledger-wide funding figures: totals required
// and raised across active campaigns, the active campaign count and the
// average declared expected return.
func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.ledger.Overview(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, overview)
}
