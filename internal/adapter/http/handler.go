package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: the ledger, the registry and the attachment service execute the
// business logic; the handler only decodes, dispatches and encodes.
type Handler struct {
	ledger   port.LedgerUseCase
	registry port.RegistryUseCase
	files    port.FileUseCase
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured on a new
// chi.Router.
func NewHandler(ledger port.LedgerUseCase, registry port.RegistryUseCase, files port.FileUseCase, logger *slog.Logger) *Handler {
	h := &Handler{ledger: ledger, registry: registry, files: files, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.handleListCampaigns)
			r.Post("/", h.handleCreateCampaign)
			r.Get("/search", h.handleSearchCampaigns)
			r.Get("/open-funding", h.handleOpenFunding)
			r.Get("/overdue", h.handleOverdueFunding)
			r.Get("/underfunded", h.handleUnderfunded)
			r.Get("/status/{status}", h.handleCampaignsByStatus)
			r.Get("/{id}", h.handleGetCampaign)
			r.Put("/{id}", h.handleUpdateCampaign)
			r.Delete("/{id}", h.handleDeleteCampaign)
			r.Post("/{id}/deactivate", h.handleDeactivateCampaign)
			r.Get("/{id}/can-accept", h.handleCanAccept)
			r.Get("/{id}/contributions", h.handleCampaignContributions)
			r.Post("/{id}/contributions", h.handleAdmitContribution)
			r.Delete("/{id}/contributions/{investorID}", h.handleWithdrawContribution)
		})

		r.Route("/investors", func(r chi.Router) {
			r.Get("/", h.handleListInvestors)
			r.Post("/", h.handleCreateInvestor)
			r.Get("/{id}", h.handleGetInvestor)
			r.Put("/{id}", h.handleUpdateInvestor)
			r.Delete("/{id}", h.handleDeleteInvestor)
			r.Post("/{id}/deactivate", h.handleDeactivateInvestor)
			r.Get("/{id}/contributions", h.handleInvestorContributions)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.handleListProperties)
			r.Post("/", h.handleCreateProperty)
			r.Get("/{id}", h.handleGetProperty)
			r.Put("/{id}", h.handleUpdateProperty)
			r.Delete("/{id}", h.handleDeleteProperty)
			r.Get("/{id}/campaigns", h.handleCampaignsByProperty)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.handleListProjects)
			r.Post("/", h.handleCreateProject)
			r.Get("/{id}", h.handleGetProject)
			r.Put("/{id}", h.handleUpdateProject)
			r.Delete("/{id}", h.handleDeleteProject)
			r.Get("/{id}/campaigns", h.handleCampaignsByProject)
		})

		r.Route("/files", func(r chi.Router) {
			r.Get("/", h.handleListFiles)
			r.Post("/", h.handleUploadFile)
			r.Get("/{id}", h.handleDownloadFile)
			r.Delete("/{id}", h.handleDeleteFile)
		})

		r.Get("/stats/overview", h.handleStatsOverview)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
