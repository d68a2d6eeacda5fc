package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"notadesk/internal/ledger/models"
	"notadesk/internal/transport/http/shared"
)

// Ledger is the read-side dependency: the current collection snapshot.
type Ledger interface {
	All() []models.Document
	ByStatus(status models.Status) ([]models.Document, error)
}

// Handler serves the conciliation dashboards.
type Handler struct {
	ledger Ledger
}

// NewHandler creates a new report Handler.
func NewHandler(ledger Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// Register registers the report routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/org-units", h.handleOrgUnitStats)
		r.Get("/progress", h.handleProgress)
		r.Get("/suppliers", h.handleSuppliers)
	})
}

// snapshot honors the optional status filter shared by all report routes.
func (h *Handler) snapshot(r *http.Request) ([]models.Document, error) {
	if raw := r.URL.Query().Get("status"); raw != "" {
		return h.ledger.ByStatus(models.Status(raw))
	}
	return h.ledger.All(), nil
}

func (h *Handler) handleOrgUnitStats(w http.ResponseWriter, r *http.Request) {
	docs, err := h.snapshot(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	stats := StatsByOrgUnit(docs)
	if stats == nil {
		stats = []models.OrgUnitStats{}
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"org_units": stats})
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, Progress(h.ledger.All()))
}

func (h *Handler) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	docs, err := h.snapshot(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"distinct_suppliers": DistinctSuppliers(docs)})
}
