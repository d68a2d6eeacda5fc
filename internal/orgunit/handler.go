package orgunit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"notadesk/internal/transport/http/shared"
	dErrors "notadesk/pkg/domainerrors"
)

// Handler serves the organizational catalog read surface.
type Handler struct {
	registry *Registry
}

// NewHandler creates a new org-unit Handler.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// Register registers the org-unit routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/org-units", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/headquarters", h.handleHeadquarters)
		r.Get("/states", h.handleStates)
		r.Get("/{code}", h.handleByCode)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	units := h.registry.All()
	if state := r.URL.Query().Get("state"); state != "" {
		units = h.registry.ListByState(state)
	}
	if units == nil {
		units = []OrgUnit{}
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"org_units": units, "count": len(units)})
}

func (h *Handler) handleHeadquarters(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, h.registry.Headquarters())
}

func (h *Handler) handleStates(w http.ResponseWriter, r *http.Request) {
	states := h.registry.GroupStates()
	if states == nil {
		states = []string{}
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"states": states})
}

func (h *Handler) handleByCode(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "org unit code must be numeric"))
		return
	}
	unit := h.registry.ByCode(code)
	if unit == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "org unit not found"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, unit)
}
