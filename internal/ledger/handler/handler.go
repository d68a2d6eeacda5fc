// Package handler exposes the document ledger over HTTP. It delegates to the
// ledger service without embedding lifecycle logic so transport concerns stay
// isolated.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notadesk/internal/erp"
	"notadesk/internal/ledger/models"
	"notadesk/internal/platform/middleware"
	"notadesk/internal/transport/http/shared"
	dErrors "notadesk/pkg/domainerrors"
)

// Service defines the ledger operations the HTTP layer needs.
type Service interface {
	Ingest(ctx context.Context, filename string, payload models.Payload) (models.Document, error)
	IngestBatch(ctx context.Context, entries []models.BatchEntry) (models.BatchResult, error)
	Launch(ctx context.Context, id, operator, notes string) (models.Document, error)
	Reject(ctx context.Context, id, reason, operator string) (models.Document, error)
	Reset(ctx context.Context, id string) (models.Document, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Get(id string) (models.Document, error)
	All() []models.Document
	ByStatus(status models.Status) ([]models.Document, error)
	Select(id string) error
	Selected() (models.Document, bool)
	ClearSelection()
	History(id string) ([]models.AuditEntry, error)
	AuditTrail() []models.AuditEntry
}

// Handler handles document ledger endpoints.
type Handler struct {
	logger *slog.Logger
	ledger Service
	erpCfg erp.Config
}

// New creates a new ledger Handler.
func New(ledger Service, logger *slog.Logger, erpCfg erp.Config) *Handler {
	return &Handler{logger: logger, ledger: ledger, erpCfg: erpCfg}
}

// Register registers the ledger routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Post("/", h.handleIngest)
		r.Post("/batch", h.handleIngestBatch)
		r.Get("/", h.handleList)
		r.Delete("/", h.handleClear)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleRemove)
			r.Post("/launch", h.handleLaunch)
			r.Post("/reject", h.handleReject)
			r.Post("/reset", h.handleReset)
			r.Get("/history", h.handleHistory)
			r.Get("/erp", h.handleERPProjection)
		})
	})
	r.Route("/selection", func(r chi.Router) {
		r.Put("/", h.handleSelect)
		r.Get("/", h.handleSelected)
		r.Delete("/", h.handleClearSelection)
	})
	r.Get("/audit", h.handleAuditTrail)
}

// writeMutation maps a mutation outcome to its response. A persistence
// failure is a success with a warning: the in-memory state changed, only the
// durable write-through is behind.
func (h *Handler) writeMutation(ctx context.Context, w http.ResponseWriter, status int, doc models.Document, err error) {
	if err != nil {
		if dErrors.Is(err, dErrors.CodePersistence) {
			shared.WriteJSON(w, status, DocumentResponse{Document: doc, Warning: dErrors.MessageOf(err)})
			return
		}
		h.logger.WarnContext(ctx, "ledger mutation failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, status, DocumentResponse{Document: doc})
}

func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	doc, err := h.ledger.Ingest(ctx, req.Filename, req.Payload)
	h.writeMutation(ctx, w, http.StatusCreated, doc, err)
}

func (h *Handler) handleIngestBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IngestBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.ledger.IngestBatch(ctx, req.Entries)
	if err != nil && !dErrors.Is(err, dErrors.CodePersistence) {
		shared.WriteError(w, err)
		return
	}
	resp := BatchResponse{BatchResult: result}
	if err != nil {
		resp.Warning = dErrors.MessageOf(err)
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var docs []models.Document
	if raw := r.URL.Query().Get("status"); raw != "" {
		filtered, err := h.ledger.ByStatus(models.Status(raw))
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		docs = filtered
	} else {
		docs = h.ledger.All()
	}
	if docs == nil {
		docs = []models.Document{}
	}
	shared.WriteJSON(w, http.StatusOK, ListResponse{Documents: docs, Count: len(docs)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.ledger.Get(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, DocumentResponse{Document: doc})
}

func (h *Handler) handleLaunch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LaunchRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}

	doc, err := h.ledger.Launch(ctx, chi.URLParam(r, "id"), req.Operator, req.Notes)
	h.writeMutation(ctx, w, http.StatusOK, doc, err)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	doc, err := h.ledger.Reject(ctx, chi.URLParam(r, "id"), req.Reason, req.Operator)
	h.writeMutation(ctx, w, http.StatusOK, doc, err)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := h.ledger.Reset(ctx, chi.URLParam(r, "id"))
	h.writeMutation(ctx, w, http.StatusOK, doc, err)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.ledger.Remove(ctx, chi.URLParam(r, "id"))
	if err != nil && !dErrors.Is(err, dErrors.CodePersistence) {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClear is irreversible, so the caller has to confirm explicitly.
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("confirm") != "true" {
		shared.WriteJSON(w, http.StatusPreconditionFailed, shared.ErrorResponse{
			Error:   "confirmation_required",
			Message: "clearing the ledger is irreversible; repeat with confirm=true",
		})
		return
	}

	err := h.ledger.Clear(ctx)
	if err != nil && !dErrors.Is(err, dErrors.CodePersistence) {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledger.History(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	entries := h.ledger.AuditTrail()
	shared.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

func (h *Handler) handleERPProjection(w http.ResponseWriter, r *http.Request) {
	doc, err := h.ledger.Get(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, erp.Project(h.erpCfg, doc))
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.ledger.Select(req.ID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSelected(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.ledger.Selected()
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no document selected"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, DocumentResponse{Document: doc})
}

func (h *Handler) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	h.ledger.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}
