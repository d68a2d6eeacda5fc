// Package service implements the document ledger: the auditable lifecycle
// state machine over the persisted, insertion-ordered document collection.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notadesk/internal/ledger/models"
	"notadesk/internal/ledger/store"
	"notadesk/internal/orgunit"
	"notadesk/internal/platform/metrics"
	dErrors "notadesk/pkg/domainerrors"
)

// Resolver attributes a buyer tax id to an org unit. A nil result is a miss,
// not an error.
type Resolver interface {
	Resolve(rawTaxID string) *orgunit.OrgUnit
}

// Service owns the document collection and its lifecycle. One logical owner
// per process; the mutex only guards against accidental concurrent HTTP
// callers, not a multi-writer design.
type Service struct {
	mu       sync.Mutex
	store    store.SnapshotStore
	resolver Resolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	newID    func() string

	docs     []models.Document
	byID     map[string]int
	audit    []models.AuditEntry
	selected string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock pins the timestamp source; tests use it to make lifecycle
// instants deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides document/audit id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New restores the ledger from the snapshot store. The store is the sole
// source of truth across restarts; whatever it holds becomes the session's
// starting state.
func New(st store.SnapshotStore, resolver Resolver, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("org unit resolver is required")
	}

	s := &Service{
		store:    st,
		resolver: resolver,
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
		byID:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := st.Load(context.Background())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodePersistence, "restore ledger snapshot")
	}
	s.docs = snap.Documents
	s.audit = snap.Audit
	s.reindex()
	return s, nil
}

func (s *Service) reindex() {
	s.byID = make(map[string]int, len(s.docs))
	for i, d := range s.docs {
		s.byID[d.ID] = i
	}
}

// persist writes the whole collection through to durable storage. On failure
// the in-memory mutation is retained for the session and the caller receives
// a CodePersistence error to surface as a warning: a restart will reflect
// only the last successfully persisted snapshot.
func (s *Service) persist(ctx context.Context, action models.AuditAction) error {
	snap := store.Snapshot{Documents: s.docs, Audit: s.audit}
	if err := s.store.Save(ctx, snap); err != nil {
		s.metrics.IncrementPersistenceFailure()
		s.logger.WarnContext(ctx, "durable write-through failed, session state retained",
			"action", string(action),
			"error", err.Error(),
		)
		return dErrors.Wrap(err, dErrors.CodePersistence, "durable write-through failed")
	}
	return nil
}

func (s *Service) appendAudit(docID string, action models.AuditAction, operator, detail string) {
	s.audit = append(s.audit, models.AuditEntry{
		ID:         s.newID(),
		DocumentID: docID,
		Action:     action,
		Operator:   operator,
		Detail:     detail,
		At:         s.now().UTC(),
	})
}

func validateEntry(filename string, payload models.Payload) error {
	if strings.TrimSpace(filename) == "" {
		return dErrors.New(dErrors.CodeInvalidArgument, "filename must not be empty")
	}
	if len(payload) == 0 {
		return dErrors.New(dErrors.CodeInvalidArgument, "payload must not be empty")
	}
	return nil
}

// Ingest creates a Pending document from one extracted payload. The org unit
// is resolved exactly here and never again.
func (s *Service) Ingest(ctx context.Context, filename string, payload models.Payload) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateEntry(filename, payload); err != nil {
		return models.Document{}, err
	}

	doc := s.ingestLocked(filename, payload)
	if err := s.persist(ctx, models.AuditIngest); err != nil {
		return doc.Clone(), err
	}
	return doc.Clone(), nil
}

func (s *Service) ingestLocked(filename string, payload models.Payload) models.Document {
	doc := models.Document{
		ID:             s.newID(),
		SourceFilename: filename,
		Payload:        payload,
		ReceivedAt:     s.now().UTC(),
		OrgUnit:        s.resolver.Resolve(payload.BuyerTaxID()),
		Lifecycle:      models.NewLifecycle(),
	}
	s.docs = append(s.docs, doc)
	s.byID[doc.ID] = len(s.docs) - 1
	s.appendAudit(doc.ID, models.AuditIngest, "", doc.SourceFilename)
	s.metrics.IncrementIngested()
	return doc
}

// IngestBatch processes entries strictly in input order. A bad entry is
// reported for that entry only and never aborts the rest: ingestion is
// per-item safe, and failing the whole batch for one bad input would discard
// otherwise-valid work. The write-through happens once, after the last entry.
func (s *Service) IngestBatch(ctx context.Context, entries []models.BatchEntry) (models.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := models.BatchResult{IDs: []string{}, Failures: []models.BatchFailure{}}
	for i, e := range entries {
		if err := validateEntry(e.Filename, e.Payload); err != nil {
			result.Failures = append(result.Failures, models.BatchFailure{
				Index:    i,
				Filename: e.Filename,
				Reason:   dErrors.MessageOf(err),
			})
			result.Failed++
			s.metrics.IncrementBatchFailed()
			continue
		}
		doc := s.ingestLocked(e.Filename, e.Payload)
		result.IDs = append(result.IDs, doc.ID)
		result.Succeeded++
	}

	if result.Succeeded > 0 {
		if err := s.persist(ctx, models.AuditIngest); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Launch marks a pending or already-launched document as launched into the
// external record system. Re-launching overwrites the launch metadata; a
// rejected document has to pass through reset first.
func (s *Service) Launch(ctx context.Context, id, operator, notes string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(id)
	if err != nil {
		return models.Document{}, err
	}
	doc := &s.docs[idx]
	if doc.Lifecycle.Status == models.StatusRejected {
		return models.Document{}, dErrors.New(dErrors.CodeInvalidArgument,
			"rejected document must be reset before launch")
	}

	at := s.now().UTC()
	doc.Lifecycle = models.Lifecycle{
		Status:     models.StatusLaunched,
		LaunchedAt: &at,
		LaunchedBy: operator,
		Notes:      notes,
	}
	s.appendAudit(id, models.AuditLaunch, operator, notes)
	s.metrics.IncrementTransition(string(models.AuditLaunch))

	if err := s.persist(ctx, models.AuditLaunch); err != nil {
		return doc.Clone(), err
	}
	return doc.Clone(), nil
}

// Reject marks a document as rejected. The reason is mandatory; nothing is
// mutated when it is missing. A launched document has to pass through reset.
func (s *Service) Reject(ctx context.Context, id, reason, operator string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(reason) == "" {
		return models.Document{}, dErrors.New(dErrors.CodeInvalidArgument,
			"rejection reason must not be empty")
	}
	idx, err := s.indexOf(id)
	if err != nil {
		return models.Document{}, err
	}
	doc := &s.docs[idx]
	if doc.Lifecycle.Status == models.StatusLaunched {
		return models.Document{}, dErrors.New(dErrors.CodeInvalidArgument,
			"launched document must be reset before rejection")
	}

	at := s.now().UTC()
	doc.Lifecycle = models.Lifecycle{
		Status:          models.StatusRejected,
		RejectedAt:      &at,
		RejectedBy:      operator,
		RejectionReason: reason,
	}
	s.appendAudit(id, models.AuditReject, operator, reason)
	s.metrics.IncrementTransition(string(models.AuditReject))

	if err := s.persist(ctx, models.AuditReject); err != nil {
		return doc.Clone(), err
	}
	return doc.Clone(), nil
}

// Reset returns a document to Pending and clears every launch/reject field.
func (s *Service) Reset(ctx context.Context, id string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(id)
	if err != nil {
		return models.Document{}, err
	}
	doc := &s.docs[idx]
	doc.Lifecycle = models.NewLifecycle()
	s.appendAudit(id, models.AuditReset, "", "")
	s.metrics.IncrementTransition(string(models.AuditReset))

	if err := s.persist(ctx, models.AuditReset); err != nil {
		return doc.Clone(), err
	}
	return doc.Clone(), nil
}

// Remove deletes one document. If it was the active selection, the selection
// becomes unset.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(id)
	if err != nil {
		return err
	}
	s.docs = append(s.docs[:idx], s.docs[idx+1:]...)
	s.reindex()
	if s.selected == id {
		s.selected = ""
	}
	s.appendAudit(id, models.AuditRemove, "", "")
	s.metrics.IncrementTransition(string(models.AuditRemove))

	return s.persist(ctx, models.AuditRemove)
}

// Clear empties the whole collection. Irreversible; callers confirm before
// invoking. The audit trail keeps a single clear entry noting the count.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := len(s.docs)
	s.docs = nil
	s.byID = make(map[string]int)
	s.selected = ""
	s.appendAudit("", models.AuditClear, "", fmt.Sprintf("cleared %d documents", cleared))
	s.metrics.IncrementTransition(string(models.AuditClear))

	return s.persist(ctx, models.AuditClear)
}

func (s *Service) indexOf(id string) (int, error) {
	idx, ok := s.byID[id]
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeNotFound, "document %s not found", id)
	}
	return idx, nil
}

// Get returns one document by id.
func (s *Service) Get(id string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.indexOf(id)
	if err != nil {
		return models.Document{}, err
	}
	return s.docs[idx].Clone(), nil
}

// All returns the collection in insertion order.
func (s *Service) All() []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Document, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Clone()
	}
	return out
}

// ByStatus filters the collection by lifecycle status, preserving insertion
// order. O(n) is fine: the working set is one operator's session.
func (s *Service) ByStatus(status models.Status) ([]models.Document, error) {
	if !status.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidArgument, "unknown status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Document
	for _, d := range s.docs {
		if d.Lifecycle.Status == status {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

// Select points the session cursor at a document. The cursor is ephemeral
// UI-adjacent state and is never persisted.
func (s *Service) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.indexOf(id); err != nil {
		return err
	}
	s.selected = id
	return nil
}

// Selected returns the currently selected document, if any.
func (s *Service) Selected() (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == "" {
		return models.Document{}, false
	}
	idx, ok := s.byID[s.selected]
	if !ok {
		return models.Document{}, false
	}
	return s.docs[idx].Clone(), true
}

// ClearSelection unsets the cursor.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// History returns the audit entries for one document, oldest first. Entries
// survive document removal so the trail stays complete.
func (s *Service) History(id string) ([]models.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AuditEntry
	for _, e := range s.audit {
		if e.DocumentID == id {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		if _, err := s.indexOf(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AuditTrail returns the full audit trail, oldest first.
func (s *Service) AuditTrail() []models.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}
