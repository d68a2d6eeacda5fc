package store

import (
	"fmt"
	"time"

	"notadesk/internal/ledger/models"
	"notadesk/internal/orgunit"
)

// Timestamps cross the persistence boundary through these explicit
// encode/decode DTOs rather than ambient time.Time marshaling, so restored
// values are true instants with a pinned representation.

const timeLayout = time.RFC3339Nano

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func encodeTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return encodeTime(*t)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp %q: %w", s, err)
	}
	return t, nil
}

func decodeTimePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := decodeTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type persistedLifecycle struct {
	Status          string `json:"status"`
	LaunchedAt      string `json:"launched_at,omitempty"`
	LaunchedBy      string `json:"launched_by,omitempty"`
	Notes           string `json:"notes,omitempty"`
	RejectedAt      string `json:"rejected_at,omitempty"`
	RejectedBy      string `json:"rejected_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

type persistedDocument struct {
	ID             string           `json:"id"`
	SourceFilename string           `json:"source_filename"`
	Payload        models.Payload   `json:"payload"`
	ReceivedAt     string           `json:"received_at"`
	OrgUnit        *orgunit.OrgUnit `json:"org_unit,omitempty"`
	Lifecycle      persistedLifecycle `json:"lifecycle"`
}

type persistedAuditEntry struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id,omitempty"`
	Action     string `json:"action"`
	Operator   string `json:"operator,omitempty"`
	Detail     string `json:"detail,omitempty"`
	At         string `json:"at"`
}

func encodeDocuments(docs []models.Document) []persistedDocument {
	out := make([]persistedDocument, len(docs))
	for i, d := range docs {
		out[i] = persistedDocument{
			ID:             d.ID,
			SourceFilename: d.SourceFilename,
			Payload:        d.Payload,
			ReceivedAt:     encodeTime(d.ReceivedAt),
			OrgUnit:        d.OrgUnit,
			Lifecycle: persistedLifecycle{
				Status:          d.Lifecycle.Status.String(),
				LaunchedAt:      encodeTimePtr(d.Lifecycle.LaunchedAt),
				LaunchedBy:      d.Lifecycle.LaunchedBy,
				Notes:           d.Lifecycle.Notes,
				RejectedAt:      encodeTimePtr(d.Lifecycle.RejectedAt),
				RejectedBy:      d.Lifecycle.RejectedBy,
				RejectionReason: d.Lifecycle.RejectionReason,
			},
		}
	}
	return out
}

func decodeDocuments(in []persistedDocument) ([]models.Document, error) {
	out := make([]models.Document, len(in))
	for i, p := range in {
		receivedAt, err := decodeTime(p.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", p.ID, err)
		}
		launchedAt, err := decodeTimePtr(p.Lifecycle.LaunchedAt)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", p.ID, err)
		}
		rejectedAt, err := decodeTimePtr(p.Lifecycle.RejectedAt)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", p.ID, err)
		}
		status := models.Status(p.Lifecycle.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("document %s: unknown status %q", p.ID, p.Lifecycle.Status)
		}
		out[i] = models.Document{
			ID:             p.ID,
			SourceFilename: p.SourceFilename,
			Payload:        p.Payload,
			ReceivedAt:     receivedAt,
			OrgUnit:        p.OrgUnit,
			Lifecycle: models.Lifecycle{
				Status:          status,
				LaunchedAt:      launchedAt,
				LaunchedBy:      p.Lifecycle.LaunchedBy,
				Notes:           p.Lifecycle.Notes,
				RejectedAt:      rejectedAt,
				RejectedBy:      p.Lifecycle.RejectedBy,
				RejectionReason: p.Lifecycle.RejectionReason,
			},
		}
	}
	return out, nil
}

func encodeAudit(entries []models.AuditEntry) []persistedAuditEntry {
	out := make([]persistedAuditEntry, len(entries))
	for i, e := range entries {
		out[i] = persistedAuditEntry{
			ID:         e.ID,
			DocumentID: e.DocumentID,
			Action:     string(e.Action),
			Operator:   e.Operator,
			Detail:     e.Detail,
			At:         encodeTime(e.At),
		}
	}
	return out
}

func decodeAudit(in []persistedAuditEntry) ([]models.AuditEntry, error) {
	out := make([]models.AuditEntry, len(in))
	for i, p := range in {
		at, err := decodeTime(p.At)
		if err != nil {
			return nil, fmt.Errorf("audit entry %s: %w", p.ID, err)
		}
		out[i] = models.AuditEntry{
			ID:         p.ID,
			DocumentID: p.DocumentID,
			Action:     models.AuditAction(p.Action),
			Operator:   p.Operator,
			Detail:     p.Detail,
			At:         at,
		}
	}
	return out, nil
}
