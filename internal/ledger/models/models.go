// Package models defines the document ledger's domain records: the Document,
// its lifecycle state machine fields, the audit trail entry, and batch
// ingestion result types.
package models

import (
	"time"

	"notadesk/internal/orgunit"
)

// Status is the lifecycle state of a document.
type Status string

const (
	StatusPending  Status = "pending"
	StatusLaunched Status = "launched"
	StatusRejected Status = "rejected"
)

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusLaunched, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation.
func (s Status) String() string { return string(s) }

// Lifecycle carries the status and its status-specific metadata. Invariant:
// exactly the fields matching the current status are populated; reset clears
// everything back to a bare pending record.
type Lifecycle struct {
	Status          Status     `json:"status"`
	LaunchedAt      *time.Time `json:"launched_at,omitempty"`
	LaunchedBy      string     `json:"launched_by,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectedBy      string     `json:"rejected_by,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// NewLifecycle returns the initial pending lifecycle.
func NewLifecycle() Lifecycle {
	return Lifecycle{Status: StatusPending}
}

// Document is one ingested fiscal document. OrgUnit is resolved exactly once
// at ingestion and never recomputed; nil means the buyer tax id missed the
// registry, which is a valid outcome, not an error.
type Document struct {
	ID             string           `json:"id"`
	SourceFilename string           `json:"source_filename"`
	Payload        Payload          `json:"payload"`
	ReceivedAt     time.Time        `json:"received_at"`
	OrgUnit        *orgunit.OrgUnit `json:"org_unit,omitempty"`
	Lifecycle      Lifecycle        `json:"lifecycle"`
}

// Clone returns a copy safe to hand to callers; the payload map is copied so
// read-side consumers cannot mutate ledger state.
func (d Document) Clone() Document {
	out := d
	out.Payload = d.Payload.Clone()
	if d.OrgUnit != nil {
		u := *d.OrgUnit
		out.OrgUnit = &u
	}
	if d.Lifecycle.LaunchedAt != nil {
		t := *d.Lifecycle.LaunchedAt
		out.Lifecycle.LaunchedAt = &t
	}
	if d.Lifecycle.RejectedAt != nil {
		t := *d.Lifecycle.RejectedAt
		out.Lifecycle.RejectedAt = &t
	}
	return out
}

// AuditAction labels one audit trail entry.
type AuditAction string

const (
	AuditIngest AuditAction = "ingest"
	AuditLaunch AuditAction = "launch"
	AuditReject AuditAction = "reject"
	AuditReset  AuditAction = "reset"
	AuditRemove AuditAction = "remove"
	AuditClear  AuditAction = "clear"
)

// AuditEntry records one mutating ledger operation.
type AuditEntry struct {
	ID         string      `json:"id"`
	DocumentID string      `json:"document_id,omitempty"` // empty for clear
	Action     AuditAction `json:"action"`
	Operator   string      `json:"operator,omitempty"`
	Detail     string      `json:"detail,omitempty"`
	At         time.Time   `json:"at"`
}

// BatchEntry is one raw input handed to batch ingestion.
type BatchEntry struct {
	Filename string  `json:"filename"`
	Payload  Payload `json:"payload"`
}

// BatchFailure reports a single entry that could not be ingested. Index is
// the entry's position in the input, so operators can trace it back.
type BatchFailure struct {
	Index    int    `json:"index"`
	Filename string `json:"filename,omitempty"`
	Reason   string `json:"reason"`
}

// BatchResult is the first-class succeeded/failed summary of one batch.
// IDs preserves input order for the entries that succeeded.
type BatchResult struct {
	IDs       []string       `json:"ids"`
	Failures  []BatchFailure `json:"failures"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// Progress summarizes lifecycle counts over a collection snapshot.
type Progress struct {
	Pending         int `json:"pending"`
	Launched        int `json:"launched"`
	Rejected        int `json:"rejected"`
	Total           int `json:"total"`
	PercentLaunched int `json:"percent_launched"`
}

// OrgUnitStats accumulates per-unit totals for the conciliation dashboard.
type OrgUnitStats struct {
	Code        int     `json:"code"`
	DisplayName string  `json:"display_name"`
	StateCode   string  `json:"state_code"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}
