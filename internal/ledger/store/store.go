// Package store persists the document ledger. Stores are interface-driven to
// keep the lifecycle logic testable and to allow swapping the in-memory and
// SQLite implementations without rewiring business code.
package store

import (
	"context"

	"notadesk/internal/ledger/models"
)

// Snapshot is the full persisted state: the ordered document collection and
// the audit trail. Every mutating ledger operation writes the whole snapshot
// through before it is considered complete.
type Snapshot struct {
	Documents []models.Document
	Audit     []models.AuditEntry
}

// Clone deep-copies the snapshot so stored state never aliases live state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{}
	if s.Documents != nil {
		out.Documents = make([]models.Document, len(s.Documents))
		for i, d := range s.Documents {
			out.Documents[i] = d.Clone()
		}
	}
	if s.Audit != nil {
		out.Audit = make([]models.AuditEntry, len(s.Audit))
		copy(out.Audit, s.Audit)
	}
	return out
}

// SnapshotStore is the single source of truth across process restarts.
// Save must be all-or-nothing: a reader never observes a torn snapshot.
type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
}
