package handler

import "notadesk/internal/ledger/models"

// IngestRequest carries one extracted payload into the ledger.
type IngestRequest struct {
	Filename string         `json:"filename"`
	Payload  models.Payload `json:"payload"`
}

// IngestBatchRequest carries a whole extraction batch.
type IngestBatchRequest struct {
	Entries []models.BatchEntry `json:"entries"`
}

// LaunchRequest carries optional launch metadata.
type LaunchRequest struct {
	Operator string `json:"operator,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// RejectRequest carries the mandatory reason and optional operator.
type RejectRequest struct {
	Reason   string `json:"reason"`
	Operator string `json:"operator,omitempty"`
}

// SelectRequest points the session cursor at a document.
type SelectRequest struct {
	ID string `json:"id"`
}

// DocumentResponse wraps a document plus the degraded-persistence warning.
// Warning is set when the mutation took effect in memory but the durable
// write-through failed; the operator should expect the change to vanish on
// restart unless a later write succeeds.
type DocumentResponse struct {
	Document models.Document `json:"document"`
	Warning  string          `json:"warning,omitempty"`
}

// BatchResponse wraps the batch summary plus the persistence warning.
type BatchResponse struct {
	models.BatchResult
	Warning string `json:"warning,omitempty"`
}

// ListResponse wraps a document listing.
type ListResponse struct {
	Documents []models.Document `json:"documents"`
	Count     int               `json:"count"`
}
