// Package erp projects a ledger document into the record shape the
// downstream ERP import expects when a document is launched.
package erp

import "notadesk/internal/ledger/models"

// Config carries the deployment's ERP import parameters.
type Config struct {
	// MovementType is the ERP movement classification applied to every
	// launched fiscal document.
	MovementType string
}

// DefaultMovementType matches the ERP's service invoice intake movement.
const DefaultMovementType = "2.1.01"

// Projection is the flattened record handed to the ERP import. OrgUnitCode
// is zero when the document could not be attributed; the import then routes
// it to manual assignment instead of guessing a unit.
type Projection struct {
	DocumentID     string        `json:"document_id"`
	SourceFilename string        `json:"source_filename"`
	MovementType   string        `json:"movement_type"`
	OrgUnitCode    int           `json:"org_unit_code,omitempty"`
	SupplierID     string        `json:"supplier_id,omitempty"`
	TotalAmount    *float64      `json:"total_amount,omitempty"`
	Status         models.Status `json:"status"`
}

// Project builds the ERP record for one document.
func Project(cfg Config, doc models.Document) Projection {
	movement := cfg.MovementType
	if movement == "" {
		movement = DefaultMovementType
	}
	p := Projection{
		DocumentID:     doc.ID,
		SourceFilename: doc.SourceFilename,
		MovementType:   movement,
		SupplierID:     doc.Payload.SupplierID(),
		Status:         doc.Lifecycle.Status,
	}
	if doc.OrgUnit != nil {
		p.OrgUnitCode = doc.OrgUnit.Code
	}
	if total, ok := doc.Payload.TotalAmount(); ok {
		p.TotalAmount = &total
	}
	return p
}
