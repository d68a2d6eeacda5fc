package models

import "encoding/json"

// Payload is the upstream-extracted record. The ledger treats it as opaque
// and passes it through unmodified; only the buyer tax id, the monetary
// total, and the supplier identifier are ever read, through the accessors
// below. Everything else is enrichment owned by the upstream extractor.
type Payload map[string]any

// Well-known payload keys produced by the upstream extraction pipeline.
const (
	keyBuyerTaxID  = "buyer_tax_id"
	keyTotalAmount = "total_amount"
	keySupplierID  = "supplier_id"
)

// BuyerTaxID returns the raw buyer tax id, or "" when absent or malformed.
func (p Payload) BuyerTaxID() string {
	return p.stringAt(keyBuyerTaxID)
}

// SupplierID returns the supplier identifier, or "" when absent.
func (p Payload) SupplierID() string {
	return p.stringAt(keySupplierID)
}

// TotalAmount returns the monetary total and whether a usable number was
// present. Upstream sometimes emits totals as JSON numbers, sometimes as
// integers, occasionally null.
func (p Payload) TotalAmount() (float64, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p[keyTotalAmount].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (p Payload) stringAt(key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

// Clone copies the top-level map. Nested values stay shared; the ledger never
// writes into a payload, so sharing below the first level is safe.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
