// Package report computes read-side statistics over a snapshot of the
// document collection. It holds no state of its own; callers hand it the
// ledger's current snapshot.
package report

import (
	"math"
	"sort"

	"notadesk/internal/ledger/models"
)

// StatsByOrgUnit groups documents by resolved org unit code, accumulating
// document count and the sum of the payload's monetary total. Documents with
// no resolved unit are excluded entirely: they cannot be safely attributed.
// Results come back sorted by unit code.
func StatsByOrgUnit(docs []models.Document) []models.OrgUnitStats {
	byCode := make(map[int]*models.OrgUnitStats)
	for _, d := range docs {
		if d.OrgUnit == nil {
			continue
		}
		st, ok := byCode[d.OrgUnit.Code]
		if !ok {
			st = &models.OrgUnitStats{
				Code:        d.OrgUnit.Code,
				DisplayName: d.OrgUnit.DisplayName,
				StateCode:   d.OrgUnit.StateCode,
			}
			byCode[d.OrgUnit.Code] = st
		}
		st.Count++
		if total, ok := d.Payload.TotalAmount(); ok {
			st.TotalAmount += total
		}
	}

	out := make([]models.OrgUnitStats, 0, len(byCode))
	for _, st := range byCode {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// DistinctSuppliers counts the unique supplier identifiers across a subset,
// used to gauge concentration risk. Documents without a supplier id do not
// count.
func DistinctSuppliers(docs []models.Document) int {
	seen := make(map[string]bool)
	for _, d := range docs {
		if id := d.Payload.SupplierID(); id != "" {
			seen[id] = true
		}
	}
	return len(seen)
}

// Progress counts documents per lifecycle status. PercentLaunched is 0 for an
// empty collection rather than a division fault.
func Progress(docs []models.Document) models.Progress {
	p := models.Progress{Total: len(docs)}
	for _, d := range docs {
		switch d.Lifecycle.Status {
		case models.StatusPending:
			p.Pending++
		case models.StatusLaunched:
			p.Launched++
		case models.StatusRejected:
			p.Rejected++
		}
	}
	if p.Total > 0 {
		p.PercentLaunched = int(math.Round(float64(p.Launched) / float64(p.Total) * 100))
	}
	return p
}
