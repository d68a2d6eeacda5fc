package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notadesk/internal/ledger/models"
	"notadesk/internal/orgunit"
)

func unit(code int, name, state string) *orgunit.OrgUnit {
	return &orgunit.OrgUnit{Code: code, DisplayName: name, StateCode: state, UnitType: orgunit.TypeBranch}
}

func doc(u *orgunit.OrgUnit, total any, supplier string, status models.Status) models.Document {
	p := models.Payload{}
	if total != nil {
		p["total_amount"] = total
	}
	if supplier != "" {
		p["supplier_id"] = supplier
	}
	return models.Document{Payload: p, OrgUnit: u, Lifecycle: models.Lifecycle{Status: status}}
}

func TestStatsByOrgUnit(t *testing.T) {
	matriz := unit(1, "Matriz", "SP")
	hospital := unit(2, "Hospital", "MG")

	t.Run("groups and sums exactly without double counting", func(t *testing.T) {
		docs := []models.Document{
			doc(matriz, 100.50, "s1", models.StatusPending),
			doc(matriz, 49.50, "s2", models.StatusLaunched),
			doc(hospital, 200.0, "s1", models.StatusPending),
		}
		stats := StatsByOrgUnit(docs)
		require.Len(t, stats, 2)
		assert.Equal(t, 1, stats[0].Code)
		assert.Equal(t, 2, stats[0].Count)
		assert.InDelta(t, 150.0, stats[0].TotalAmount, 1e-9)
		assert.Equal(t, "Matriz", stats[0].DisplayName)
		assert.Equal(t, 2, stats[1].Code)
		assert.InDelta(t, 200.0, stats[1].TotalAmount, 1e-9)
	})

	t.Run("unresolved documents are excluded entirely", func(t *testing.T) {
		docs := []models.Document{
			doc(nil, 999.0, "s1", models.StatusPending),
			doc(matriz, 1.0, "s1", models.StatusPending),
		}
		stats := StatsByOrgUnit(docs)
		require.Len(t, stats, 1)
		assert.Equal(t, 1, stats[0].Count)
		assert.InDelta(t, 1.0, stats[0].TotalAmount, 1e-9)
	})

	t.Run("missing totals count the document but add nothing", func(t *testing.T) {
		docs := []models.Document{
			doc(matriz, nil, "", models.StatusPending),
			doc(matriz, 10.0, "", models.StatusPending),
		}
		stats := StatsByOrgUnit(docs)
		require.Len(t, stats, 1)
		assert.Equal(t, 2, stats[0].Count)
		assert.InDelta(t, 10.0, stats[0].TotalAmount, 1e-9)
	})

	t.Run("sorted by unit code", func(t *testing.T) {
		docs := []models.Document{
			doc(hospital, 1.0, "", models.StatusPending),
			doc(matriz, 1.0, "", models.StatusPending),
		}
		stats := StatsByOrgUnit(docs)
		require.Len(t, stats, 2)
		assert.True(t, stats[0].Code < stats[1].Code)
	})

	t.Run("empty input yields empty stats", func(t *testing.T) {
		assert.Empty(t, StatsByOrgUnit(nil))
	})
}

func TestDistinctSuppliers(t *testing.T) {
	t.Run("counts unique supplier ids", func(t *testing.T) {
		docs := []models.Document{
			doc(nil, nil, "s1", models.StatusPending),
			doc(nil, nil, "s2", models.StatusPending),
			doc(nil, nil, "s1", models.StatusPending),
			doc(nil, nil, "", models.StatusPending),
		}
		assert.Equal(t, 2, DistinctSuppliers(docs))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Zero(t, DistinctSuppliers(nil))
	})
}

func TestProgress(t *testing.T) {
	t.Run("empty collection has zero percent, no fault", func(t *testing.T) {
		p := Progress(nil)
		assert.Zero(t, p.Total)
		assert.Zero(t, p.PercentLaunched)
	})

	t.Run("counts per status with rounded percentage", func(t *testing.T) {
		docs := []models.Document{
			doc(nil, nil, "", models.StatusPending),
			doc(nil, nil, "", models.StatusLaunched),
			doc(nil, nil, "", models.StatusLaunched),
			doc(nil, nil, "", models.StatusRejected),
		}
		p := Progress(docs)
		assert.Equal(t, 1, p.Pending)
		assert.Equal(t, 2, p.Launched)
		assert.Equal(t, 1, p.Rejected)
		assert.Equal(t, 4, p.Total)
		assert.Equal(t, 50, p.PercentLaunched)
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		docs := []models.Document{
			doc(nil, nil, "", models.StatusLaunched),
			doc(nil, nil, "", models.StatusPending),
			doc(nil, nil, "", models.StatusPending),
		}
		// 1/3 -> 33.33 -> 33
		assert.Equal(t, 33, Progress(docs).PercentLaunched)

		docs = append(docs, doc(nil, nil, "", models.StatusLaunched),
			doc(nil, nil, "", models.StatusLaunched),
			doc(nil, nil, "", models.StatusLaunched),
			doc(nil, nil, "", models.StatusPending),
			doc(nil, nil, "", models.StatusPending))
		// 4/8 -> exactly 50
		assert.Equal(t, 50, Progress(docs).PercentLaunched)
	})
}
