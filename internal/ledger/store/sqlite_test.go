package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"notadesk/internal/ledger/models"
	"notadesk/internal/orgunit"
)

type SQLiteStoreSuite struct {
	suite.Suite
	path  string
	store *SQLiteSnapshotStore
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "ledger.db")
	st, err := NewSQLiteSnapshotStore(s.path)
	s.Require().NoError(err)
	s.store = st
}

func (s *SQLiteStoreSuite) TearDownTest() {
	if s.store != nil {
		s.Require().NoError(s.store.Close())
	}
}

func (s *SQLiteStoreSuite) sampleSnapshot() Snapshot {
	receivedAt := time.Date(2026, 5, 12, 14, 30, 45, 123456789, time.UTC)
	launchedAt := receivedAt.Add(2 * time.Hour)
	rejectedAt := receivedAt.Add(3 * time.Hour)
	unit := &orgunit.OrgUnit{Code: 1, DisplayName: "Matriz", TaxID: "11858570000133", TaxIDFormatted: "11.858.570/0001-33", StateCode: "SP", UnitType: orgunit.TypeHeadquarters}
	return Snapshot{
		Documents: []models.Document{
			{
				ID:             "doc-1",
				SourceFilename: "nota_0001.xml",
				Payload:        models.Payload{"buyer_tax_id": "11858570000133", "total_amount": 1500.75, "supplier_id": "77777777000177"},
				ReceivedAt:     receivedAt,
				OrgUnit:        unit,
				Lifecycle: models.Lifecycle{
					Status:     models.StatusLaunched,
					LaunchedAt: &launchedAt,
					LaunchedBy: "ana",
					Notes:      "conferido",
				},
			},
			{
				ID:             "doc-2",
				SourceFilename: "nota_0002.xml",
				Payload:        models.Payload{"buyer_tax_id": "00000000000000"},
				ReceivedAt:     receivedAt.Add(time.Minute),
				Lifecycle: models.Lifecycle{
					Status:          models.StatusRejected,
					RejectedAt:      &rejectedAt,
					RejectedBy:      "bruno",
					RejectionReason: "duplicada",
				},
			},
			{
				ID:             "doc-3",
				SourceFilename: "nota_0003.xml",
				Payload:        models.Payload{},
				ReceivedAt:     receivedAt.Add(2 * time.Minute),
				Lifecycle:      models.NewLifecycle(),
			},
		},
		Audit: []models.AuditEntry{
			{ID: "a-1", DocumentID: "doc-1", Action: models.AuditIngest, At: receivedAt},
			{ID: "a-2", DocumentID: "doc-1", Action: models.AuditLaunch, Operator: "ana", At: launchedAt},
		},
	}
}

func (s *SQLiteStoreSuite) TestRoundTripAcrossReopen() {
	ctx := context.Background()
	want := s.sampleSnapshot()

	s.Require().NoError(s.store.Save(ctx, want))
	s.Require().NoError(s.store.Close())

	reopened, err := NewSQLiteSnapshotStore(s.path)
	s.Require().NoError(err)
	s.store = reopened

	got, err := reopened.Load(ctx)
	s.Require().NoError(err)
	s.Require().Len(got.Documents, 3)

	// Insertion order and identity.
	s.Equal("doc-1", got.Documents[0].ID)
	s.Equal("doc-2", got.Documents[1].ID)
	s.Equal("doc-3", got.Documents[2].ID)

	// Timestamps survive as true instants, nanoseconds included.
	s.True(want.Documents[0].ReceivedAt.Equal(got.Documents[0].ReceivedAt))
	s.Require().NotNil(got.Documents[0].Lifecycle.LaunchedAt)
	s.True(want.Documents[0].Lifecycle.LaunchedAt.Equal(*got.Documents[0].Lifecycle.LaunchedAt))
	s.Require().NotNil(got.Documents[1].Lifecycle.RejectedAt)
	s.True(want.Documents[1].Lifecycle.RejectedAt.Equal(*got.Documents[1].Lifecycle.RejectedAt))

	// Lifecycle fields restore per status.
	s.Equal(models.StatusLaunched, got.Documents[0].Lifecycle.Status)
	s.Equal("ana", got.Documents[0].Lifecycle.LaunchedBy)
	s.Equal("conferido", got.Documents[0].Lifecycle.Notes)
	s.Equal(models.StatusRejected, got.Documents[1].Lifecycle.Status)
	s.Equal("duplicada", got.Documents[1].Lifecycle.RejectionReason)
	s.Equal(models.StatusPending, got.Documents[2].Lifecycle.Status)
	s.Nil(got.Documents[2].Lifecycle.LaunchedAt)

	// Cached resolution survives verbatim; the miss stays a miss.
	s.Require().NotNil(got.Documents[0].OrgUnit)
	s.Equal(1, got.Documents[0].OrgUnit.Code)
	s.Equal("11.858.570/0001-33", got.Documents[0].OrgUnit.TaxIDFormatted)
	s.Nil(got.Documents[1].OrgUnit)

	// Opaque payload passes through unmodified.
	s.Equal("77777777000177", got.Documents[0].Payload.SupplierID())
	total, ok := got.Documents[0].Payload.TotalAmount()
	s.Require().True(ok)
	s.InDelta(1500.75, total, 1e-9)

	// Audit trail restores in order.
	s.Require().Len(got.Audit, 2)
	s.Equal(models.AuditIngest, got.Audit[0].Action)
	s.True(want.Audit[1].At.Equal(got.Audit[1].At))
}

func (s *SQLiteStoreSuite) TestSaveOverwritesPreviousSnapshot() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, s.sampleSnapshot()))
	s.Require().NoError(s.store.Save(ctx, Snapshot{}))

	got, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Empty(got.Documents)
	s.Empty(got.Audit)
}

func (s *SQLiteStoreSuite) TestLoadFromEmptyDatabase() {
	got, err := s.store.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(got.Documents)
	s.Empty(got.Audit)
}

func (s *SQLiteStoreSuite) TestDefaultPath() {
	s.Equal(s.path, s.store.Path())
}
