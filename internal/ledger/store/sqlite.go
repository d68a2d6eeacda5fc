package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteSnapshotStore persists the ledger snapshot into a single SQLite table
// as JSON blobs, one bucket per collection, rewritten inside one transaction
// on every save. Readers therefore never observe a torn snapshot, and the
// database file is the sole source of truth across restarts.
type SQLiteSnapshotStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

const (
	bucketDocuments = "documents"
	bucketAudit     = "audit"
)

// NewSQLiteSnapshotStore opens (or creates) the database at path.
func NewSQLiteSnapshotStore(path string) (*SQLiteSnapshotStore, error) {
	if path == "" {
		path = "notadesk.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLiteSnapshotStore{db: db, path: path}, nil
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, snap Snapshot) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docsJSON, err := json.Marshal(encodeDocuments(snap.Documents))
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	auditJSON, err := json.Marshal(encodeAudit(snap.Audit))
	if err != nil {
		return fmt.Errorf("encode audit: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for bucket, payload := range map[string][]byte{
		bucketDocuments: docsJSON,
		bucketAudit:     auditJSON,
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state(bucket,payload) VALUES(?,?)
			 ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
			bucket, payload); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	if err := tx.Commit(); err != nil {
		retErr = fmt.Errorf("commit: %w", err)
		return retErr
	}
	return nil
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snap Snapshot
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return Snapshot{}, fmt.Errorf("scan: %w", err)
		}
		switch bucket {
		case bucketDocuments:
			var persisted []persistedDocument
			if err := json.Unmarshal(payload, &persisted); err != nil {
				return Snapshot{}, fmt.Errorf("decode documents: %w", err)
			}
			if snap.Documents, err = decodeDocuments(persisted); err != nil {
				return Snapshot{}, err
			}
		case bucketAudit:
			var persisted []persistedAuditEntry
			if err := json.Unmarshal(payload, &persisted); err != nil {
				return Snapshot{}, fmt.Errorf("decode audit: %w", err)
			}
			if snap.Audit, err = decodeAudit(persisted); err != nil {
				return Snapshot{}, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate state: %w", err)
	}
	return snap, nil
}

// Close releases the database handle.
func (s *SQLiteSnapshotStore) Close() error { return s.db.Close() }

// Path returns the configured database path.
func (s *SQLiteSnapshotStore) Path() string { return s.path }
