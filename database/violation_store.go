// database/violation_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/models"
)

// ViolationStore is the durable ledger of every record the monitor has
// already reported on, keyed by (source, violation_id). Rows are written
// once; the UNIQUE constraint makes a duplicate insert a silent no-op at the
// database, not merely in application code.
type ViolationStore struct {
	db     *sql.DB
	driver string
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS violations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		violation_id TEXT NOT NULL,
		block TEXT NOT NULL,
		lot TEXT NOT NULL,
		violation_date TEXT NOT NULL,
		created_date TEXT NOT NULL,
		UNIQUE(source, violation_id)
	)`

const mysqlSchema = `
	CREATE TABLE IF NOT EXISTS violations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		source VARCHAR(64) NOT NULL,
		violation_id VARCHAR(128) NOT NULL,
		block VARCHAR(32) NOT NULL,
		lot VARCHAR(32) NOT NULL,
		violation_date VARCHAR(64) NOT NULL,
		created_date VARCHAR(64) NOT NULL,
		UNIQUE KEY uniq_source_violation (source, violation_id)
	)`

// OpenStore opens the configured backend and applies the schema.
// Safe to call on every process start whether or not the storage exists yet.
func OpenStore(cfg config.DatabaseConfig) (*ViolationStore, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	store := &ViolationStore{db: db, driver: cfg.Driver}
	if err := store.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// InitSchema creates the violations table if it does not exist. Idempotent.
func (s *ViolationStore) InitSchema() error {
	schema := sqliteSchema
	if s.driver == "mysql" {
		schema = mysqlSchema
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize violations schema: %w", err)
	}
	return nil
}

// Exists reports whether (source, violationID) has already been tracked.
// A storage failure is returned as an error, never conflated with "not found".
func (s *ViolationStore) Exists(source models.Source, violationID string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM violations WHERE source = ? AND violation_id = ?`,
		string(source), violationID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query violation (%s, %s): %w", source, violationID, err)
	}
	return true, nil
}

// Insert durably records (source, violationID) as seen. If the pair already
// exists the call is a silent no-op: no error, and the original row's
// metadata is left untouched.
func (s *ViolationStore) Insert(source models.Source, violationID string, subject models.Subject, violationDate string) error {
	stmt := `INSERT OR IGNORE INTO violations
		(source, violation_id, block, lot, violation_date, created_date)
		VALUES (?, ?, ?, ?, ?, ?)`
	if s.driver == "mysql" {
		stmt = `INSERT IGNORE INTO violations
			(source, violation_id, block, lot, violation_date, created_date)
			VALUES (?, ?, ?, ?, ?, ?)`
	}

	_, err := s.db.Exec(stmt,
		string(source), violationID, subject.Block, subject.Lot,
		violationDate, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert violation (%s, %s): %w", source, violationID, err)
	}
	return nil
}

// ListTracked returns the full ledger, newest first. Backs the CSV export
// and the status endpoint.
func (s *ViolationStore) ListTracked() ([]models.TrackedViolation, error) {
	rows, err := s.db.Query(`
		SELECT id, source, violation_id, block, lot, violation_date, created_date
		FROM violations
		ORDER BY created_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked violations: %w", err)
	}
	defer rows.Close()

	var tracked []models.TrackedViolation
	for rows.Next() {
		var v models.TrackedViolation
		var source string
		if err := rows.Scan(&v.ID, &source, &v.ViolationID, &v.Block, &v.Lot, &v.ViolationDate, &v.CreatedDate); err != nil {
			return nil, fmt.Errorf("failed to scan tracked violation row: %w", err)
		}
		v.Source = models.Source(source)
		tracked = append(tracked, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracked violation rows: %w", err)
	}
	return tracked, nil
}

// Count returns the number of tracked violations.
func (s *ViolationStore) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM violations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tracked violations: %w", err)
	}
	return n, nil
}

// Ping verifies the underlying connection; used by the health endpoint.
func (s *ViolationStore) Ping() error {
	return s.db.Ping()
}

// Close closes the database connection pool.
func (s *ViolationStore) Close() {
	if s.db != nil {
		s.db.Close()
		log.Println("Database: connection closed.")
	}
}
