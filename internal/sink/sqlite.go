package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"switchtrace/internal/domain"
)

// fixed width so located_at sorts as text
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps result history in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases alive and writes serialized
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		target_ip TEXT NOT NULL,
		mac TEXT NOT NULL,
		device TEXT NOT NULL,
		port TEXT NOT NULL,
		terminal_label TEXT NOT NULL,
		terminal_ip TEXT NOT NULL,
		path JSON NOT NULL,
		located_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_target ON results(target_ip);
	CREATE INDEX IF NOT EXISTS idx_results_located ON results(located_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Write implements Sink
func (s *SQLiteStore) Write(ctx context.Context, result domain.TraversalResult) error {
	path, err := json.Marshal(result.Path)
	if err != nil {
		return fmt.Errorf("failed to marshal path: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, target_ip, mac, device, port, terminal_label, terminal_ip, path, located_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(),
		result.TargetIP,
		result.MAC.String(),
		result.Device.String(),
		result.Port.String(),
		result.TerminalLabel,
		result.TerminalIP,
		string(path),
		result.Timestamp.UTC().Format(storedTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// Filter narrows ListResults
type Filter struct {
	// TargetIP limits results to one looked-up address
	TargetIP string
	// Limit caps the number of rows; zero means no limit
	Limit int
}

// ListResults returns stored results, newest first
func (s *SQLiteStore) ListResults(ctx context.Context, filter Filter) ([]domain.TraversalResult, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`
		SELECT target_ip, mac, device, port, terminal_label, terminal_ip, path, located_at
		FROM results`)
	if filter.TargetIP != "" {
		query.WriteString(" WHERE target_ip = ?")
		args = append(args, filter.TargetIP)
	}
	query.WriteString(" ORDER BY located_at DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []domain.TraversalResult
	for rows.Next() {
		var (
			r                  domain.TraversalResult
			mac, path, located string
		)
		if err := rows.Scan(&r.TargetIP, &mac, &r.Device, &r.Port, &r.TerminalLabel, &r.TerminalIP, &path, &located); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		if r.MAC, err = domain.ParseMAC(mac); err != nil {
			return nil, fmt.Errorf("stored result has bad MAC %q: %w", mac, err)
		}
		if err := json.Unmarshal([]byte(path), &r.Path); err != nil {
			return nil, fmt.Errorf("failed to unmarshal path: %w", err)
		}
		if r.Timestamp, err = time.Parse(storedTimeLayout, located); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp %q: %w", located, err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
