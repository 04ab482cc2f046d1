package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis tools can read while a check is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			dates_checked INTEGER,
			dates_matched INTEGER,
			total_slots   INTEGER,
			notified      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS run_matches (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			date      TEXT,
			times     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_ts ON run_matches(timestamp)`,

		`CREATE TABLE IF NOT EXISTS query_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			date      TEXT,
			status    TEXT,
			detail    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON query_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	notified := 0
	if snap.Notified {
		notified = 1
	}
	if _, err := r.db.Exec(`INSERT INTO runs
		(timestamp, dates_checked, dates_matched, total_slots, notified)
		VALUES (?,?,?,?,?)`,
		now, snap.DatesChecked, len(snap.Matches), snap.Matches.TotalSlots(), notified,
	); err != nil {
		return err
	}

	for _, d := range snap.Matches.Dates() {
		if _, err := r.db.Exec(`INSERT INTO run_matches (timestamp, date, times) VALUES (?,?,?)`,
			now, d, strings.Join(snap.Matches[d], ","),
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordOutcome(evt *QueryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO query_events (timestamp, date, status, detail) VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Date, evt.Status, evt.Detail,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
