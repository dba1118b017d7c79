package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"ETCTracker/internal/logger"
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

	// WAL mode so dashboards can read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS market_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			run_id        TEXT NOT NULL,
			price_usd     REAL,
			change_24h    REAL,
			provenance    TEXT,
			artifact_path TEXT,
			skipped       INTEGER,
			status        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_market_ts ON market_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS news_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			run_id        TEXT NOT NULL,
			item_count    INTEGER,
			reformulated  INTEGER,
			artifact_path TEXT,
			status        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_ts ON news_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS publish_outcomes (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			run_id    TEXT NOT NULL,
			channel   TEXT,
			status    TEXT,
			remote_id TEXT,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcome_run ON publish_outcomes(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordMarketRun(rec *MarketRunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	skipped := 0
	if rec.Skipped {
		skipped = 1
	}
	_, err := r.db.Exec(`INSERT INTO market_runs
		(timestamp, run_id, price_usd, change_24h, provenance, artifact_path, skipped, status)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.RunID, rec.PriceUSD, rec.Change24h,
		rec.Provenance, rec.ArtifactPath, skipped, rec.Status,
	)
	return err
}

func (r *SQLiteRecorder) RecordNewsRun(rec *NewsRunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO news_runs
		(timestamp, run_id, item_count, reformulated, artifact_path, status)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), rec.RunID, rec.ItemCount, rec.Reformulated,
		rec.ArtifactPath, rec.Status,
	)
	return err
}

func (r *SQLiteRecorder) RecordOutcome(rec *OutcomeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO publish_outcomes
		(timestamp, run_id, channel, status, remote_id, error)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), rec.RunID, rec.Channel, rec.Status, rec.RemoteID, rec.Error,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	logger.Log.Info("closing sqlite recorder")
	return r.db.Close()
}
