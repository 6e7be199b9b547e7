// Package history keeps status samples in a SQLite database so the
// sidebar graphs and the history command can show usage across restarts.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yllada/system-monitor/common"
	"github.com/yllada/system-monitor/monitor"
)

const schemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	hostname    TEXT NOT NULL DEFAULT '',
	started_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS samples (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	taken_at        INTEGER NOT NULL,
	cpu_percent     REAL NOT NULL,
	memory_used     INTEGER NOT NULL,
	memory_total    INTEGER NOT NULL,
	download_rate   REAL NOT NULL,
	upload_rate     REAL NOT NULL,
	disk_read_rate  REAL NOT NULL,
	disk_write_rate REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_samples_taken_at ON samples(taken_at);
`

// Sample is one stored status reading.
type Sample struct {
	SessionID     string
	Time          time.Time
	CPUPercent    float64
	MemoryUsed    uint64
	MemoryTotal   uint64
	DownloadRate  float64
	UploadRate    float64
	DiskReadRate  float64
	DiskWriteRate float64
}

// MemoryPercent returns used memory as a percentage of total.
func (s Sample) MemoryPercent() float64 {
	if s.MemoryTotal == 0 {
		return 0
	}
	return float64(s.MemoryUsed) / float64(s.MemoryTotal) * 100
}

// Store records samples for one monitor session.
type Store struct {
	db        *sql.DB
	sessionID string
}

// DefaultPath returns the database path in the user's data directory.
func DefaultPath() (string, error) {
	dir, err := common.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.HistoryFileName), nil
}

// Open opens (or creates) the database at path and starts a new session.
func Open(ctx context.Context, path, hostname string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", common.ErrHistoryUnavailable, err)
	}
	// One writer at a time; SQLite serializes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: enable foreign keys: %v", common.ErrHistoryUnavailable, err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate schema: %v", common.ErrHistoryUnavailable, err)
	}

	s := &Store{db: db, sessionID: uuid.NewString()}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO sessions (id, hostname, started_at) VALUES (?, ?, ?)",
		s.sessionID, hostname, time.Now().UnixMilli()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: start session: %v", common.ErrHistoryUnavailable, err)
	}

	return s, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_meta'
	`).Scan(&count)
	if err != nil {
		return err
	}

	if count > 0 {
		var ver int
		err := db.QueryRowContext(ctx, "SELECT version FROM schema_meta LIMIT 1").Scan(&ver)
		if err == nil && ver >= schemaVersion {
			return nil
		}
		if err != nil && err != sql.ErrNoRows {
			return err
		}
	}

	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_meta"); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, "INSERT INTO schema_meta (version) VALUES (?)", schemaVersion)
	return err
}

// SessionID returns the id of the session samples are recorded under.
func (s *Store) SessionID() string {
	return s.sessionID
}

// RecordStatus stores one status sample.
func (s *Store) RecordStatus(ctx context.Context, st monitor.Status) error {
	taken := st.Time
	if taken.IsZero() {
		taken = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO samples (session_id, taken_at, cpu_percent, memory_used, memory_total,
			download_rate, upload_rate, disk_read_rate, disk_write_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.sessionID, taken.UnixMilli(), st.CPUPercent,
		int64(st.MemoryUsed), int64(st.MemoryTotal),
		st.DownloadRate, st.UploadRate, st.DiskReadRate, st.DiskWriteRate)
	if err != nil {
		return fmt.Errorf("record sample: %w", err)
	}
	return nil
}

// Recent returns up to limit samples, oldest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Sample, error) {
	return recent(ctx, s.db, limit)
}

// ReadRecent returns up to limit samples from the database at path without
// starting a session. A missing database holds no samples.
func ReadRecent(ctx context.Context, path string, limit int) ([]Sample, error) {
	if !common.FileExists(path) {
		return nil, nil
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", common.ErrHistoryUnavailable, err)
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("%w: migrate schema: %v", common.ErrHistoryUnavailable, err)
	}
	return recent(ctx, db, limit)
}

func recent(ctx context.Context, db *sql.DB, limit int) ([]Sample, error) {
	if limit <= 0 {
		limit = common.SparklinePoints
	}
	rows, err := db.QueryContext(ctx, `
		SELECT session_id, taken_at, cpu_percent, memory_used, memory_total,
			download_rate, upload_rate, disk_read_rate, disk_write_rate
		FROM (
			SELECT * FROM samples ORDER BY taken_at DESC, id DESC LIMIT ?
		) ORDER BY taken_at ASC, id ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var (
			smp       Sample
			takenAt   int64
			used, tot int64
		)
		if err := rows.Scan(&smp.SessionID, &takenAt, &smp.CPUPercent, &used, &tot,
			&smp.DownloadRate, &smp.UploadRate, &smp.DiskReadRate, &smp.DiskWriteRate); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		smp.Time = time.UnixMilli(takenAt)
		smp.MemoryUsed, smp.MemoryTotal = uint64(used), uint64(tot)
		out = append(out, smp)
	}
	return out, rows.Err()
}

// Prune deletes samples older than cutoff along with sessions left empty,
// except the current one. It returns the number of samples removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM samples WHERE taken_at < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune samples: %w", err)
	}
	n, _ := res.RowsAffected()

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE id != ? AND id NOT IN (SELECT DISTINCT session_id FROM samples)`,
		s.sessionID); err != nil {
		return n, fmt.Errorf("prune sessions: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
