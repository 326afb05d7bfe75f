package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS events (
	id        TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	source_id TEXT NOT NULL DEFAULT '',
	type      TEXT NOT NULL,
	labels    TEXT NOT NULL DEFAULT '{}',
	state     TEXT NOT NULL DEFAULT '{}',
	ts        DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_tenant_ts ON events(tenant_id, ts);
CREATE INDEX IF NOT EXISTS idx_events_tenant_source_ts ON events(tenant_id, source_id, ts);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertEvent(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	labels, err := json.Marshal(ev.Labels)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal labels")
	}
	state, err := json.Marshal(ev.State)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal state")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO events (id, tenant_id, source_id, type, labels, state, ts) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.TenantID, ev.SourceID, ev.Type, string(labels), string(state), ev.Timestamp.UTC(),
	)
	return eris.Wrap(err, "sqlite: insert event")
}

func (s *SQLiteStore) QueryRecent(ctx context.Context, tenantID, sourceID string, limit int) (*RecentEvents, error) {
	countQuery := `SELECT count(*) FROM events WHERE tenant_id = ?`
	listQuery := `SELECT id, tenant_id, source_id, type, labels, state, ts FROM events WHERE tenant_id = ? ORDER BY ts DESC LIMIT ?`
	countArgs := []any{tenantID}
	listArgs := []any{tenantID, limit}

	if sourceID != "" {
		countQuery = `SELECT count(*) FROM events WHERE tenant_id = ? AND source_id = ?`
		listQuery = `SELECT id, tenant_id, source_id, type, labels, state, ts FROM events WHERE tenant_id = ? AND source_id = ? ORDER BY ts DESC LIMIT ?`
		countArgs = []any{tenantID, sourceID}
		listArgs = []any{tenantID, sourceID, limit}
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, eris.Wrap(err, "sqlite: count")
	}

	rows, err := s.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query recent")
	}
	defer rows.Close()

	result := &RecentEvents{TotalCount: total}
	for rows.Next() {
		var ev Event
		var labels, state string
		if err := rows.Scan(&ev.ID, &ev.TenantID, &ev.SourceID, &ev.Type, &labels, &state, &ev.Timestamp); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan row")
		}
		if err := json.Unmarshal([]byte(labels), &ev.Labels); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal labels")
		}
		if err := json.Unmarshal([]byte(state), &ev.State); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal state")
		}
		result.Events = append(result.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate rows")
	}

	return result, nil
}
