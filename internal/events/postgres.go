package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "events: parse pool config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "events: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "events: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests (pgxmock).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	tenant_id  TEXT NOT NULL,
	source_id  TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL,
	labels     JSONB NOT NULL DEFAULT '{}',
	state      JSONB NOT NULL DEFAULT '{}',
	ts         TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_tenant_ts ON events(tenant_id, ts DESC);
CREATE INDEX IF NOT EXISTS idx_events_tenant_source_ts ON events(tenant_id, source_id, ts DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "events: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) InsertEvent(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	labels, err := json.Marshal(ev.Labels)
	if err != nil {
		return eris.Wrap(err, "events: marshal labels")
	}
	state, err := json.Marshal(ev.State)
	if err != nil {
		return eris.Wrap(err, "events: marshal state")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO events (id, tenant_id, source_id, type, labels, state, ts) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.ID, ev.TenantID, ev.SourceID, ev.Type, labels, state, ev.Timestamp,
	)
	return eris.Wrap(err, "events: insert event")
}

func (s *PostgresStore) QueryRecent(ctx context.Context, tenantID, sourceID string, limit int) (*RecentEvents, error) {
	var total int
	var rows pgx.Rows
	var err error

	if sourceID != "" {
		err = s.pool.QueryRow(ctx,
			`SELECT count(*) FROM events WHERE tenant_id = $1 AND source_id = $2`,
			tenantID, sourceID,
		).Scan(&total)
		if err != nil {
			return nil, eris.Wrap(err, "events: count")
		}
		rows, err = s.pool.Query(ctx,
			`SELECT id, tenant_id, source_id, type, labels, state, ts FROM events
			 WHERE tenant_id = $1 AND source_id = $2 ORDER BY ts DESC LIMIT $3`,
			tenantID, sourceID, limit,
		)
	} else {
		err = s.pool.QueryRow(ctx,
			`SELECT count(*) FROM events WHERE tenant_id = $1`,
			tenantID,
		).Scan(&total)
		if err != nil {
			return nil, eris.Wrap(err, "events: count")
		}
		rows, err = s.pool.Query(ctx,
			`SELECT id, tenant_id, source_id, type, labels, state, ts FROM events
			 WHERE tenant_id = $1 ORDER BY ts DESC LIMIT $2`,
			tenantID, limit,
		)
	}
	if err != nil {
		return nil, eris.Wrap(err, "events: query recent")
	}
	defer rows.Close()

	result := &RecentEvents{TotalCount: total}
	for rows.Next() {
		var ev Event
		var labels, state []byte
		if err := rows.Scan(&ev.ID, &ev.TenantID, &ev.SourceID, &ev.Type, &labels, &state, &ev.Timestamp); err != nil {
			return nil, eris.Wrap(err, "events: scan row")
		}
		if err := json.Unmarshal(labels, &ev.Labels); err != nil {
			return nil, eris.Wrap(err, "events: unmarshal labels")
		}
		if err := json.Unmarshal(state, &ev.State); err != nil {
			return nil, eris.Wrap(err, "events: unmarshal state")
		}
		result.Events = append(result.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "events: iterate rows")
	}

	return result, nil
}
