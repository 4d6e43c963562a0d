package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// PgxPool is the subset of pgxpool.Pool the store uses, satisfied by pgxmock.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool PgxPool
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
		return nil, eris.Wrap(err, "postgres: parse config")
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
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresWithPool(pool PgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS opportunities (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	data       JSONB NOT NULL,
	stage      TEXT NOT NULL,
	owner_id   TEXT NOT NULL DEFAULT '',
	value      DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_opportunities_stage ON opportunities(stage);
CREATE INDEX IF NOT EXISTS idx_opportunities_owner ON opportunities(owner_id);
CREATE INDEX IF NOT EXISTS idx_opportunities_created ON opportunities(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateOpportunity(ctx context.Context, d model.Deal) (*model.Deal, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(d)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal deal")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO opportunities (id, data, stage, owner_id, value, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, data, string(d.Stage), d.OwnerID, d.Value, d.CreatedAt, time.Now().UTC(),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert opportunity %s", d.ID)
	}
	return &d, nil
}

func (s *PostgresStore) GetOpportunity(ctx context.Context, id string) (*model.Deal, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM opportunities WHERE id = $1`, id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "opportunity %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get opportunity %s", id)
	}

	var d model.Deal
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal deal")
	}
	return &d, nil
}

func (s *PostgresStore) ListOpportunities(ctx context.Context, filter ListFilter) ([]model.Deal, error) {
	query := `SELECT data FROM opportunities WHERE 1=1`
	var args []any
	if filter.Stage != "" {
		args = append(args, string(filter.Stage))
		query += ` AND stage = $1`
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		query += ` AND owner_id = $` + itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + itoa(len(args))
		args = append(args, filter.Offset)
		query += ` OFFSET $` + itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list opportunities")
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan opportunity")
		}
		var d model.Deal
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal deal")
		}
		deals = append(deals, d)
	}
	return deals, eris.Wrap(rows.Err(), "postgres: iterate opportunities")
}

func (s *PostgresStore) UpdateOpportunity(ctx context.Context, id string, patch DealPatch) (*model.Deal, error) {
	current, err := s.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := patch.Apply(*current)

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal deal")
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE opportunities SET data = $1, stage = $2, owner_id = $3, value = $4, updated_at = $5 WHERE id = $6`,
		data, string(updated.Stage), updated.OwnerID, updated.Value, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: update opportunity %s", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, eris.Wrapf(ErrNotFound, "opportunity %s", id)
	}
	return &updated, nil
}

func (s *PostgresStore) DeleteOpportunity(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete opportunity %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "opportunity %s", id)
	}
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
