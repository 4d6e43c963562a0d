package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/sales-dashboard/internal/model"
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
CREATE TABLE IF NOT EXISTS opportunities (
	id         TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	stage      TEXT NOT NULL,
	owner_id   TEXT NOT NULL DEFAULT '',
	value      REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_opportunities_stage ON opportunities(stage);
CREATE INDEX IF NOT EXISTS idx_opportunities_owner ON opportunities(owner_id);
CREATE INDEX IF NOT EXISTS idx_opportunities_created ON opportunities(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateOpportunity(ctx context.Context, d model.Deal) (*model.Deal, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(d)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal deal")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO opportunities (id, data, stage, owner_id, value, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, string(data), string(d.Stage), d.OwnerID, d.Value, d.CreatedAt, time.Now().UTC(),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert opportunity %s", d.ID)
	}
	return &d, nil
}

func (s *SQLiteStore) GetOpportunity(ctx context.Context, id string) (*model.Deal, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM opportunities WHERE id = ?`, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "opportunity %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get opportunity %s", id)
	}
	return unmarshalDeal(data)
}

func (s *SQLiteStore) ListOpportunities(ctx context.Context, filter ListFilter) ([]model.Deal, error) {
	query := `SELECT data FROM opportunities WHERE 1=1`
	var args []any
	if filter.Stage != "" {
		query += ` AND stage = ?`
		args = append(args, string(filter.Stage))
	}
	if filter.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list opportunities")
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan opportunity")
		}
		d, err := unmarshalDeal(data)
		if err != nil {
			return nil, err
		}
		deals = append(deals, *d)
	}
	return deals, eris.Wrap(rows.Err(), "sqlite: iterate opportunities")
}

func (s *SQLiteStore) UpdateOpportunity(ctx context.Context, id string, patch DealPatch) (*model.Deal, error) {
	current, err := s.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := patch.Apply(*current)

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal deal")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE opportunities SET data = ?, stage = ?, owner_id = ?, value = ?, updated_at = ? WHERE id = ?`,
		string(data), string(updated.Stage), updated.OwnerID, updated.Value, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: update opportunity %s", id)
	}
	if err := checkRowsAffected(res, id); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *SQLiteStore) DeleteOpportunity(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM opportunities WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete opportunity %s", id)
	}
	return checkRowsAffected(res, id)
}

func unmarshalDeal(data string) (*model.Deal, error) {
	var d model.Deal
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal deal")
	}
	return &d, nil
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "opportunity %s", id)
	}
	return nil
}
