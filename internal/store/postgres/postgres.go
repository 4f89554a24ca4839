// Package postgres stores studies in PostgreSQL through the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-openapi/strfmt"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/claralima1/Planner/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS estudos (
    id           BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    titulo       TEXT             NOT NULL DEFAULT '',
    duracao      DOUBLE PRECISION NOT NULL DEFAULT 0,
    concluido    BOOLEAN          NOT NULL DEFAULT FALSE,
    descricao    TEXT,
    categoria    TEXT,
    prioridade   TEXT,
    data_criacao TIMESTAMPTZ      NOT NULL DEFAULT now()
)`

const selectColumns = `id, titulo, duracao, concluido, descricao, categoria, prioridade, data_criacao`

type row struct {
	ID          int64     `db:"id"`
	Title       string    `db:"titulo"`
	Duration    float64   `db:"duracao"`
	Completed   bool      `db:"concluido"`
	Description *string   `db:"descricao"`
	Category    *string   `db:"categoria"`
	Priority    *string   `db:"prioridade"`
	CreatedAt   time.Time `db:"data_criacao"`
}

func (r row) toModel() *model.Study {
	st := &model.Study{
		ID:          r.ID,
		Title:       r.Title,
		Duration:    r.Duration,
		Completed:   r.Completed,
		Description: r.Description,
		Category:    r.Category,
	}
	if r.Priority != nil {
		p := model.Priority(*r.Priority)
		st.Priority = &p
	}
	dt := strfmt.DateTime(r.CreatedAt.UTC())
	st.CreatedAt = &dt
	return st
}

func priorityArg(p *model.Priority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// Store is the PostgreSQL-backed store.Store.
type Store struct{ db *sqlx.DB }

// Open opens a PostgreSQL connection, verifies connectivity and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply postgres schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenWithRetry retries Open with exponential backoff until maxElapsed passes.
// Databases started alongside the service are often not accepting connections yet.
func OpenWithRetry(ctx context.Context, dsn string, maxElapsed time.Duration, log zerolog.Logger) (*Store, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 250 * time.Millisecond
	exp.MaxInterval = 5 * time.Second
	exp.MaxElapsedTime = maxElapsed

	var st *Store
	op := func() error {
		s, err := Open(ctx, dsn)
		if err != nil {
			if dsn == "" {
				return backoff.Permanent(err)
			}
			log.Warn().Err(err).Msg("postgres not ready, retrying")
			return err
		}
		st = s
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(exp, ctx)); err != nil {
		return nil, err
	}
	return st, nil
}

// DB exposes the underlying connection pool.
func (s *Store) DB() *sqlx.DB { return s.db }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) List(ctx context.Context) ([]*model.Study, error) {
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+selectColumns+` FROM estudos ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list studies: %w", err)
	}
	out := make([]*model.Study, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, in model.StudyInput) (*model.Study, error) {
	var r row
	err := s.db.GetContext(ctx, &r, `
        INSERT INTO estudos (titulo, duracao, concluido, descricao, categoria, prioridade)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING `+selectColumns,
		in.Title, in.Duration, in.Completed, in.Description, in.Category, priorityArg(in.Priority))
	if err != nil {
		return nil, fmt.Errorf("create study: %w", err)
	}
	return r.toModel(), nil
}

func (s *Store) Update(ctx context.Context, p model.StudyPatch) (*model.Study, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var r row
	if err := tx.GetContext(ctx, &r, `SELECT `+selectColumns+` FROM estudos WHERE id = $1 FOR UPDATE`, p.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study %d: %w", p.ID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("load study %d: %w", p.ID, err)
	}
	merged := p.Apply(*r.toModel())

	if _, err := tx.ExecContext(ctx, `
        UPDATE estudos
        SET titulo = $1, duracao = $2, concluido = $3, descricao = $4, categoria = $5, prioridade = $6
        WHERE id = $7`,
		merged.Title, merged.Duration, merged.Completed, merged.Description, merged.Category,
		priorityArg(merged.Priority), merged.ID); err != nil {
		return nil, fmt.Errorf("update study %d: %w", p.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM estudos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete study %d: %w", id, err)
	}
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE estudos RESTART IDENTITY`); err != nil {
		return fmt.Errorf("reset studies: %w", err)
	}
	return nil
}
