// Package sqlite stores studies in a single SQLite table using the pure-Go
// modernc driver. AUTOINCREMENT guarantees ids are never reused.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/jmoiron/sqlx"

	"github.com/claralima1/Planner/internal/model"
)

const selectColumns = `id, titulo, duracao, concluido, descricao, categoria, prioridade, data_criacao`

type row struct {
	ID          int64   `db:"id"`
	Title       string  `db:"titulo"`
	Duration    float64 `db:"duracao"`
	Completed   bool    `db:"concluido"`
	Description *string `db:"descricao"`
	Category    *string `db:"categoria"`
	Priority    *string `db:"prioridade"`
	CreatedAt   string  `db:"data_criacao"`
}

func (r row) toModel() (*model.Study, error) {
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
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("study %d: bad data_criacao %q: %w", r.ID, r.CreatedAt, err)
	}
	dt := strfmt.DateTime(created)
	st.CreatedAt = &dt
	return st, nil
}

func priorityArg(p *model.Priority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// Store is the SQLite-backed store.Store.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens (or creates) the database file at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
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
		st, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, in model.StudyInput) (*model.Study, error) {
	created := s.now().UTC()
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO estudos (titulo, duracao, concluido, descricao, categoria, prioridade, data_criacao)
        VALUES (?,?,?,?,?,?,?)`,
		in.Title, in.Duration, in.Completed, in.Description, in.Category, priorityArg(in.Priority),
		created.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("create study: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create study: %w", err)
	}
	st := model.NewStudy(id, in)
	dt := strfmt.DateTime(created)
	st.CreatedAt = &dt
	return st, nil
}

func (s *Store) Update(ctx context.Context, p model.StudyPatch) (*model.Study, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var r row
	if err := tx.GetContext(ctx, &r, `SELECT `+selectColumns+` FROM estudos WHERE id = ?`, p.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study %d: %w", p.ID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("load study %d: %w", p.ID, err)
	}
	current, err := r.toModel()
	if err != nil {
		return nil, err
	}
	merged := p.Apply(*current)

	if _, err := tx.ExecContext(ctx, `
        UPDATE estudos
        SET titulo = ?, duracao = ?, concluido = ?, descricao = ?, categoria = ?, prioridade = ?
        WHERE id = ?`,
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
	if _, err := s.db.ExecContext(ctx, `DELETE FROM estudos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete study %d: %w", id, err)
	}
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM estudos`); err != nil {
		return fmt.Errorf("reset studies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'estudos'`); err != nil {
		return fmt.Errorf("reset id sequence: %w", err)
	}
	return tx.Commit()
}
