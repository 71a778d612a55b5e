package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// schema is applied at startup. The deployment has no migration tooling;
// a fresh container must be able to start against an empty database.
const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id         bigserial PRIMARY KEY,
	content    text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes (created_at DESC);
`

type Repository struct {
	db *sql.DB

	stmtGet    *sql.Stmt
	stmtCreate *sql.Stmt
	stmtUpdate *sql.Stmt
	stmtDelete *sql.Stmt
}

func NewRepository(ctx context.Context, db *sql.DB) (*Repository, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	get, err := db.PrepareContext(ctx, `
		SELECT id, content, created_at, updated_at
		FROM notes
		WHERE id = $1
	`)
	if err != nil {
		return nil, err
	}

	create, err := db.PrepareContext(ctx, `
		INSERT INTO notes (content) VALUES ($1)
		RETURNING id, content, created_at, updated_at
	`)
	if err != nil {
		return nil, err
	}

	upd, err := db.PrepareContext(ctx, `
		UPDATE notes
		SET content = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, content, created_at, updated_at
	`)
	if err != nil {
		return nil, err
	}

	del, err := db.PrepareContext(ctx, `DELETE FROM notes WHERE id = $1`)
	if err != nil {
		return nil, err
	}

	return &Repository{
		db:         db,
		stmtGet:    get,
		stmtCreate: create,
		stmtUpdate: upd,
		stmtDelete: del,
	}, nil
}

func (r *Repository) Close() error {
	for _, s := range []*sql.Stmt{r.stmtGet, r.stmtCreate, r.stmtUpdate, r.stmtDelete} {
		if s != nil {
			_ = s.Close()
		}
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, content string) (Note, error) {
	var n Note
	err := r.stmtCreate.QueryRowContext(ctx, content).
		Scan(&n.ID, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *Repository) Get(ctx context.Context, id int64) (Note, error) {
	var n Note
	err := r.stmtGet.QueryRowContext(ctx, id).
		Scan(&n.ID, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, sql.ErrNoRows
	}
	return n, err
}

// Update refreshes updated_at from the database clock so the
// created_at <= updated_at invariant cannot be skewed by the app host.
func (r *Repository) Update(ctx context.Context, id int64, content string) (Note, error) {
	var n Note
	err := r.stmtUpdate.QueryRowContext(ctx, content, id).
		Scan(&n.ID, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, sql.ErrNoRows
	}
	return n, err
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		return err
	}
	a, _ := res.RowsAffected()
	if a == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notes`).Scan(&n)
	return n, err
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	out := make([]Note, 0, 32)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
