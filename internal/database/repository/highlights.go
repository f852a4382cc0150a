package repository

import (
	"context"
	"database/sql"
)

// HighlightRepo handles highlight assignments.
type HighlightRepo struct {
	db *sql.DB
}

func NewHighlightRepo(db *sql.DB) *HighlightRepo { return &HighlightRepo{db: db} }

// Add inserts h unless the record is already highlighted for the author.
// It reports whether a row was written.
func (r *HighlightRepo) Add(ctx context.Context, h Highlight) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT OR IGNORE INTO highlights(id, literature_id, author_id, assigned_by, created_at)
	VALUES (?, ?, ?, ?, ?)`, h.ID, h.LiteratureID, h.AuthorID, h.AssignedBy, h.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddAll inserts hs in one transaction and returns how many rows were
// new. Nothing is written if any insert fails.
func (r *HighlightRepo) AddAll(ctx context.Context, hs []Highlight) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, h := range hs {
		res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO highlights(id, literature_id, author_id, assigned_by, created_at)
		VALUES (?, ?, ?, ?, ?)`, h.ID, h.LiteratureID, h.AuthorID, h.AssignedBy, h.CreatedAt)
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

func (r *HighlightRepo) ListByAuthor(ctx context.Context, authorID int64) ([]Highlight, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, literature_id, author_id, assigned_by, created_at
	FROM highlights WHERE author_id = ? ORDER BY created_at DESC, literature_id DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Highlight
	for rows.Next() {
		var h Highlight
		if err := rows.Scan(&h.ID, &h.LiteratureID, &h.AuthorID, &h.AssignedBy, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
