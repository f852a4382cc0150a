package repository

import (
	"context"
	"database/sql"
	"errors"
)

// AuthorRepo handles authors.
type AuthorRepo struct {
	db DBTX
}

func NewAuthorRepo(db DBTX) *AuthorRepo { return &AuthorRepo{db: db} }

func (r *AuthorRepo) Upsert(ctx context.Context, a Author) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO authors(id, full_name, facet_author_name, bai)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 full_name=excluded.full_name,
	 facet_author_name=excluded.facet_author_name,
	 bai=excluded.bai;
	`, a.ID, a.FullName, a.FacetAuthorName, a.BAI)
	return err
}

// Get returns nil, nil when the author does not exist.
func (r *AuthorRepo) Get(ctx context.Context, id int64) (*Author, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, full_name, facet_author_name, bai FROM authors WHERE id = ?`, id)
	var a Author
	if err := row.Scan(&a.ID, &a.FullName, &a.FacetAuthorName, &a.BAI); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepo) List(ctx context.Context) ([]Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, full_name, facet_author_name, bai FROM authors ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.FullName, &a.FacetAuthorName, &a.BAI); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
