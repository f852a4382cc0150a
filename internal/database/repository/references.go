package repository

import (
	"context"
	"database/sql"
)

// ReferenceRepo handles the references a record cites.
type ReferenceRepo struct {
	db DBTX
}

func NewReferenceRepo(db DBTX) *ReferenceRepo { return &ReferenceRepo{db: db} }

// Add stores the reference at position. citedID may be nil for references
// that only carry a raw title.
func (r *ReferenceRepo) Add(ctx context.Context, citingID int64, position int, citedID *int64, rawTitle string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO literature_references(citing_id, position, cited_id, raw_title)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(citing_id, position) DO UPDATE SET
	 cited_id=excluded.cited_id,
	 raw_title=excluded.raw_title;
	`, citingID, position, citedID, rawTitle)
	return err
}

// List returns one page of references of citingID ordered by position,
// plus the total count. text filters on the resolved or raw title.
func (r *ReferenceRepo) List(ctx context.Context, citingID int64, text string, limit, offset int) ([]Reference, int, error) {
	where := " WHERE lr.citing_id = ?"
	args := []interface{}{citingID}
	if text != "" {
		where += " AND COALESCE(l.title, lr.raw_title) LIKE ?"
		args = append(args, "%"+text+"%")
	}
	from := " FROM literature_references lr LEFT JOIN literature l ON l.id = lr.cited_id"

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT lr.position, lr.raw_title, lr.cited_id" + from + where + " ORDER BY lr.position"
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		ref   Reference
		cited sql.NullInt64
	}
	var raw []row
	for rows.Next() {
		var rw row
		if err := rows.Scan(&rw.ref.Position, &rw.ref.RawTitle, &rw.cited); err != nil {
			_ = rows.Close()
			return nil, 0, err
		}
		raw = append(raw, rw)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, 0, err
	}
	_ = rows.Close()

	// sqlite is opened with a single connection, so resolve after rows close.
	lit := NewLiteratureRepo(r.db)
	out := make([]Reference, 0, len(raw))
	for _, rw := range raw {
		if rw.cited.Valid {
			rec, err := lit.Get(ctx, rw.cited.Int64)
			if err != nil {
				return nil, 0, err
			}
			rw.ref.Record = rec
		}
		out = append(out, rw.ref)
	}
	return out, total, nil
}
