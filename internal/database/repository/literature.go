package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Sort orders accepted by LiteratureRepo.Search.
const (
	SortMostRecent = "mostrecent"
	SortMostCited  = "mostcited"
)

// LiteratureFilters defines search filters. AuthorFacets restricts results
// to records signed by any of the named authors.
type LiteratureFilters struct {
	AuthorFacets []string
	Text         string
	Sort         string
	Limit        int
	Offset       int
}

// LiteratureRepo handles literature records.
type LiteratureRepo struct {
	db DBTX
}

func NewLiteratureRepo(db DBTX) *LiteratureRepo { return &LiteratureRepo{db: db} }

const recordColumns = "l.id, l.title, l.citation_count, l.preprint_date, l.thesis_date, l.publication_year, l.imprint_date"

func (r *LiteratureRepo) Insert(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO literature(id, title, citation_count, preprint_date, thesis_date, publication_year, imprint_date)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 citation_count=excluded.citation_count,
	 preprint_date=excluded.preprint_date,
	 thesis_date=excluded.thesis_date,
	 publication_year=excluded.publication_year,
	 imprint_date=excluded.imprint_date;
	`, rec.ID, rec.Title, rec.CitationCount, rec.PreprintDate, rec.ThesisDate, rec.PublicationYear, rec.ImprintDate)
	return err
}

func (r *LiteratureRepo) AttachAuthor(ctx context.Context, literatureID, authorID int64, position int) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO literature_authors(literature_id, author_id, position) VALUES (?, ?, ?)`,
		literatureID, authorID, position)
	return err
}

// Get returns nil, nil when the record does not exist.
func (r *LiteratureRepo) Get(ctx context.Context, id int64) (*Record, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM literature l WHERE l.id = ?", id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if rec.Authors, err = r.authorNames(ctx, rec.ID); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Search returns one page of matching records and the total match count.
func (r *LiteratureRepo) Search(ctx context.Context, f LiteratureFilters) ([]Record, int, error) {
	var where []string
	var args []interface{}

	if len(f.AuthorFacets) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(f.AuthorFacets)), ",")
		where = append(where, `l.id IN (
		 SELECT la.literature_id FROM literature_authors la
		 JOIN authors a ON a.id = la.author_id
		 WHERE a.facet_author_name IN (`+marks+`))`)
		for _, facet := range f.AuthorFacets {
			args = append(args, facet)
		}
	}
	if f.Text != "" {
		where = append(where, "l.title LIKE ?")
		args = append(args, "%"+f.Text+"%")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM literature l"+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + recordColumns + " FROM literature l" + clause
	switch f.Sort {
	case SortMostCited:
		query += " ORDER BY l.citation_count DESC, l.id DESC"
	default:
		query += " ORDER BY l.id DESC"
	}
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	out, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Highlighted lists records highlighted for authorID, most recent first.
func (r *LiteratureRepo) Highlighted(ctx context.Context, authorID int64) ([]Record, error) {
	return r.query(ctx, "SELECT "+recordColumns+` FROM literature l
	JOIN highlights h ON h.literature_id = l.id
	WHERE h.author_id = ?
	ORDER BY h.created_at DESC, l.id DESC`, authorID)
}

func (r *LiteratureRepo) query(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		names, err := r.authorNames(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Authors = names
	}
	return out, nil
}

func (r *LiteratureRepo) authorNames(ctx context.Context, literatureID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT a.full_name FROM literature_authors la
	JOIN authors a ON a.id = la.author_id
	WHERE la.literature_id = ?
	ORDER BY la.position`, literatureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	var year sql.NullInt64
	if err := s.Scan(&rec.ID, &rec.Title, &rec.CitationCount, &rec.PreprintDate, &rec.ThesisDate, &year, &rec.ImprintDate); err != nil {
		return Record{}, err
	}
	if year.Valid {
		y := int(year.Int64)
		rec.PublicationYear = &y
	}
	return rec, nil
}
