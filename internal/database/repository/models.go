package repository

import (
	"context"
	"database/sql"
	"time"
)

// Author represents an author profile row.
type Author struct {
	ID              int64
	FullName        string
	FacetAuthorName string
	BAI             *string
}

// Record represents a literature record together with its author names.
type Record struct {
	ID              int64
	Title           string
	Authors         []string
	CitationCount   int
	PreprintDate    *string
	ThesisDate      *string
	PublicationYear *int
	ImprintDate     *string
}

// Reference is one entry of a record's reference list. Record is nil when
// the reference could not be resolved to a literature row.
type Reference struct {
	Position int
	RawTitle string
	Record   *Record
}

// Highlight flags a record as notable for AuthorID. AssignedBy is the
// author whose profile the assignment was made from.
type Highlight struct {
	ID           string
	LiteratureID int64
	AuthorID     int64
	AssignedBy   int64
	CreatedAt    time.Time
}

// DBTX is satisfied by *sql.DB and *sql.Tx, so the read/write repos can
// run inside a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
