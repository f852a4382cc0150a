package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/authorpubs/internal/database/repository"
)

type seedRecord struct {
	rec     repository.Record
	authors []int64
	cites   []int64
	raw     []string
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

var seedAuthors = []repository.Author{
	{ID: 1, FullName: "Ellis, John", FacetAuthorName: "1_John Ellis", BAI: strp("J.Ellis.1")},
	{ID: 2, FullName: "Witten, Edward", FacetAuthorName: "2_Edward Witten", BAI: strp("E.Witten.1")},
	{ID: 3, FullName: "Maldacena, Juan Martin", FacetAuthorName: "3_Juan Martin Maldacena", BAI: strp("J.M.Maldacena.1")},
}

var seedRecords = []seedRecord{
	{rec: repository.Record{ID: 101, Title: "The Large N limit of superconformal field theories and supergravity", CitationCount: 17000, PreprintDate: strp("1997-11-27"), PublicationYear: intp(1998)}, authors: []int64{3}},
	{rec: repository.Record{ID: 102, Title: "Anti-de Sitter space and holography", CitationCount: 11000, PreprintDate: strp("1998-02-20"), PublicationYear: intp(1998)}, authors: []int64{2}, cites: []int64{101}},
	{rec: repository.Record{ID: 103, Title: "Search for supersymmetry at the LHC", CitationCount: 420, PublicationYear: intp(2008), ImprintDate: strp("2007-12")}, authors: []int64{1}, raw: []string{"Supersymmetry primer"}},
	{rec: repository.Record{ID: 104, Title: "Holographic dark matter and supersymmetry", CitationCount: 35, PreprintDate: strp("2019-05-02")}, authors: []int64{1, 3}, cites: []int64{101, 102, 103}, raw: []string{"Unpublished lecture notes"}},
	{rec: repository.Record{ID: 105, Title: "String theory dynamics in various dimensions", CitationCount: 5200, PublicationYear: intp(1995)}, authors: []int64{2}},
	{rec: repository.Record{ID: 106, Title: "Cosmological constraints on supersymmetric dark matter", CitationCount: 210, ThesisDate: strp("2001-06-30"), PublicationYear: intp(2002)}, authors: []int64{1}, cites: []int64{103}},
}

// SeedDefaults loads a small demo corpus into empty databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	authors := repository.NewAuthorRepo(db)
	existing, err := authors.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing authors: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		return seedCorpus(ctx, tx)
	})
	if err != nil {
		return err
	}

	highlights := repository.NewHighlightRepo(db)
	h := repository.Highlight{
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte("highlight:101:3")).String(),
		LiteratureID: 101,
		AuthorID:     3,
		AssignedBy:   3,
		CreatedAt:    Now(),
	}
	if _, err := highlights.Add(ctx, h); err != nil {
		return fmt.Errorf("seed highlight: %w", err)
	}
	return nil
}

func seedCorpus(ctx context.Context, tx *sql.Tx) error {
	authors := repository.NewAuthorRepo(tx)
	lit := repository.NewLiteratureRepo(tx)
	refs := repository.NewReferenceRepo(tx)

	for _, a := range seedAuthors {
		if err := authors.Upsert(ctx, a); err != nil {
			return fmt.Errorf("seed author %d: %w", a.ID, err)
		}
	}
	for _, sr := range seedRecords {
		if err := lit.Insert(ctx, sr.rec); err != nil {
			return fmt.Errorf("seed record %d: %w", sr.rec.ID, err)
		}
		for pos, authorID := range sr.authors {
			if err := lit.AttachAuthor(ctx, sr.rec.ID, authorID, pos); err != nil {
				return err
			}
		}
	}
	for _, sr := range seedRecords {
		pos := 0
		for _, cited := range sr.cites {
			cited := cited
			if err := refs.Add(ctx, sr.rec.ID, pos, &cited, ""); err != nil {
				return err
			}
			pos++
		}
		for _, title := range sr.raw {
			if err := refs.Add(ctx, sr.rec.ID, pos, nil, title); err != nil {
				return err
			}
			pos++
		}
	}
	return nil
}
