package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/authorpubs/internal/database"
	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/search"
)

var (
	ErrEmptySelection = errors.New("no records selected")
	ErrAuthorNotFound = errors.New("author not found")
)

// LiteratureService answers the queries the views dispatch: author
// profiles, namespaced literature searches, reference lists and
// highlight assignments.
type LiteratureService struct {
	Authors    *repository.AuthorRepo
	Records    *repository.LiteratureRepo
	References *repository.ReferenceRepo
	Highlights *repository.HighlightRepo
	Log        *zap.Logger
	Now        func() time.Time
}

func (s *LiteratureService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *LiteratureService) now() time.Time {
	if s.Now == nil {
		return database.Now()
	}
	return s.Now()
}

func (s *LiteratureService) Author(ctx context.Context, id int64) (repository.Author, error) {
	a, err := s.Authors.Get(ctx, id)
	if err != nil {
		return repository.Author{}, fmt.Errorf("load author %d: %w", id, err)
	}
	if a == nil {
		return repository.Author{}, fmt.Errorf("%w: %d", ErrAuthorNotFound, id)
	}
	return *a, nil
}

// SearchLiterature runs q scoped by base. A nil base searches everything.
func (s *LiteratureService) SearchLiterature(ctx context.Context, base *search.BaseQuery, q search.Query) ([]repository.Record, int, error) {
	f := repository.LiteratureFilters{
		Text:   q.Text(),
		Sort:   q.Sort(),
		Limit:  q.Size(),
		Offset: q.Offset(),
	}
	if base != nil {
		f.AuthorFacets = base.Author
	}
	recs, total, err := s.Records.Search(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("search literature: %w", err)
	}
	return recs, total, nil
}

func (s *LiteratureService) ReferencesOf(ctx context.Context, recordID int64, q search.Query) ([]repository.Reference, int, error) {
	refs, total, err := s.References.List(ctx, recordID, q.Text(), q.Size(), q.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("references of %d: %w", recordID, err)
	}
	return refs, total, nil
}

func (s *LiteratureService) Highlighted(ctx context.Context, authorID int64) ([]repository.Record, error) {
	recs, err := s.Records.Highlighted(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("highlighted records of %d: %w", authorID, err)
	}
	return recs, nil
}

// Highlight flags ids as notable for author to, recorded as assigned from
// author from. from and to may differ. It returns how many records were
// newly highlighted; already highlighted records are skipped.
func (s *LiteratureService) Highlight(ctx context.Context, from, to int64, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	for _, id := range []int64{from, to} {
		if _, err := s.Author(ctx, id); err != nil {
			return 0, err
		}
	}
	now := s.now()
	hs := make([]repository.Highlight, 0, len(ids))
	for _, id := range ids {
		hs = append(hs, repository.Highlight{
			ID:           uuid.NewString(),
			LiteratureID: id,
			AuthorID:     to,
			AssignedBy:   from,
			CreatedAt:    now,
		})
	}
	added, err := s.Highlights.AddAll(ctx, hs)
	if err != nil {
		return 0, fmt.Errorf("highlight %v for %d: %w", ids, to, err)
	}
	s.logger().Info("records highlighted",
		zap.Int64("from", from), zap.Int64("to", to),
		zap.Int("requested", len(ids)), zap.Int("added", added))
	return added, nil
}
