// Package actions builds the actions the views dispatch. Plain actions are
// reduced by the store directly; the rest are thunks that talk to a
// Backend and dispatch the outcome.
package actions

import (
	"context"
	"fmt"

	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/service"
	"github.com/jask/authorpubs/internal/store"
)

// Backend is the data layer the thunks call. *service.LiteratureService
// implements it.
type Backend interface {
	Author(ctx context.Context, id int64) (repository.Author, error)
	SearchLiterature(ctx context.Context, base *search.BaseQuery, q search.Query) ([]repository.Record, int, error)
	ReferencesOf(ctx context.Context, recordID int64, q search.Query) ([]repository.Reference, int, error)
	Highlighted(ctx context.Context, authorID int64) ([]repository.Record, error)
	Highlight(ctx context.Context, from, to int64, ids []int64) (int, error)
}

var _ Backend = (*service.LiteratureService)(nil)

// Assignment asks for the selected records to be highlighted under author
// To, initiated from author From's profile.
type Assignment struct {
	From int64
	To   int64
}

// Thunk names.
const (
	NameAddHighlightedRecords     = "literature/addHighlightedRecords"
	NameGetHighlightedRecords     = "literature/getHighlightedRecords"
	NameFetchLiteratureReferences = "literature/fetchReferences"
	NameSearchQuery               = "search/query"
	NameSearchBaseQuery           = "search/baseQuery"
	NameFetchAuthor               = "authors/fetch"
)

// SetPublicationSelection marks ids as selected or not.
func SetPublicationSelection(ids []int64, selected bool) store.Action {
	return store.SetPublicationSelection{IDs: ids, Selected: selected}
}

func ClearPublicationSelection() store.Action {
	return store.ClearPublicationSelection{}
}

// Creators builds thunks bound to a Backend.
type Creators struct {
	Backend Backend
}

// AddHighlightedRecords highlights every selected record under a.To. On
// success the assigned ids leave the selection and, when a.To is the
// author being shown, the highlights and publications are fetched again.
func (c Creators) AddHighlightedRecords(a Assignment) store.Action {
	return store.Thunk{
		Name: NameAddHighlightedRecords,
		Args: []interface{}{a},
		Run: func(ctx context.Context, d store.Dispatcher, getState func() store.State) error {
			st := getState()
			ids := st.Authors.PublicationSelection.IDs()
			if len(ids) == 0 {
				d.Dispatch(store.HighlightError{Err: service.ErrEmptySelection.Error()})
				return service.ErrEmptySelection
			}
			d.Dispatch(store.HighlightRequest{From: a.From, To: a.To, IDs: ids})
			added, err := c.Backend.Highlight(ctx, a.From, a.To, ids)
			if err != nil {
				d.Dispatch(store.HighlightError{Err: err.Error()})
				return err
			}
			d.Dispatch(store.HighlightSuccess{From: a.From, To: a.To, IDs: ids, Added: added})

			st = getState()
			if author := st.Authors.Data; author != nil && author.ID == a.To {
				d.Dispatch(c.GetHighlightedRecords(a.To))
				if st.Search.Namespace(search.AuthorPublicationsNS).BaseQuery != nil {
					d.Dispatch(c.SearchQuery(search.AuthorPublicationsNS, search.Query{}))
				}
			}
			return nil
		},
	}
}

// GetHighlightedRecords loads authorID's highlights into AuthorHighlightsNS.
// The response is dropped if another author is shown by the time it lands.
func (c Creators) GetHighlightedRecords(authorID int64) store.Action {
	return store.Thunk{
		Name: NameGetHighlightedRecords,
		Args: []interface{}{authorID},
		Run: func(ctx context.Context, d store.Dispatcher, getState func() store.State) error {
			ns := getState().Search.Namespace(search.AuthorHighlightsNS)
			d.Dispatch(store.SearchQueryUpdate{Namespace: search.AuthorHighlightsNS, Query: ns.Query})
			recs, err := c.Backend.Highlighted(ctx, authorID)
			if err != nil {
				d.Dispatch(store.SearchError{
					Namespace: search.AuthorHighlightsNS,
					Query:     ns.Query,
					BaseQuery: ns.BaseQuery,
					AuthorID:  authorID,
					Err:       err.Error(),
				})
				return err
			}
			d.Dispatch(store.SearchSuccess{
				Namespace: search.AuthorHighlightsNS,
				Query:     ns.Query,
				BaseQuery: ns.BaseQuery,
				AuthorID:  authorID,
				Results:   recs,
				Total:     len(recs),
			})
			return nil
		},
	}
}

// FetchLiteratureReferences loads the references recordID cites. q is
// merged over the current reference query.
func (c Creators) FetchLiteratureReferences(recordID int64, q search.Query) store.Action {
	return store.Thunk{
		Name: NameFetchLiteratureReferences,
		Args: []interface{}{recordID, q.String()},
		Run: func(ctx context.Context, d store.Dispatcher, getState func() store.State) error {
			merged := getState().Search.Namespace(search.LiteratureReferencesNS).Query.Merge(q)
			d.Dispatch(store.ReferencesRequest{RecordID: recordID, Query: merged})
			refs, total, err := c.Backend.ReferencesOf(ctx, recordID, merged)
			if err != nil {
				d.Dispatch(store.ReferencesError{RecordID: recordID, Query: merged, Err: err.Error()})
				return err
			}
			d.Dispatch(store.ReferencesSuccess{RecordID: recordID, Query: merged, References: refs, Total: total})
			return nil
		},
	}
}

// SearchQuery merges q over the namespace query and searches within the
// namespace's base query.
func (c Creators) SearchQuery(namespace string, q search.Query) store.Action {
	return store.Thunk{
		Name: NameSearchQuery,
		Args: []interface{}{namespace, q.String()},
		Run: func(ctx context.Context, d store.Dispatcher, getState func() store.State) error {
			merged := getState().Search.Namespace(namespace).Query.Merge(q)
			return c.search(ctx, d, getState, namespace, merged)
		},
	}
}

// SearchBaseQuery rescopes a namespace and searches from its first page.
func (c Creators) SearchBaseQuery(namespace string, base *search.BaseQuery, aggs *search.AggregationsQuery) store.Action {
	return store.Thunk{
		Name: NameSearchBaseQuery,
		Args: []interface{}{namespace, base},
		Run: func(ctx context.Context, d store.Dispatcher, getState func() store.State) error {
			d.Dispatch(store.SearchBaseQueryUpdate{Namespace: namespace, BaseQuery: base, BaseAggregationsQuery: aggs})
			q := getState().Search.Namespace(namespace).Query.With(search.KeyPage, "1")
			return c.search(ctx, d, getState, namespace, q)
		},
	}
}

func (c Creators) search(ctx context.Context, d store.Dispatcher, getState func() store.State, namespace string, q search.Query) error {
	d.Dispatch(store.SearchQueryUpdate{Namespace: namespace, Query: q})
	base := getState().Search.Namespace(namespace).BaseQuery
	recs, total, err := c.Backend.SearchLiterature(ctx, base, q)
	if err != nil {
		d.Dispatch(store.SearchError{Namespace: namespace, Query: q, BaseQuery: base, Err: err.Error()})
		return fmt.Errorf("search %s: %w", namespace, err)
	}
	d.Dispatch(store.SearchSuccess{Namespace: namespace, Query: q, BaseQuery: base, Results: recs, Total: total})
	return nil
}

// FetchAuthor loads the profile for authorID, then its highlights.
func (c Creators) FetchAuthor(authorID int64) store.Action {
	return store.Thunk{
		Name: NameFetchAuthor,
		Args: []interface{}{authorID},
		Run: func(ctx context.Context, d store.Dispatcher, _ func() store.State) error {
			d.Dispatch(store.AuthorRequest{AuthorID: authorID})
			a, err := c.Backend.Author(ctx, authorID)
			if err != nil {
				d.Dispatch(store.AuthorError{AuthorID: authorID, Err: err.Error()})
				return err
			}
			d.Dispatch(store.AuthorSuccess{Author: a})
			d.Dispatch(c.GetHighlightedRecords(authorID))
			return nil
		},
	}
}
