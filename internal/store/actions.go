package store

import (
	"context"

	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/search"
)

// Action is a message consumed by Reduce. Type names the action for logs
// and tests.
type Action interface {
	Type() string
}

// Dispatcher accepts actions. *Store and storetest.Recorder implement it.
type Dispatcher interface {
	Dispatch(Action)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(Action)

func (f DispatchFunc) Dispatch(a Action) { f(a) }

// Thunk is an asynchronous action. The store runs it on its own goroutine
// instead of reducing it. Args records the creator's arguments so tests
// can assert on what was requested.
type Thunk struct {
	Name string
	Args []interface{}
	Run  func(ctx context.Context, d Dispatcher, getState func() State) error
}

func (t Thunk) Type() string { return t.Name }

const (
	TypeSetPublicationSelection   = "authors/setPublicationSelection"
	TypeClearPublicationSelection = "authors/clearPublicationSelection"
	TypeAuthorRequest             = "authors/request"
	TypeAuthorSuccess             = "authors/success"
	TypeAuthorError               = "authors/error"
	TypeSearchQueryUpdate         = "search/queryUpdate"
	TypeSearchBaseQueryUpdate     = "search/baseQueryUpdate"
	TypeSearchSuccess             = "search/success"
	TypeSearchError               = "search/error"
	TypeReferencesRequest         = "literature/referencesRequest"
	TypeReferencesSuccess         = "literature/referencesSuccess"
	TypeReferencesError           = "literature/referencesError"
	TypeHighlightRequest          = "literature/highlightRequest"
	TypeHighlightSuccess          = "literature/highlightSuccess"
	TypeHighlightError            = "literature/highlightError"
	TypeUserUpdate                = "user/update"
)

// SetPublicationSelection adds (Selected) or removes IDs from the selection.
type SetPublicationSelection struct {
	IDs      []int64
	Selected bool
}

func (SetPublicationSelection) Type() string { return TypeSetPublicationSelection }

type ClearPublicationSelection struct{}

func (ClearPublicationSelection) Type() string { return TypeClearPublicationSelection }

type AuthorRequest struct{ AuthorID int64 }

func (AuthorRequest) Type() string { return TypeAuthorRequest }

type AuthorSuccess struct{ Author repository.Author }

func (AuthorSuccess) Type() string { return TypeAuthorSuccess }

type AuthorError struct {
	AuthorID int64
	Err      string
}

func (AuthorError) Type() string { return TypeAuthorError }

// SearchQueryUpdate replaces the namespace query and marks it loading.
type SearchQueryUpdate struct {
	Namespace string
	Query     search.Query
}

func (SearchQueryUpdate) Type() string { return TypeSearchQueryUpdate }

type SearchBaseQueryUpdate struct {
	Namespace             string
	BaseQuery             *search.BaseQuery
	BaseAggregationsQuery *search.AggregationsQuery
}

func (SearchBaseQueryUpdate) Type() string { return TypeSearchBaseQueryUpdate }

// SearchSuccess carries the query it answers; results for a query that is
// no longer current are dropped. A non-zero AuthorID ties the results to
// that author and they are dropped once another author is shown.
type SearchSuccess struct {
	Namespace string
	Query     search.Query
	BaseQuery *search.BaseQuery
	AuthorID  int64
	Results   []repository.Record
	Total     int
}

func (SearchSuccess) Type() string { return TypeSearchSuccess }

// SearchError is dropped under the same rules as SearchSuccess.
type SearchError struct {
	Namespace string
	Query     search.Query
	BaseQuery *search.BaseQuery
	AuthorID  int64
	Err       string
}

func (SearchError) Type() string { return TypeSearchError }

type ReferencesRequest struct {
	RecordID int64
	Query    search.Query
}

func (ReferencesRequest) Type() string { return TypeReferencesRequest }

type ReferencesSuccess struct {
	RecordID   int64
	Query      search.Query
	References []repository.Reference
	Total      int
}

func (ReferencesSuccess) Type() string { return TypeReferencesSuccess }

type ReferencesError struct {
	RecordID int64
	Query    search.Query
	Err      string
}

func (ReferencesError) Type() string { return TypeReferencesError }

type HighlightRequest struct {
	From, To int64
	IDs      []int64
}

func (HighlightRequest) Type() string { return TypeHighlightRequest }

type HighlightSuccess struct {
	From, To int64
	IDs      []int64
	Added    int
}

func (HighlightSuccess) Type() string { return TypeHighlightSuccess }

type HighlightError struct{ Err string }

func (HighlightError) Type() string { return TypeHighlightError }

type UserUpdate struct{ User UserState }

func (UserUpdate) Type() string { return TypeUserUpdate }
