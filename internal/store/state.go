package store

import (
	"sort"
	"strconv"

	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/search"
)

// State is the whole application state. Reduce never modifies a State in
// place; it returns a new value that shares untouched parts with the old
// one, so a snapshot handed to a view stays consistent.
type State struct {
	Authors    AuthorsState
	Literature LiteratureState
	Search     SearchState
	User       UserState
}

// AuthorsState holds the profile being shown and the user's selection.
type AuthorsState struct {
	Data                 *repository.Author
	Loading              bool
	Error                string
	PublicationSelection Selection
}

// LiteratureState holds the reference list of one record and the status
// of the last highlight request.
type LiteratureState struct {
	ReferencesRecordID int64
	References         []repository.Reference
	LoadingReferences  bool
	ErrorReferences    string
	TotalReferences    int

	Highlighting      bool
	ErrorHighlighting string
}

// SearchState keys list state by namespace.
type SearchState struct {
	Namespaces map[string]NamespaceState
}

// Namespace returns the state for ns, or the zero value when unknown.
func (s SearchState) Namespace(ns string) NamespaceState {
	return s.Namespaces[ns]
}

// NamespaceState is one list view's slice of the results cache.
type NamespaceState struct {
	Query                 search.Query
	BaseQuery             *search.BaseQuery
	BaseAggregationsQuery *search.AggregationsQuery
	Results               []repository.Record
	Total                 int
	Loading               bool
	Error                 string
}

// UserState describes the signed-in user.
type UserState struct {
	Email string
	Roles []string
}

// Initial returns the starting state with every known namespace present
// and sized to pageSize.
func Initial(user UserState, pageSize int) State {
	if pageSize <= 0 {
		pageSize = search.DefaultPageSize
	}
	size := search.NewQuery(search.KeySize, strconv.Itoa(pageSize))
	namespaces := make(map[string]NamespaceState, len(search.Namespaces()))
	for _, ns := range search.Namespaces() {
		namespaces[ns] = NamespaceState{Query: size}
	}
	return State{
		Search: SearchState{Namespaces: namespaces},
		User:   user,
	}
}

// Selection is an immutable set of record ids.
type Selection struct {
	ids map[int64]struct{}
}

// NewSelection returns a selection holding ids.
func NewSelection(ids ...int64) Selection {
	return Selection{}.With(ids, true)
}

func (s Selection) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s Selection) Len() int { return len(s.ids) }

// IDs returns the members in ascending order.
func (s Selection) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// With returns a copy of s with ids added (selected) or removed.
func (s Selection) With(ids []int64, selected bool) Selection {
	next := make(map[int64]struct{}, len(s.ids)+len(ids))
	for id := range s.ids {
		next[id] = struct{}{}
	}
	for _, id := range ids {
		if selected {
			next[id] = struct{}{}
		} else {
			delete(next, id)
		}
	}
	return Selection{ids: next}
}
