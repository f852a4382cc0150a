package store

import "github.com/jask/authorpubs/internal/search"

// Reduce is the application reducer. Unknown actions return s unchanged.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetPublicationSelection:
		s.Authors.PublicationSelection = s.Authors.PublicationSelection.With(act.IDs, act.Selected)
	case ClearPublicationSelection:
		s.Authors.PublicationSelection = Selection{}

	case AuthorRequest:
		s.Authors.Loading = true
		s.Authors.Error = ""
	case AuthorSuccess:
		author := act.Author
		if s.Authors.Data == nil || s.Authors.Data.ID != author.ID {
			s.Authors.PublicationSelection = Selection{}
			s.Search = resetResults(s.Search, search.AuthorHighlightsNS, search.AuthorPublicationsNS)
		}
		s.Authors.Data = &author
		s.Authors.Loading = false
	case AuthorError:
		s.Authors.Loading = false
		s.Authors.Error = act.Err

	case SearchQueryUpdate:
		s.Search = updateNamespace(s.Search, act.Namespace, func(ns NamespaceState) NamespaceState {
			ns.Query = act.Query
			ns.Loading = true
			ns.Error = ""
			return ns
		})
	case SearchBaseQueryUpdate:
		s.Search = updateNamespace(s.Search, act.Namespace, func(ns NamespaceState) NamespaceState {
			ns.BaseQuery = act.BaseQuery
			ns.BaseAggregationsQuery = act.BaseAggregationsQuery
			return ns
		})
	case SearchSuccess:
		if !s.currentSearch(act.Namespace, act.Query, act.BaseQuery, act.AuthorID) {
			return s
		}
		s.Search = updateNamespace(s.Search, act.Namespace, func(ns NamespaceState) NamespaceState {
			ns.Results = act.Results
			ns.Total = act.Total
			ns.Loading = false
			ns.Error = ""
			return ns
		})
	case SearchError:
		if !s.currentSearch(act.Namespace, act.Query, act.BaseQuery, act.AuthorID) {
			return s
		}
		s.Search = updateNamespace(s.Search, act.Namespace, func(ns NamespaceState) NamespaceState {
			ns.Loading = false
			ns.Error = act.Err
			return ns
		})

	case ReferencesRequest:
		if s.Literature.ReferencesRecordID != act.RecordID {
			s.Literature.References = nil
			s.Literature.TotalReferences = 0
		}
		s.Literature.ReferencesRecordID = act.RecordID
		s.Literature.LoadingReferences = true
		s.Literature.ErrorReferences = ""
		s.Search = updateNamespace(s.Search, search.LiteratureReferencesNS, func(ns NamespaceState) NamespaceState {
			ns.Query = act.Query
			ns.Loading = true
			ns.Error = ""
			return ns
		})
	case ReferencesSuccess:
		if !s.currentReferences(act.RecordID, act.Query) {
			return s
		}
		s.Literature.References = act.References
		s.Literature.TotalReferences = act.Total
		s.Literature.LoadingReferences = false
		s.Search = updateNamespace(s.Search, search.LiteratureReferencesNS, func(ns NamespaceState) NamespaceState {
			ns.Loading = false
			ns.Total = act.Total
			return ns
		})
	case ReferencesError:
		if !s.currentReferences(act.RecordID, act.Query) {
			return s
		}
		s.Literature.LoadingReferences = false
		s.Literature.ErrorReferences = act.Err
		s.Search = updateNamespace(s.Search, search.LiteratureReferencesNS, func(ns NamespaceState) NamespaceState {
			ns.Loading = false
			ns.Error = act.Err
			return ns
		})

	case HighlightRequest:
		s.Literature.Highlighting = true
		s.Literature.ErrorHighlighting = ""
	case HighlightSuccess:
		s.Literature.Highlighting = false
		s.Authors.PublicationSelection = s.Authors.PublicationSelection.With(act.IDs, false)
	case HighlightError:
		s.Literature.Highlighting = false
		s.Literature.ErrorHighlighting = act.Err

	case UserUpdate:
		s.User = act.User
	}
	return s
}

// currentSearch reports whether a search response still answers what the
// namespace shows.
func (s State) currentSearch(namespace string, q search.Query, base *search.BaseQuery, authorID int64) bool {
	ns := s.Search.Namespace(namespace)
	if !ns.Query.Equal(q) || ns.BaseQuery != base {
		return false
	}
	if authorID != 0 && (s.Authors.Data == nil || s.Authors.Data.ID != authorID) {
		return false
	}
	return true
}

func (s State) currentReferences(recordID int64, q search.Query) bool {
	return s.Literature.ReferencesRecordID == recordID &&
		s.Search.Namespace(search.LiteratureReferencesNS).Query.Equal(q)
}

// updateNamespace copies the namespace map so earlier snapshots keep
// their view of every namespace.
func updateNamespace(s SearchState, name string, fn func(NamespaceState) NamespaceState) SearchState {
	next := make(map[string]NamespaceState, len(s.Namespaces)+1)
	for k, v := range s.Namespaces {
		next[k] = v
	}
	next[name] = fn(next[name])
	return SearchState{Namespaces: next}
}

func resetResults(s SearchState, names ...string) SearchState {
	for _, name := range names {
		s = updateNamespace(s, name, func(ns NamespaceState) NamespaceState {
			ns.Results = nil
			ns.Total = 0
			ns.Error = ""
			return ns
		})
	}
	return s
}
