package views

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/route"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/store"
	"github.com/jask/authorpubs/internal/store/storetest"
)

var ignoreRun = cmpopts.IgnoreFields(store.Thunk{}, "Run")

// creators never run in these tests: the recorder keeps thunks unexecuted.
var creators = actions.Creators{}

func stateWith(roles []string, selected ...int64) store.State {
	st := store.Initial(store.UserState{Roles: roles}, 10)
	st.Authors.PublicationSelection = store.NewSelection(selected...)
	return st
}

func TestPublicationSelectDispatchesOnChange(t *testing.T) {
	rec := storetest.NewRecorder(stateWith(nil))
	sel := PublicationSelectContainer(rec.GetState(), rec, 1)

	sel.OnChange(true)

	require.Equal(t, []store.Action{store.SetPublicationSelection{IDs: []int64{1}, Selected: true}}, rec.Actions())
}

func TestPublicationSelectToggleReflectsMembership(t *testing.T) {
	for _, tc := range []struct {
		name     string
		selected []int64
		record   int64
	}{
		{"member", []int64{1, 2}, 2},
		{"non member", []int64{1}, 3},
		{"empty set", nil, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := storetest.NewRecorder(stateWith(nil, tc.selected...))
			sel := PublicationSelectContainer(rec.GetState(), rec, tc.record)
			wasMember := rec.GetState().Authors.PublicationSelection.Has(tc.record)
			require.Equal(t, wasMember, sel.Checked)

			sel.Toggle()

			require.Equal(t, []store.Action{
				store.SetPublicationSelection{IDs: []int64{tc.record}, Selected: !wasMember},
			}, rec.Actions())
		})
	}
}

func TestHighlightsDisabledWithoutSelection(t *testing.T) {
	rec := storetest.NewRecorder(stateWith(nil))
	h := HighlightsContainer(rec.GetState(), rec, creators, route.Route{AuthorID: 1010819})

	require.True(t, h.Disabled)
	require.Equal(t, "Please select the papers you want to highlight.", h.Tooltip())
	require.False(t, h.SelfAssign())
	require.Empty(t, rec.Actions())

	out := ansi.Strip(h.Render(true))
	require.Contains(t, out, HighlightTooltip)
	require.NotContains(t, out, "Highlight this paper")
}

func TestHighlightsSelfAssignAlwaysTargetsCurrentAuthor(t *testing.T) {
	for _, selected := range [][]int64{nil, {1}, {1, 2, 3}} {
		rec := storetest.NewRecorder(stateWith(nil, selected...))
		h := HighlightsContainer(rec.GetState(), rec, creators, route.Route{AuthorID: 42})

		var got []actions.Assignment
		h.OnAssign = func(a actions.Assignment) { got = append(got, a) }
		h.Disabled = false
		require.True(t, h.SelfAssign())
		require.Equal(t, []actions.Assignment{{From: 42, To: 42}}, got)
	}
}

func TestHighlightsContainerDispatchesAddHighlightedRecords(t *testing.T) {
	rec := storetest.NewRecorder(stateWith(nil, 1))
	h := HighlightsContainer(rec.GetState(), rec, creators, route.Route{AuthorID: 7})

	require.False(t, h.Disabled)
	require.Empty(t, h.Tooltip())
	require.True(t, h.SelfAssign())

	want := []store.Action{store.Thunk{
		Name: actions.NameAddHighlightedRecords,
		Args: []interface{}{actions.Assignment{From: 7, To: 7}},
	}}
	require.Empty(t, cmp.Diff(want, rec.Actions(), ignoreRun))
	require.Contains(t, ansi.Strip(h.Render(true)), "Highlight this paper")
}

func TestHighlightTriggerFollowsSelection(t *testing.T) {
	st := store.New(store.Initial(store.UserState{}, 10))
	defer st.Close()
	r := route.Route{AuthorID: 1}

	h := HighlightsContainer(st.GetState(), st, creators, r)
	require.True(t, h.Disabled)
	require.Equal(t, HighlightTooltip, h.Tooltip())

	st.Dispatch(actions.SetPublicationSelection([]int64{1}, true))
	require.True(t, st.GetState().Authors.PublicationSelection.Has(1))

	h = HighlightsContainer(st.GetState(), st, creators, r)
	require.False(t, h.Disabled)
	require.Empty(t, h.Tooltip())
}

func TestAuthorHighlightsItems(t *testing.T) {
	render := func(r repository.Record) string { return r.Title }

	require.Empty(t, AuthorHighlights{RenderItem: render}.Items())
	require.Empty(t, AuthorHighlights{RenderItem: render}.Render())

	results := []repository.Record{{ID: 30, Title: "c"}, {ID: 10, Title: "a"}, {ID: 20, Title: "b"}}
	items := AuthorHighlights{Results: results, RenderItem: render}.Items()
	require.Equal(t, []Item{{Key: 30, Body: "c"}, {Key: 10, Body: "a"}, {Key: 20, Body: "b"}}, items)
}

func TestAuthorHighlightsRequiresRenderItem(t *testing.T) {
	require.Panics(t, func() { AuthorHighlights{}.Items() })
}

func TestAuthorHighlightsContainerNamespaceIsolation(t *testing.T) {
	st := store.Initial(store.UserState{}, 10)
	st = store.Reduce(st, store.SearchSuccess{
		Namespace: search.AuthorHighlightsNS,
		Query:     st.Search.Namespace(search.AuthorHighlightsNS).Query,
		Results:   []repository.Record{{ID: 1}},
		Total:     1,
	})
	rec := storetest.NewRecorder(st)
	render := func(repository.Record) string { return "" }

	hl := AuthorHighlightsContainer(st, rec, creators, search.AuthorHighlightsNS, render)
	pubs := AuthorHighlightsContainer(st, rec, creators, search.AuthorPublicationsNS, render)
	require.Len(t, hl.Results, 1)
	require.Empty(t, pubs.Results)

	hl.OnHighlightsLoad(5)
	want := []store.Action{store.Thunk{Name: actions.NameGetHighlightedRecords, Args: []interface{}{int64(5)}}}
	require.Empty(t, cmp.Diff(want, rec.Actions(), ignoreRun))
}

func TestAuthorPublicationsContainerAssignView(t *testing.T) {
	for _, tc := range []struct {
		roles []string
		want  bool
	}{
		{nil, false},
		{[]string{}, false},
		{[]string{"user"}, false},
		{[]string{"superuser"}, true},
		{[]string{"cataloger"}, true},
		{[]string{"user", "cataloger"}, true},
	} {
		require.Equal(t, tc.want, AuthorPublicationsContainer(stateWith(tc.roles)).AssignView, "%v", tc.roles)
	}
}

func authorState(roles []string, a repository.Author) store.State {
	st := stateWith(roles)
	return store.Reduce(st, store.AuthorSuccess{Author: a})
}

func TestAuthorPublicationsMemoizesBaseQueries(t *testing.T) {
	ellis := repository.Author{ID: 1, FullName: "Ellis, John", FacetAuthorName: "1_John Ellis"}
	rec := storetest.NewRecorder(authorState(nil, ellis))
	page := NewAuthorPublications()
	r := route.Route{AuthorID: 1}

	v1 := page.Build(rec.GetState(), rec, creators, r, -1)
	v2 := page.Build(rec.GetState(), rec, creators, r, -1)
	require.True(t, v1.Ready)
	require.Same(t, v1.BaseQuery, v2.BaseQuery)
	require.Same(t, v1.BaseAggregationsQuery, v2.BaseAggregationsQuery)
	require.Equal(t, []string{"1_John Ellis"}, v1.BaseQuery.Author)
	require.Equal(t, "1_John Ellis", v1.BaseAggregationsQuery.AuthorRecid)
	require.Equal(t, []string{actions.NameSearchBaseQuery}, rec.Types(), "one search for one facet")

	witten := repository.Author{ID: 2, FullName: "Witten, Edward", FacetAuthorName: "2_Edward Witten"}
	rec.State = authorState(nil, witten)
	v3 := page.Build(rec.GetState(), rec, creators, route.Route{AuthorID: 2}, -1)
	require.NotSame(t, v1.BaseQuery, v3.BaseQuery)
	require.NotSame(t, v1.BaseAggregationsQuery, v3.BaseAggregationsQuery)
	require.Equal(t, []string{actions.NameSearchBaseQuery, actions.NameSearchBaseQuery}, rec.Types())
}

func TestAuthorPublicationsNotReadyUntilRouteAuthorLoads(t *testing.T) {
	rec := storetest.NewRecorder(authorState(nil, repository.Author{ID: 1, FacetAuthorName: "1_A"}))
	v := NewAuthorPublications().Build(rec.GetState(), rec, creators, route.Route{AuthorID: 2}, -1)

	require.False(t, v.Ready)
	require.Empty(t, rec.Actions())
	require.Contains(t, ansi.Strip(v.Render(false)), "loading author")
}

func publicationsState(roles []string, selected ...int64) store.State {
	st := authorState(roles, repository.Author{ID: 1, FullName: "Ellis, John", FacetAuthorName: "1_John Ellis"})
	q := st.Search.Namespace(search.AuthorPublicationsNS).Query
	st = store.Reduce(st, store.SearchSuccess{
		Namespace: search.AuthorPublicationsNS,
		Query:     q,
		Results: []repository.Record{
			{ID: 106, Title: "Cosmological constraints on supersymmetric dark matter", Authors: []string{"Ellis, John"}, CitationCount: 210},
			{ID: 104, Title: "Holographic dark matter and supersymmetry", Authors: []string{"Ellis, John", "Maldacena, Juan Martin"}, CitationCount: 1},
		},
		Total: 2,
	})
	st.Authors.PublicationSelection = store.NewSelection(selected...)
	return st
}

func TestAuthorPublicationsAssignViewThreadsToRows(t *testing.T) {
	rec := storetest.NewRecorder(publicationsState([]string{"cataloger"}, 104))
	v := NewAuthorPublications().Build(rec.GetState(), rec, creators, route.Route{AuthorID: 1}, 0)

	require.True(t, v.Props.AssignView)
	require.NotNil(t, v.Drawer)
	require.Equal(t, 1, v.Drawer.SelectedCount)
	require.False(t, v.Drawer.Highlights.Disabled)
	require.Len(t, v.Rows, 2)
	for _, row := range v.Rows {
		require.NotNil(t, row.Select)
	}
	require.False(t, v.Rows[0].Select.Checked)
	require.True(t, v.Rows[1].Select.Checked)
	require.True(t, v.Rows[0].Focused)

	out := ansi.Strip(v.Render(true))
	require.Contains(t, out, "Ellis, John")
	require.Contains(t, out, "Research works (2)")
	require.Contains(t, out, "[x] Holographic dark matter and supersymmetry")
	require.Contains(t, out, "1 citation")
	require.Contains(t, out, "1 selected")
	require.Contains(t, out, "Highlight this paper")
}

func TestAuthorPublicationsWithoutAssignView(t *testing.T) {
	rec := storetest.NewRecorder(publicationsState(nil))
	v := NewAuthorPublications().Build(rec.GetState(), rec, creators, route.Route{AuthorID: 1}, -1)

	require.False(t, v.Props.AssignView)
	require.Nil(t, v.Drawer)
	for _, row := range v.Rows {
		require.Nil(t, row.Select)
	}
	out := ansi.Strip(v.Render(true))
	require.NotContains(t, out, "[ ]")
	require.NotContains(t, out, "Assign")
	require.Contains(t, out, "No highlighted papers")
}

func TestAuthorPublicationsNoResults(t *testing.T) {
	rec := storetest.NewRecorder(authorState(nil, repository.Author{ID: 9, FullName: "Nobody", FacetAuthorName: "9_Nobody"}))
	v := NewAuthorPublications().Build(rec.GetState(), rec, creators, route.Route{AuthorID: 9}, -1)
	require.Contains(t, ansi.Strip(v.Render(false)), NoResultsTitle)
}

func TestLiteratureSearchPaging(t *testing.T) {
	rec := storetest.NewRecorder(store.State{})
	s := LiteratureSearch{
		Namespace: search.AuthorPublicationsNS,
		Query:     search.NewQuery(search.KeySize, "10"),
		Total:     25,
		OnQueryChange: func(q search.Query) {
			rec.Dispatch(creators.SearchQuery(search.AuthorPublicationsNS, q))
		},
	}
	require.Equal(t, 3, s.Pages())
	require.False(t, s.PrevPage())
	require.True(t, s.NextPage())

	want := []store.Action{store.Thunk{Name: actions.NameSearchQuery, Args: []interface{}{search.AuthorPublicationsNS, "page=2"}}}
	require.Empty(t, cmp.Diff(want, rec.Actions(), ignoreRun))

	s.Query = s.Query.With(search.KeyPage, "3")
	require.False(t, s.NextPage())
	require.True(t, s.PrevPage())
}

func TestReferenceListContainerConvertsQuery(t *testing.T) {
	st := store.Initial(store.UserState{}, 10)
	q := search.NewQuery(search.KeySize, "10", search.KeyPage, "2")
	st = store.Reduce(st, store.ReferencesRequest{RecordID: 104, Query: q})
	st = store.Reduce(st, store.ReferencesSuccess{
		RecordID: 104,
		Query:    q,
		References: []repository.Reference{
			{Position: 10, Record: &repository.Record{ID: 101, Title: "The Large N limit"}},
			{Position: 11, RawTitle: "Unpublished lecture notes"},
		},
		Total: 12,
	})
	rec := storetest.NewRecorder(st)

	props := ReferenceListContainer(st, rec, creators, 104)
	require.Equal(t, map[string]string{"size": "10", "page": "2"}, props.Query)
	require.Equal(t, 12, props.Total)
	require.Len(t, props.References, 2)
	require.Equal(t, 2, props.Pages())

	out := ansi.Strip(props.Render())
	require.Contains(t, out, "References (12)")
	require.Contains(t, out, " 11. The Large N limit")
	require.Contains(t, out, " 12. Unpublished lecture notes")
	require.Contains(t, out, "page 2/2")

	props.Query["page"] = "9"
	require.Equal(t, "page=2&size=10", rec.GetState().Search.Namespace(search.LiteratureReferencesNS).Query.String())

	props.OnQueryChange(map[string]string{"page": "1"})
	want := []store.Action{store.Thunk{Name: actions.NameFetchLiteratureReferences, Args: []interface{}{int64(104), "page=1"}}}
	require.Empty(t, cmp.Diff(want, rec.Actions(), ignoreRun))
}

func TestReferenceListContainerOtherRecord(t *testing.T) {
	st := store.Initial(store.UserState{}, 10)
	st = store.Reduce(st, store.ReferencesRequest{RecordID: 104, Query: search.Query{}})
	st = store.Reduce(st, store.ReferencesError{RecordID: 104, Query: search.Query{}, Err: "boom"})

	own := ReferenceListContainer(st, storetest.NewRecorder(st), creators, 104)
	require.Equal(t, "boom", own.Error)
	require.Contains(t, ansi.Strip(own.Render()), "error: boom")

	other := ReferenceListContainer(st, storetest.NewRecorder(st), creators, 105)
	require.Empty(t, other.Error)
	require.Contains(t, ansi.Strip(other.Render()), "No references")
}

func TestReferenceListPagingAndFilter(t *testing.T) {
	rec := storetest.NewRecorder(store.State{})
	var got []map[string]string
	props := ReferenceListProps{
		Query:         map[string]string{"size": "2"},
		Total:         5,
		OnQueryChange: func(q map[string]string) { got = append(got, q) },
	}
	require.Equal(t, 3, props.Pages())
	require.False(t, props.GoToPage(1), "already there")
	require.False(t, props.GoToPage(4))
	require.True(t, props.GoToPage(3))
	props.Filter("")
	require.Equal(t, []map[string]string{{"page": "3"}, {"q": "", "page": "1"}}, got)
	require.Empty(t, rec.Actions())
}

func TestLiteratureItemRender(t *testing.T) {
	year := 1998
	rec := repository.Record{
		Title:           "Anti-de Sitter space and holography",
		Authors:         []string{"A", "B", "C", "D"},
		PreprintDate:    strPtr("1998-02-20"),
		PublicationYear: &year,
		CitationCount:   11000,
	}
	out := ansi.Strip(LiteratureItem{Record: rec}.Render())
	require.Contains(t, out, "A; B; C et al.")
	require.Contains(t, out, "1998 · ")
	require.Contains(t, out, "11000 citations")
}

func strPtr(s string) *string { return &s }
