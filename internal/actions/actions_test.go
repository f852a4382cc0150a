package actions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/store"
	"github.com/jask/authorpubs/internal/store/storetest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackend struct {
	mu          sync.Mutex
	authors     map[int64]repository.Author
	highlighted map[int64][]repository.Record
	records     []repository.Record
	refs        []repository.Reference
	err         error

	highlightCalls []Assignment
	highlightIDs   [][]int64
	searchBases    []*search.BaseQuery
	refQueries     []string
}

func (f *fakeBackend) Author(_ context.Context, id int64) (repository.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return repository.Author{}, errors.New("author not found")
	}
	return a, nil
}

func (f *fakeBackend) SearchLiterature(_ context.Context, base *search.BaseQuery, q search.Query) ([]repository.Record, int, error) {
	f.mu.Lock()
	f.searchBases = append(f.searchBases, base)
	f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.records, len(f.records), nil
}

func (f *fakeBackend) ReferencesOf(_ context.Context, _ int64, q search.Query) ([]repository.Reference, int, error) {
	f.mu.Lock()
	f.refQueries = append(f.refQueries, q.String())
	f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.refs, len(f.refs), nil
}

func (f *fakeBackend) Highlighted(_ context.Context, authorID int64) ([]repository.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.highlighted[authorID], nil
}

func (f *fakeBackend) Highlight(_ context.Context, from, to int64, ids []int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.highlightCalls = append(f.highlightCalls, Assignment{From: from, To: to})
	f.highlightIDs = append(f.highlightIDs, ids)
	if f.highlighted == nil {
		f.highlighted = map[int64][]repository.Record{}
	}
	for _, id := range ids {
		f.highlighted[to] = append(f.highlighted[to], repository.Record{ID: id})
	}
	return len(ids), nil
}

func newFake() *fakeBackend {
	return &fakeBackend{
		authors: map[int64]repository.Author{
			1: {ID: 1, FullName: "Ellis, John", FacetAuthorName: "1_John Ellis"},
		},
		highlighted: map[int64][]repository.Record{1: {{ID: 103}}},
		records:     []repository.Record{{ID: 106}, {ID: 104}},
		refs:        []repository.Reference{{Position: 0, RawTitle: "primer"}},
	}
}

func TestSetPublicationSelectionIsPlain(t *testing.T) {
	rec := storetest.NewRecorder(store.State{})
	rec.Dispatch(SetPublicationSelection([]int64{1}, true))
	rec.Dispatch(ClearPublicationSelection())

	want := []store.Action{
		store.SetPublicationSelection{IDs: []int64{1}, Selected: true},
		store.ClearPublicationSelection{},
	}
	require.Equal(t, want, rec.Actions())
}

func TestCreatorsRecordTheirArguments(t *testing.T) {
	c := Creators{Backend: newFake()}
	rec := storetest.NewRecorder(store.State{})
	rec.Dispatch(c.GetHighlightedRecords(7))
	rec.Dispatch(c.AddHighlightedRecords(Assignment{From: 7, To: 7}))

	want := []store.Action{
		store.Thunk{Name: NameGetHighlightedRecords, Args: []interface{}{int64(7)}},
		store.Thunk{Name: NameAddHighlightedRecords, Args: []interface{}{Assignment{From: 7, To: 7}}},
	}
	require.Empty(t, cmp.Diff(want, rec.Actions(), cmpopts.IgnoreFields(store.Thunk{}, "Run")))
}

func TestFetchAuthorLoadsProfileAndHighlights(t *testing.T) {
	c := Creators{Backend: newFake()}
	st := store.New(store.Initial(store.UserState{}, 10))
	defer st.Close()

	st.Dispatch(c.FetchAuthor(1))
	st.Wait()

	s := st.GetState()
	require.NotNil(t, s.Authors.Data)
	require.Equal(t, "1_John Ellis", s.Authors.Data.FacetAuthorName)
	hl := s.Search.Namespace(search.AuthorHighlightsNS)
	require.False(t, hl.Loading)
	require.Equal(t, int64(103), hl.Results[0].ID)
}

func TestFetchAuthorError(t *testing.T) {
	c := Creators{Backend: newFake()}
	st := store.New(store.Initial(store.UserState{}, 10))
	defer st.Close()

	st.Dispatch(c.FetchAuthor(99))
	st.Wait()

	s := st.GetState()
	require.Nil(t, s.Authors.Data)
	require.Equal(t, "author not found", s.Authors.Error)
}

func TestAddHighlightedRecordsHighlightsSelection(t *testing.T) {
	fake := newFake()
	c := Creators{Backend: fake}
	st := store.New(store.Initial(store.UserState{}, 10))
	defer st.Close()

	st.Dispatch(c.FetchAuthor(1))
	st.Wait()
	st.Dispatch(SetPublicationSelection([]int64{104, 106}, true))
	st.Dispatch(c.AddHighlightedRecords(Assignment{From: 1, To: 1}))
	st.Wait()

	require.Equal(t, []Assignment{{From: 1, To: 1}}, fake.highlightCalls)
	require.Equal(t, [][]int64{{104, 106}}, fake.highlightIDs)

	s := st.GetState()
	require.Zero(t, s.Authors.PublicationSelection.Len())
	require.False(t, s.Literature.Highlighting)
	require.Len(t, s.Search.Namespace(search.AuthorHighlightsNS).Results, 3)
}

func TestAddHighlightedRecordsWithEmptySelection(t *testing.T) {
	fake := newFake()
	st := store.New(store.Initial(store.UserState{}, 10))
	defer st.Close()

	st.Dispatch(Creators{Backend: fake}.AddHighlightedRecords(Assignment{From: 1, To: 1}))
	st.Wait()

	require.Empty(t, fake.highlightCalls)
	require.Equal(t, "no records selected", st.GetState().Literature.ErrorHighlighting)
}

func TestAddHighlightedRecordsBackendError(t *testing.T) {
	fake := newFake()
	fake.err = errors.New("db locked")
	st := store.New(store.Initial(store.UserState{}, 10))
	defer st.Close()

	st.Dispatch(SetPublicationSelection([]int64{5}, true))
	st.Dispatch(Creators{Backend: fake}.AddHighlightedRecords(Assignment{From: 1, To: 1}))
	st.Wait()

	s := st.GetState()
	require.Equal(t, "db locked", s.Literature.ErrorHighlighting)
	require.True(t, s.Authors.PublicationSelection.Has(5), "selection kept for retry")
}

func TestFetchLiteratureReferencesMergesQuery(t *testing.T) {
	fake := newFake()
	c := Creators{Backend: fake}
	st := store.New(store.Initial(store.UserState{}, 25))
	defer st.Close()

	st.Dispatch(c.FetchLiteratureReferences(104, search.NewQuery(search.KeyPage, "2")))
	st.Wait()

	require.Equal(t, []string{"page=2&size=25"}, fake.refQueries)
	s := st.GetState()
	require.Equal(t, int64(104), s.Literature.ReferencesRecordID)
	require.Equal(t, 1, s.Literature.TotalReferences)
	require.Equal(t, "page=2&size=25", s.Search.Namespace(search.LiteratureReferencesNS).Query.String())
}

func TestFetchLiteratureReferencesError(t *testing.T) {
	fake := newFake()
	fake.err = errors.New("timeout")
	st := store.New(store.Initial(store.UserState{}, 10))
	defer st.Close()

	st.Dispatch(Creators{Backend: fake}.FetchLiteratureReferences(104, search.Query{}))
	st.Wait()

	s := st.GetState()
	require.False(t, s.Literature.LoadingReferences)
	require.Equal(t, "timeout", s.Literature.ErrorReferences)
}

func TestSearchBaseQueryScopesNamespace(t *testing.T) {
	fake := newFake()
	c := Creators{Backend: fake}
	st := store.New(store.Initial(store.UserState{}, 10))
	defer st.Close()

	base := &search.BaseQuery{Author: []string{"1_John Ellis"}}
	aggs := &search.AggregationsQuery{AuthorRecid: "1_John Ellis"}
	st.Dispatch(c.SearchBaseQuery(search.AuthorPublicationsNS, base, aggs))
	st.Wait()
	st.Dispatch(c.SearchQuery(search.AuthorPublicationsNS, search.NewQuery(search.KeySort, "mostcited")))
	st.Wait()

	require.Len(t, fake.searchBases, 2)
	require.Same(t, base, fake.searchBases[0])
	require.Same(t, base, fake.searchBases[1])

	ns := st.GetState().Search.Namespace(search.AuthorPublicationsNS)
	require.Same(t, base, ns.BaseQuery)
	require.Same(t, aggs, ns.BaseAggregationsQuery)
	require.Equal(t, "page=1&size=10&sort=mostcited", ns.Query.String())
	require.Equal(t, 2, ns.Total)
	require.Empty(t, st.GetState().Search.Namespace(search.AuthorHighlightsNS).Results)
}

// gatedBackend holds Highlighted for one author until gate is closed.
type gatedBackend struct {
	*fakeBackend
	author  int64
	started chan struct{}
	gate    chan struct{}
}

func (g *gatedBackend) Highlighted(ctx context.Context, authorID int64) ([]repository.Record, error) {
	if authorID == g.author {
		close(g.started)
		<-g.gate
	}
	return g.fakeBackend.Highlighted(ctx, authorID)
}

func TestFetchAuthorIgnoresLateHighlightsOfPreviousAuthor(t *testing.T) {
	fake := newFake()
	fake.authors[2] = repository.Author{ID: 2, FullName: "Witten, Edward", FacetAuthorName: "2_Edward Witten"}
	fake.highlighted = map[int64][]repository.Record{
		1: {{ID: 901, Title: "first author"}},
		2: {{ID: 902, Title: "second author"}},
	}
	backend := &gatedBackend{fakeBackend: fake, author: 1, started: make(chan struct{}), gate: make(chan struct{})}
	c := Creators{Backend: backend}
	st := store.New(store.Initial(store.UserState{}, 10), store.WithMaxInflight(4))
	defer st.Close()

	st.Dispatch(c.FetchAuthor(1))
	<-backend.started

	st.Dispatch(c.FetchAuthor(2))
	require.Eventually(t, func() bool {
		hl := st.GetState().Search.Namespace(search.AuthorHighlightsNS)
		return len(hl.Results) == 1 && hl.Results[0].ID == 902
	}, time.Second, 5*time.Millisecond)

	close(backend.gate)
	st.Wait()

	s := st.GetState()
	require.Equal(t, int64(2), s.Authors.Data.ID)
	hl := s.Search.Namespace(search.AuthorHighlightsNS)
	require.Equal(t, []repository.Record{{ID: 902, Title: "second author"}}, hl.Results)
	require.False(t, hl.Loading)
}
