package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/store"
)

// LiteratureSearchContainer binds a namespaced, paged literature list to
// the store. It remembers the base query it last searched with and
// searches again whenever Connect sees a different pointer.
type LiteratureSearchContainer struct {
	Namespace      string
	NoResultsTitle string
	Embedded       bool

	lastBase *search.BaseQuery
}

// LiteratureSearch is the render-ready list.
type LiteratureSearch struct {
	Namespace      string
	NoResultsTitle string
	Embedded       bool
	Query          search.Query
	Results        []repository.Record
	Total          int
	Loading        bool
	Error          string
	OnQueryChange  func(search.Query)
}

// Connect projects the namespace and, when base differs from the pointer
// seen last time, dispatches a rescoped search.
func (l *LiteratureSearchContainer) Connect(st store.State, d store.Dispatcher, c actions.Creators, base *search.BaseQuery, aggs *search.AggregationsQuery) LiteratureSearch {
	if base != l.lastBase {
		l.lastBase = base
		d.Dispatch(c.SearchBaseQuery(l.Namespace, base, aggs))
	}
	ns := st.Search.Namespace(l.Namespace)
	namespace := l.Namespace
	return LiteratureSearch{
		Namespace:      namespace,
		NoResultsTitle: l.NoResultsTitle,
		Embedded:       l.Embedded,
		Query:          ns.Query,
		Results:        ns.Results,
		Total:          ns.Total,
		Loading:        ns.Loading,
		Error:          ns.Error,
		OnQueryChange: func(q search.Query) {
			d.Dispatch(c.SearchQuery(namespace, q))
		},
	}
}

// Pages is the number of pages Total spans, at least 1.
func (s LiteratureSearch) Pages() int {
	size := s.Query.Size()
	if s.Total <= 0 {
		return 1
	}
	return (s.Total + size - 1) / size
}

// NextPage requests the following page, if any, and reports whether it did.
func (s LiteratureSearch) NextPage() bool {
	if s.Query.Page() >= s.Pages() || s.OnQueryChange == nil {
		return false
	}
	s.OnQueryChange(search.NewQuery(search.KeyPage, strconv.Itoa(s.Query.Page()+1)))
	return true
}

// PrevPage requests the previous page, if any, and reports whether it did.
func (s LiteratureSearch) PrevPage() bool {
	if s.Query.Page() <= 1 || s.OnQueryChange == nil {
		return false
	}
	s.OnQueryChange(search.NewQuery(search.KeyPage, strconv.Itoa(s.Query.Page()-1)))
	return true
}

// Render draws the header, rows and pager. rows are pre-rendered so the
// caller decides what each row shows.
func (s LiteratureSearch) Render(rows []string) string {
	var b strings.Builder
	switch {
	case s.Error != "":
		b.WriteString(errorStyle.Render("error: " + s.Error))
		return b.String()
	case s.Loading && len(s.Results) == 0:
		b.WriteString(mutedStyle.Render("loading…"))
		return b.String()
	case s.Total == 0:
		b.WriteString(mutedStyle.Render(s.NoResultsTitle))
		return b.String()
	}

	if !s.Embedded {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%d results", s.Total)))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	pager := fmt.Sprintf("page %d/%d", s.Query.Page(), s.Pages())
	if q := s.Query.Text(); q != "" {
		pager += fmt.Sprintf(" · filter %q", q)
	}
	if s.Query.Sort() != "" {
		pager += " · sort " + s.Query.Sort()
	}
	b.WriteString(infoStyle.Render(pager))
	return b.String()
}
