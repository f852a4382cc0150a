package views

import (
	"fmt"
	"strings"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/auth"
	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/route"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/store"
)

// NoResultsTitle is shown when an author has no research works.
const NoResultsTitle = "0 Research works"

// AuthorPublicationsProps is what the page reads from the store.
type AuthorPublicationsProps struct {
	AuthorName      string
	AuthorFacetName string
	AssignView      bool
}

// AuthorPublicationsContainer projects the facet name of the author being
// shown and whether the user's roles grant the assign view.
func AuthorPublicationsContainer(st store.State) AuthorPublicationsProps {
	var p AuthorPublicationsProps
	if a := st.Authors.Data; a != nil {
		p.AuthorName = a.FullName
		p.AuthorFacetName = a.FacetAuthorName
	}
	p.AssignView = auth.CanAssign(st.User.Roles)
	return p
}

// AuthorPublications composes the highlights list, the publication list
// and, in the assign view, the assign drawer. It lives across renders:
// the base queries it derives from the facet name keep their identity
// until the facet changes, and the publication list searches again only
// when that identity changes.
type AuthorPublications struct {
	memo search.BaseQueryMemo
	list LiteratureSearchContainer
}

func NewAuthorPublications() *AuthorPublications {
	return &AuthorPublications{
		list: LiteratureSearchContainer{
			Namespace:      search.AuthorPublicationsNS,
			NoResultsTitle: NoResultsTitle,
			Embedded:       true,
		},
	}
}

// AuthorPublicationsView is one render of the page.
type AuthorPublicationsView struct {
	Props                 AuthorPublicationsProps
	Ready                 bool
	Loading               bool
	Error                 string
	BaseQuery             *search.BaseQuery
	BaseAggregationsQuery *search.AggregationsQuery
	Highlights            AuthorHighlightsProps
	Publications          LiteratureSearch
	Rows                  []LiteratureItem
	Drawer                *AssignDrawer
}

// Build projects st into a view. focus is the index of the focused
// publication row, or -1.
func (a *AuthorPublications) Build(st store.State, d store.Dispatcher, c actions.Creators, r route.Route, focus int) AuthorPublicationsView {
	props := AuthorPublicationsContainer(st)
	v := AuthorPublicationsView{
		Props:   props,
		Loading: st.Authors.Loading,
		Error:   st.Authors.Error,
	}
	if st.Authors.Data == nil || st.Authors.Data.ID != r.AuthorID {
		return v
	}
	v.Ready = true

	v.BaseQuery, v.BaseAggregationsQuery = a.memo.For(props.AuthorFacetName)
	v.Highlights = AuthorHighlightsContainer(st, d, c, search.AuthorHighlightsNS, func(rec repository.Record) string {
		return LiteratureItem{Record: rec}.Render()
	})
	v.Publications = a.list.Connect(st, d, c, v.BaseQuery, v.BaseAggregationsQuery)

	v.Rows = make([]LiteratureItem, 0, len(v.Publications.Results))
	for i, rec := range v.Publications.Results {
		v.Rows = append(v.Rows, publicationRow(st, d, rec, props.AssignView, i == focus))
	}

	if props.AssignView {
		drawer := AssignDrawerContainer(st, d, c, r)
		v.Drawer = &drawer
	}
	return v
}

// publicationRow builds one row; assignView decides whether it carries a
// selection checkbox.
func publicationRow(st store.State, d store.Dispatcher, rec repository.Record, assignView, focused bool) LiteratureItem {
	item := LiteratureItem{Record: rec, Focused: focused}
	if assignView {
		sel := PublicationSelectContainer(st, d, rec.ID)
		item.Select = &sel
	}
	return item
}

// Render draws the page. menuOpen opens the highlight menu in the drawer.
func (v AuthorPublicationsView) Render(menuOpen bool) string {
	switch {
	case v.Error != "":
		return errorStyle.Render("error: " + v.Error)
	case !v.Ready:
		return mutedStyle.Render("loading author…")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Props.AuthorName))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Highlights"))
	b.WriteString("\n")
	switch {
	case v.Highlights.Error != "":
		b.WriteString(errorStyle.Render("error: " + v.Highlights.Error))
	case len(v.Highlights.Results) == 0:
		b.WriteString(mutedStyle.Render("No highlighted papers"))
	default:
		b.WriteString(v.Highlights.Render())
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Research works (%d)", v.Publications.Total)))
	b.WriteString("\n")
	rows := make([]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, r.Render())
	}
	b.WriteString(v.Publications.Render(rows))

	if v.Drawer != nil {
		b.WriteString("\n\n")
		b.WriteString(v.Drawer.Render(menuOpen))
	}
	return b.String()
}
