package views

import (
	"strings"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/store"
)

// Item is one rendered wrapper of a list, keyed by the record it shows.
type Item struct {
	Key  int64
	Body string
}

// AuthorHighlights renders an author's highlighted records through a
// caller-supplied RenderItem, one wrapper per result in input order.
type AuthorHighlights struct {
	Results    []repository.Record
	RenderItem func(repository.Record) string
}

// Items builds the wrappers. RenderItem is required.
func (h AuthorHighlights) Items() []Item {
	if h.RenderItem == nil {
		panic("views: AuthorHighlights.RenderItem is required")
	}
	items := make([]Item, 0, len(h.Results))
	for _, r := range h.Results {
		items = append(items, Item{Key: r.ID, Body: h.RenderItem(r)})
	}
	return items
}

func (h AuthorHighlights) Render() string {
	items := h.Items()
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, wrapperStyle.Render(it.Body))
	}
	return strings.Join(parts, "\n")
}

// AuthorHighlightsProps is AuthorHighlights bound to the store.
type AuthorHighlightsProps struct {
	AuthorHighlights
	Loading          bool
	Error            string
	OnHighlightsLoad func(authorID int64)
}

// AuthorHighlightsContainer reads the results of namespace only.
func AuthorHighlightsContainer(st store.State, d store.Dispatcher, c actions.Creators, namespace string, renderItem func(repository.Record) string) AuthorHighlightsProps {
	ns := st.Search.Namespace(namespace)
	return AuthorHighlightsProps{
		AuthorHighlights: AuthorHighlights{Results: ns.Results, RenderItem: renderItem},
		Loading:          ns.Loading,
		Error:            ns.Error,
		OnHighlightsLoad: func(authorID int64) {
			d.Dispatch(c.GetHighlightedRecords(authorID))
		},
	}
}
