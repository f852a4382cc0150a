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

// ReferenceListProps is the plain input of ReferenceList. Query is a
// plain map so the list never depends on search.Query.
type ReferenceListProps struct {
	RecordID      int64
	Loading       bool
	References    []repository.Reference
	Error         string
	Total         int
	Query         map[string]string
	BaseQuery     *search.BaseQuery
	OnQueryChange func(query map[string]string)
}

// ReferenceListContainer selects the reference list of recordID and
// converts the stored query to a plain map before handing it over.
func ReferenceListContainer(st store.State, d store.Dispatcher, c actions.Creators, recordID int64) ReferenceListProps {
	ns := st.Search.Namespace(search.LiteratureReferencesNS)
	lit := st.Literature
	props := ReferenceListProps{
		RecordID:   recordID,
		Loading:    lit.LoadingReferences,
		References: lit.References,
		Error:      lit.ErrorReferences,
		Total:      lit.TotalReferences,
		Query:      ns.Query.ToMap(),
		BaseQuery:  ns.BaseQuery,
		OnQueryChange: func(query map[string]string) {
			d.Dispatch(c.FetchLiteratureReferences(recordID, search.QueryFromMap(query)))
		},
	}
	if lit.ReferencesRecordID != recordID {
		props.References = nil
		props.Total = 0
		props.Error = ""
	}
	return props
}

func (p ReferenceListProps) page() int {
	if n, err := strconv.Atoi(p.Query[search.KeyPage]); err == nil && n > 0 {
		return n
	}
	return 1
}

func (p ReferenceListProps) size() int {
	if n, err := strconv.Atoi(p.Query[search.KeySize]); err == nil && n > 0 {
		return n
	}
	return search.DefaultPageSize
}

// Pages is the number of pages Total spans, at least 1.
func (p ReferenceListProps) Pages() int {
	if p.Total <= 0 {
		return 1
	}
	return (p.Total + p.size() - 1) / p.size()
}

// GoToPage asks for page n when it is in range.
func (p ReferenceListProps) GoToPage(n int) bool {
	if n < 1 || n > p.Pages() || n == p.page() || p.OnQueryChange == nil {
		return false
	}
	p.OnQueryChange(map[string]string{search.KeyPage: strconv.Itoa(n)})
	return true
}

// Filter asks for references whose title contains text, from page 1.
func (p ReferenceListProps) Filter(text string) {
	if p.OnQueryChange != nil {
		p.OnQueryChange(map[string]string{search.KeyText: text, search.KeyPage: "1"})
	}
}

func (p ReferenceListProps) Render() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("References (%d)", p.Total)))
	b.WriteString("\n")
	switch {
	case p.Error != "":
		b.WriteString(errorStyle.Render("error: " + p.Error))
		return b.String()
	case p.Loading && len(p.References) == 0:
		b.WriteString(mutedStyle.Render("loading…"))
		return b.String()
	case len(p.References) == 0:
		b.WriteString(mutedStyle.Render("No references"))
		return b.String()
	}
	for _, ref := range p.References {
		title := ref.RawTitle
		if ref.Record != nil {
			title = ref.Record.Title
		}
		b.WriteString(fmt.Sprintf("%3d. %s\n", ref.Position+1, recordTitle.Render(title)))
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("page %d/%d", p.page(), p.Pages())))
	return b.String()
}
