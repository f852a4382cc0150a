package views

import (
	"fmt"
	"strings"

	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/service"
)

const maxListedAuthors = 3

// LiteratureItem renders one record. Select is set only in the assign
// view, where each row carries its selection checkbox.
type LiteratureItem struct {
	Record  repository.Record
	Select  *PublicationSelect
	Focused bool
}

func (l LiteratureItem) Render() string {
	var head strings.Builder
	if l.Focused {
		head.WriteString(cursorStyle.Render("› "))
	} else {
		head.WriteString("  ")
	}
	if l.Select != nil {
		head.WriteString(l.Select.Render())
		head.WriteString(" ")
	}
	head.WriteString(recordTitle.Render(l.Record.Title))

	meta := []string{authorLine(l.Record.Authors)}
	if date := service.EarliestDate(l.Record); date != "" {
		meta = append(meta, date)
	}
	meta = append(meta, citeStyle.Render(citations(l.Record.CitationCount)))

	return head.String() + "\n    " + mutedStyle.Render(strings.Join(meta, " · "))
}

func authorLine(names []string) string {
	switch {
	case len(names) == 0:
		return "unknown authors"
	case len(names) > maxListedAuthors:
		return strings.Join(names[:maxListedAuthors], "; ") + " et al."
	default:
		return strings.Join(names, "; ")
	}
}

func citations(n int) string {
	if n == 1 {
		return "1 citation"
	}
	return fmt.Sprintf("%d citations", n)
}
