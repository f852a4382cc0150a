package views

import (
	"strings"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/route"
	"github.com/jask/authorpubs/internal/store"
)

// HighlightTooltip explains why the highlight trigger is disabled.
const HighlightTooltip = "Please select the papers you want to highlight."

const (
	highlightLabel    = "highlight"
	highlightSelfItem = "Highlight this paper"
)

// Highlights is the dropdown trigger offering "Highlight this paper" for
// the author whose profile is shown.
type Highlights struct {
	AuthorID int64
	Disabled bool
	OnAssign func(actions.Assignment)
}

// SelfAssign assigns the selection to the current author. It does
// nothing while the trigger is disabled and reports whether OnAssign ran.
func (h Highlights) SelfAssign() bool {
	if h.Disabled || h.OnAssign == nil {
		return false
	}
	h.OnAssign(actions.Assignment{From: h.AuthorID, To: h.AuthorID})
	return true
}

// Tooltip is the hover text: the explanation while disabled, empty otherwise.
func (h Highlights) Tooltip() string {
	if h.Disabled {
		return HighlightTooltip
	}
	return ""
}

// Render draws the trigger and, when open and enabled, its menu. A
// disabled trigger shows the tooltip in place of the menu.
func (h Highlights) Render(open bool) string {
	var b strings.Builder
	if h.Disabled {
		b.WriteString(disabledStyle.Render("[ " + highlightLabel + " ]"))
		b.WriteString("  ")
		b.WriteString(tooltipStyle.Render(h.Tooltip()))
		return b.String()
	}
	b.WriteString(buttonStyle.Render("[ " + highlightLabel + " ▾ ]"))
	if open {
		b.WriteString("\n  ")
		b.WriteString(cursorStyle.Render("› "))
		b.WriteString(highlightSelfItem)
	}
	return b.String()
}

// HighlightsContainer disables the trigger while nothing is selected and
// dispatches AddHighlightedRecords on assign. The author comes from the
// route being shown.
func HighlightsContainer(st store.State, d store.Dispatcher, c actions.Creators, r route.Route) Highlights {
	return Highlights{
		AuthorID: r.AuthorID,
		Disabled: st.Authors.PublicationSelection.Len() == 0,
		OnAssign: func(a actions.Assignment) {
			d.Dispatch(c.AddHighlightedRecords(a))
		},
	}
}
