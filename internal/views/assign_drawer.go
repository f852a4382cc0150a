package views

import (
	"fmt"
	"strings"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/route"
	"github.com/jask/authorpubs/internal/store"
)

// AssignDrawer groups the bulk actions available in the assign view.
type AssignDrawer struct {
	SelectedCount int
	Busy          bool
	Error         string
	Highlights    Highlights
	OnClear       func()
}

func AssignDrawerContainer(st store.State, d store.Dispatcher, c actions.Creators, r route.Route) AssignDrawer {
	return AssignDrawer{
		SelectedCount: st.Authors.PublicationSelection.Len(),
		Busy:          st.Literature.Highlighting,
		Error:         st.Literature.ErrorHighlighting,
		Highlights:    HighlightsContainer(st, d, c, r),
		OnClear: func() {
			d.Dispatch(actions.ClearPublicationSelection())
		},
	}
}

func (a AssignDrawer) Render(menuOpen bool) string {
	lines := []string{
		titleStyle.Render("Assign"),
		fmt.Sprintf("%d selected", a.SelectedCount),
		a.Highlights.Render(menuOpen),
	}
	if a.Busy {
		lines = append(lines, mutedStyle.Render("highlighting…"))
	}
	if a.Error != "" {
		lines = append(lines, errorStyle.Render("error: "+a.Error))
	}
	return drawerStyle.Render(strings.Join(lines, "\n"))
}
