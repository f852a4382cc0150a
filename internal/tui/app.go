package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/logger"
	"github.com/jask/authorpubs/internal/route"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/store"
	"github.com/jask/authorpubs/internal/views"
)

const suggestLimit = 5

// Store is the part of *store.Store the app needs.
type Store interface {
	store.Dispatcher
	GetState() store.State
	Subscribe(func(store.State)) func()
}

// Suggester finds authors by approximate name.
type Suggester interface {
	SuggestAuthors(ctx context.Context, name string, limit int) ([]repository.Author, error)
}

type mode string

const (
	modeBrowse     mode = "browse"
	modeMenu       mode = "menu"
	modeFilter     mode = "filter"
	modeReferences mode = "references"
	modeRefFilter  mode = "refFilter"
	modeJump       mode = "jump"
)

// StateChangedMsg tells the app the store has a new snapshot.
type StateChangedMsg struct{}

type suggestionsMsg struct {
	query   string
	authors []repository.Author
	err     error
}

// App hosts the author publications page. It never keeps domain state of
// its own: every render is rebuilt from the store snapshot, and every
// user intent is dispatched back to the store.
type App struct {
	ctx       context.Context
	store     Store
	creators  actions.Creators
	suggester Suggester
	log       *zap.Logger

	changes     chan struct{}
	unsubscribe func()

	route route.Route
	page  *views.AuthorPublications
	view  views.AuthorPublicationsView
	refs  views.ReferenceListProps

	mode        mode
	focus       int
	refRecord   int64
	input       textinput.Model
	suggestions []repository.Author
	suggestPos  int
	status      string
	keys        keyMap
	width       int
	height      int
}

// New subscribes to st. Call Close when the program exits.
func New(ctx context.Context, st Store, creators actions.Creators, suggester Suggester, start route.Route) *App {
	inp := textinput.New()
	inp.CharLimit = 128

	a := &App{
		ctx:       ctx,
		store:     st,
		creators:  creators,
		suggester: suggester,
		log:       logger.FromContext(ctx).Named("tui"),
		changes:   make(chan struct{}, 1),
		route:     start,
		page:      views.NewAuthorPublications(),
		mode:      modeBrowse,
		input:     inp,
		keys:      newKeyMap(),
	}
	a.unsubscribe = st.Subscribe(func(store.State) {
		select {
		case a.changes <- struct{}{}:
		default:
		}
	})
	return a
}

// Close stops listening to the store.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

func (a *App) Init() tea.Cmd {
	a.store.Dispatch(a.creators.FetchAuthor(a.route.AuthorID))
	a.rebuild()
	return a.waitForChange()
}

// waitForChange delivers at most one StateChangedMsg per burst of dispatches.
func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.changes:
			return StateChangedMsg{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

// rebuild projects the current snapshot into the page and reference views.
func (a *App) rebuild() {
	st := a.store.GetState()
	n := len(st.Search.Namespace(search.AuthorPublicationsNS).Results)
	switch {
	case n == 0:
		a.focus = 0
	case a.focus >= n:
		a.focus = n - 1
	case a.focus < 0:
		a.focus = 0
	}
	a.view = a.page.Build(st, a.store, a.creators, a.route, a.focus)
	if a.refRecord != 0 {
		a.refs = views.ReferenceListContainer(st, a.store, a.creators, a.refRecord)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case StateChangedMsg:
		a.rebuild()
		return a, a.waitForChange()
	case suggestionsMsg:
		if m.query != strings.TrimSpace(a.input.Value()) {
			return a, nil
		}
		if m.err != nil {
			a.status = m.err.Error()
			return a, nil
		}
		a.suggestions = m.authors
		a.suggestPos = 0
		return a, nil
	case tea.KeyMsg:
		cmd := a.handleKey(m)
		a.rebuild()
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	if m.String() == "ctrl+c" {
		return tea.Quit
	}
	switch a.mode {
	case modeMenu:
		return a.handleMenuKey(m)
	case modeFilter, modeRefFilter:
		return a.handleFilterKey(m)
	case modeJump:
		return a.handleJumpKey(m)
	case modeReferences:
		return a.handleReferencesKey(m)
	}
	return a.handleBrowseKey(m)
}

func (a *App) handleBrowseKey(m tea.KeyMsg) tea.Cmd {
	a.status = ""
	v := a.view
	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.focus > 0 {
			a.focus--
		}
	case key.Matches(m, a.keys.Down):
		if a.focus < len(v.Rows)-1 {
			a.focus++
		}
	case key.Matches(m, a.keys.Select):
		if row, ok := a.focusedRow(); ok && row.Select != nil {
			row.Select.Toggle()
		}
	case key.Matches(m, a.keys.Highlight):
		if v.Drawer == nil {
			return nil
		}
		if v.Drawer.Highlights.Disabled {
			a.status = v.Drawer.Highlights.Tooltip()
			return nil
		}
		a.mode = modeMenu
	case key.Matches(m, a.keys.Clear):
		if v.Drawer != nil && v.Drawer.OnClear != nil {
			v.Drawer.OnClear()
		}
	case key.Matches(m, a.keys.NextPage):
		if v.Publications.NextPage() {
			a.focus = 0
		}
	case key.Matches(m, a.keys.PrevPage):
		if v.Publications.PrevPage() {
			a.focus = 0
		}
	case key.Matches(m, a.keys.Sort):
		if v.Publications.OnQueryChange == nil {
			return nil
		}
		next := repository.SortMostCited
		if v.Publications.Query.Sort() == repository.SortMostCited {
			next = repository.SortMostRecent
		}
		v.Publications.OnQueryChange(search.NewQuery(search.KeySort, next, search.KeyPage, "1"))
		a.focus = 0
	case key.Matches(m, a.keys.Filter):
		if !v.Ready {
			return nil
		}
		return a.openInput(modeFilter, "filter> ", v.Publications.Query.Text())
	case key.Matches(m, a.keys.References):
		row, ok := a.focusedRow()
		if !ok {
			return nil
		}
		a.refRecord = row.Record.ID
		a.mode = modeReferences
		a.store.Dispatch(a.creators.FetchLiteratureReferences(row.Record.ID, search.NewQuery(search.KeyPage, "1", search.KeyText, "")))
	case key.Matches(m, a.keys.Jump):
		a.suggestions = nil
		return a.openInput(modeJump, "author> ", "")
	}
	return nil
}

func (a *App) handleMenuKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Confirm):
		a.mode = modeBrowse
		if d := a.view.Drawer; d != nil && !d.Highlights.SelfAssign() {
			a.status = d.Highlights.Tooltip()
		}
	case key.Matches(m, a.keys.Back), key.Matches(m, a.keys.Highlight):
		a.mode = modeBrowse
	}
	return nil
}

func (a *App) handleReferencesKey(m tea.KeyMsg) tea.Cmd {
	a.status = ""
	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.Back):
		a.mode = modeBrowse
		a.refRecord = 0
	case key.Matches(m, a.keys.NextPage):
		a.refs.GoToPage(a.refPage() + 1)
	case key.Matches(m, a.keys.PrevPage):
		a.refs.GoToPage(a.refPage() - 1)
	case key.Matches(m, a.keys.Filter):
		return a.openInput(modeRefFilter, "references> ", a.refs.Query[search.KeyText])
	}
	return nil
}

func (a *App) refPage() int {
	return search.QueryFromMap(a.refs.Query).Page()
}

func (a *App) handleFilterKey(m tea.KeyMsg) tea.Cmd {
	back := modeBrowse
	if a.mode == modeRefFilter {
		back = modeReferences
	}
	switch {
	case key.Matches(m, a.keys.Back):
		a.closeInput(back)
		return nil
	case key.Matches(m, a.keys.Confirm):
		text := strings.TrimSpace(a.input.Value())
		if a.mode == modeRefFilter {
			a.refs.Filter(text)
		} else if a.view.Publications.OnQueryChange != nil {
			a.view.Publications.OnQueryChange(search.NewQuery(search.KeyText, text, search.KeyPage, "1"))
			a.focus = 0
		}
		a.closeInput(back)
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return cmd
}

func (a *App) handleJumpKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Back):
		a.suggestions = nil
		a.closeInput(modeBrowse)
		return nil
	case m.String() == "up":
		if a.suggestPos > 0 {
			a.suggestPos--
		}
		return nil
	case m.String() == "down":
		if a.suggestPos < len(a.suggestions)-1 {
			a.suggestPos++
		}
		return nil
	case key.Matches(m, a.keys.Confirm):
		text := strings.TrimSpace(a.input.Value())
		if r, err := route.Parse(text); err == nil {
			a.navigate(r)
			return nil
		}
		if a.suggestPos < len(a.suggestions) {
			a.navigate(route.Route{AuthorID: a.suggestions[a.suggestPos].ID})
			return nil
		}
		a.status = fmt.Sprintf("no author matches %q", text)
		return nil
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	if a.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, a.suggest(strings.TrimSpace(a.input.Value())))
}

func (a *App) suggest(query string) tea.Cmd {
	if a.suggester == nil || query == "" {
		a.suggestions = nil
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		authors, err := a.suggester.SuggestAuthors(ctx, query, suggestLimit)
		if err != nil && !errors.Is(err, context.Canceled) {
			a.log.Warn("suggest authors", zap.String("query", query), zap.Error(err))
		}
		return suggestionsMsg{query: query, authors: authors, err: err}
	}
}

// navigate shows another author's profile.
func (a *App) navigate(r route.Route) {
	a.suggestions = nil
	a.closeInput(modeBrowse)
	a.refRecord = 0
	a.focus = 0
	a.route = r
	a.store.Dispatch(a.creators.FetchAuthor(r.AuthorID))
}

func (a *App) openInput(next mode, prompt, value string) tea.Cmd {
	a.mode = next
	a.input.Prompt = prompt
	a.input.SetValue(value)
	a.input.CursorEnd()
	return a.input.Focus()
}

func (a *App) closeInput(next mode) {
	a.mode = next
	a.input.Blur()
	a.input.SetValue("")
}

func (a *App) focusedRow() (views.LiteratureItem, bool) {
	if a.focus < 0 || a.focus >= len(a.view.Rows) {
		return views.LiteratureItem{}, false
	}
	return a.view.Rows[a.focus], true
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("authorpubs " + a.route.String()))
	b.WriteString("\n\n")

	switch a.mode {
	case modeReferences, modeRefFilter:
		b.WriteString(a.refs.Render())
	default:
		b.WriteString(a.view.Render(a.mode == modeMenu))
	}
	b.WriteString("\n\n")

	if a.mode == modeFilter || a.mode == modeRefFilter || a.mode == modeJump {
		b.WriteString(a.input.View())
		b.WriteString("\n")
	}
	if a.mode == modeJump {
		for i, s := range a.suggestions {
			prefix := "  "
			if i == a.suggestPos {
				prefix = "› "
			}
			fmt.Fprintf(&b, "%s%s (%s)\n", prefix, s.FullName, route.Route{AuthorID: s.ID})
		}
	}
	if a.status != "" {
		b.WriteString(statusStyle.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a *App) renderFooter() string {
	var bindings []key.Binding
	switch a.mode {
	case modeMenu:
		bindings = a.keys.menuHelp()
	case modeFilter, modeRefFilter, modeJump:
		bindings = a.keys.inputHelp()
	case modeReferences:
		bindings = a.keys.referencesHelp()
	default:
		bindings = a.keys.browseHelp(a.view.Props.AssignView)
	}
	content := renderHelp(bindings)
	if a.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(a.width).Render(content)
}
