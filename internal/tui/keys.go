package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Highlight  key.Binding
	Confirm    key.Binding
	Clear      key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Sort       key.Binding
	Filter     key.Binding
	References key.Binding
	Jump       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Highlight:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "highlight")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
		NextPage:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev page")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		References: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "references")),
		Jump:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "author")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// browseHelp lists the bindings shown under the publication list. The
// selection keys only appear in the assign view.
func (k keyMap) browseHelp(assignView bool) []key.Binding {
	out := []key.Binding{k.Up, k.Down}
	if assignView {
		out = append(out, k.Select, k.Highlight, k.Clear)
	}
	return append(out, k.NextPage, k.PrevPage, k.Sort, k.Filter, k.References, k.Jump, k.Quit)
}

func (k keyMap) referencesHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.PrevPage, k.Filter, k.Back, k.Quit}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Back}
}

func (k keyMap) menuHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Back}
}

var (
	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7")).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	footerStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#181825")).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
)

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, helpKeyStyle.Render(help.Key)+" "+helpDescStyle.Render(help.Desc))
	}
	return strings.Join(parts, "  ")
}
