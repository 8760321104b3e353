package prompt

import (
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/treehop/treehop/internal/ui/styles"
)

// Option is one selectable entry.
type Option struct {
	Label  string
	Detail string // shown dimmed next to the label
}

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Value     string
	Index     int
	Cancelled bool
}

type listItem struct {
	option Option
	index  int
}

func (i listItem) Title() string {
	if i.option.Detail == "" {
		return i.option.Label
	}
	return i.option.Label + "  " + styles.MutedStyle.Render(i.option.Detail)
}
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.option.Label }

type selectModel struct {
	list      list.Model
	done      bool
	cancelled bool
	selected  int
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		filtering := m.list.FilterState() == list.Filtering
		switch msg.String() {
		case "enter":
			if filtering {
				break
			}
			if item, ok := m.list.SelectedItem().(listItem); ok {
				m.selected = item.index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "esc", "q":
			if filtering {
				break
			}
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.list.View())
}

func newSelectModel(title string, options []Option) selectModel {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = listItem{option: opt, index: i}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)

	l := list.New(items, delegate, 60, min(len(options)+6, 20))
	l.Title = title
	l.Styles.Title = styles.TitleStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return selectModel{list: l, selected: -1}
}

// Select shows a filterable list and returns the chosen option.
func Select(title string, options []Option) (SelectResult, error) {
	if len(options) == 0 {
		return SelectResult{Cancelled: true}, nil
	}

	final, err := run(newSelectModel(title, options))
	if err != nil {
		return SelectResult{}, err
	}
	m := final.(selectModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(options) {
		return SelectResult{Cancelled: true}, nil
	}

	return SelectResult{
		Value: options[m.selected].Label,
		Index: m.selected,
	}, nil
}
