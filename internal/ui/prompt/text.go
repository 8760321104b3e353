package prompt

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/treehop/treehop/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s\n%s", styles.Bold.Render(m.prompt), m.textInput.View()))
}

func newTextInputModel(prompt, placeholder string) textInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)

	return textInputModel{textInput: ti, prompt: prompt}
}

// TextInput shows a text input prompt and returns the trimmed input.
// An empty answer is reported as cancelled.
func TextInput(prompt, placeholder string) (TextInputResult, error) {
	final, err := run(newTextInputModel(prompt, placeholder))
	if err != nil {
		return TextInputResult{}, err
	}
	m := final.(textInputModel)
	value := strings.TrimSpace(m.textInput.Value())
	return TextInputResult{
		Value:     value,
		Cancelled: m.cancelled || value == "",
	}, nil
}
