package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/treehop/treehop/internal/ui/styles"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m confirmModel) render() string {
	if m.done {
		return ""
	}
	return styles.WarningStyle.Render(m.prompt)
}

// Confirm shows a yes/no prompt and returns the user's choice.
// Enter alone means "no".
func Confirm(prompt string) (ConfirmResult, error) {
	final, err := run(confirmModel{prompt: prompt})
	if err != nil {
		return ConfirmResult{}, err
	}
	m := final.(confirmModel)
	return ConfirmResult{
		Confirmed: m.confirmed,
		Cancelled: m.cancelled,
	}, nil
}

// ReadLine writes prompt to out and returns the next line from in without
// its line ending. EOF before any input yields io.EOF.
func ReadLine(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
