package prompt

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// run executes model on stderr with the terminal's color profile
// (handles piped output, NO_COLOR, etc.).
func run(model tea.Model) (tea.Model, error) {
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	return p.Run()
}
