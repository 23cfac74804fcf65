// Package cli: this file contains the interactive server URL editor.
package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/onyx-dot-app/onyx-desktop/common"
	"github.com/onyx-dot-app/onyx-desktop/config"
)

type editState int

const (
	editEditing editState = iota
	editSaved
	editCanceled
)

// editModel is the Bubble Tea model behind --edit. Enter validates and
// saves, escape cancels, and after a save any key exits.
type editModel struct {
	input textinput.Model
	store *config.Store
	theme *theme

	state  editState
	err    error
	result string
}

func newEditModel(store *config.Store, th *theme) editModel {
	ti := textinput.New()
	ti.Placeholder = common.DefaultServerURL
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorMuted)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(colorAccent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorAccent)
	ti.Prompt = "→ "
	ti.CharLimit = 2048
	ti.Width = 60
	ti.SetValue(store.Snapshot().ServerURL)
	ti.Focus()

	return editModel{
		input: ti,
		store: store,
		theme: th,
	}
}

// Init implements tea.Model.
func (m editModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// After a save, any key exits.
		if m.state == editSaved {
			return m, tea.Quit
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.state = editCanceled
			return m, tea.Quit

		case tea.KeyEnter:
			normalized, err := m.store.SetServerURL(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.state = editSaved
			m.result = normalized
			m.input.SetValue(normalized)
			m.input.Blur()
			return m, nil
		}

		// Typing again clears a previous validation error.
		m.err = nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m editModel) View() string {
	t := m.theme

	var status string
	switch {
	case m.err != nil:
		status = t.Error.Render("URL must start with http:// or https://")
	case m.state == editSaved:
		status = t.Success.Render("Saved. Press any key to exit.")
	default:
		status = t.Subtle.Render("enter: save  ·  esc: cancel")
	}

	return fmt.Sprintf(
		"\n  %s\n\n  %s\n  %s\n\n  %s\n",
		t.Title.Render(common.AppName+" Desktop"),
		t.Label.Render("Server URL"),
		m.input.View(),
		status,
	)
}

// Ensure interface compliance.
var _ tea.Model = (*editModel)(nil)

// Edit runs the interactive server URL editor.
func (c *CLI) Edit() error {
	final, err := tea.NewProgram(newEditModel(c.store, c.theme)).Run()
	if err != nil {
		return common.WrapError(err, "failed to run editor")
	}
	if m, ok := final.(editModel); ok && m.state == editSaved {
		fmt.Fprintf(c.out, "%s Server URL set to %s\n",
			c.theme.Success.Render("✓"), m.result)
	}
	return nil
}
