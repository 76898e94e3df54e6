package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type saveSubmitMsg struct {
	path string
}

type saveCancelMsg struct{}

// SaveModel prompts for the destination of the PNG.
type SaveModel struct {
	styles Styles
	path   string
	err    string
}

func NewSaveModel(styles Styles) *SaveModel {
	return &SaveModel{styles: styles}
}

func (m *SaveModel) Init() tea.Cmd {
	return nil
}

// Open resets the prompt with a proposed path.
func (m *SaveModel) Open(path string) {
	m.path = path
	m.err = ""
}

func (m *SaveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		path := strings.TrimSpace(m.path)
		if path == "" {
			m.err = "Enter a file name"
			return m, nil
		}
		return m, func() tea.Msg { return saveSubmitMsg{path: path} }
	case tea.KeyEsc:
		return m, func() tea.Msg { return saveCancelMsg{} }
	case tea.KeyCtrlU:
		m.path = ""
	case tea.KeyBackspace:
		if r := []rune(m.path); len(r) > 0 {
			m.path = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.path += " "
	case tea.KeyRunes:
		m.path += sanitize(keyMsg.Runes)
	}
	m.err = ""
	return m, nil
}

func (m *SaveModel) View() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Save file QR"))
	b.WriteString("\n\n")
	b.WriteString(s.Label.Render("PNG path"))
	b.WriteString("\n")
	b.WriteString(s.FocusedInput.Width(60).Render(m.path + "█"))
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(s.StatusError.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(s.Info.Render(".png is added when the name has no extension"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		s.SaveButton.Render("enter  Save"),
		s.ClearButton.Render("esc  Cancel"),
	))

	return s.Card.Render(b.String())
}
