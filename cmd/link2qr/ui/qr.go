package ui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/link2qr/internal/qrcode"
	"github.com/Varun5711/link2qr/internal/render"
)

type action int

const (
	actionNone action = iota
	actionGenerate
	actionSave
	actionClear
)

// saveRequestMsg asks the root model to open the save prompt.
type saveRequestMsg struct {
	path string
}

// QRModel is the main screen. It is the controller's sink: the controller
// pushes artifacts, statuses and notices into it during Update.
type QRModel struct {
	styles  Styles
	ctrl    *render.Controller
	saveDir string

	input    string
	artifact *qrcode.Artifact
	status   render.Status
	notice   *render.Notice
	last     action

	width  int
	height int
}

func NewQRModel(styles Styles, saveDir string) *QRModel {
	return &QRModel{
		styles:  styles,
		saveDir: saveDir,
	}
}

func (m *QRModel) SetController(c *render.Controller) {
	m.ctrl = c
}

func (m *QRModel) ShowArtifact(a *qrcode.Artifact) {
	m.artifact = a
}

func (m *QRModel) ShowStatus(s render.Status) {
	m.status = s
}

func (m *QRModel) Notify(n render.Notice) {
	m.notice = &n
}

func (m *QRModel) Init() tea.Cmd {
	return nil
}

func (m *QRModel) setInput(text string) {
	if text == m.input {
		return
	}
	m.input = text
	m.ctrl.OnChange(text)
}

func (m *QRModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.notice != nil {
			m.notice = nil
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEnter:
			m.last = actionGenerate
			m.ctrl.ManualGenerate()
		case tea.KeyCtrlS:
			m.last = actionSave
			if m.ctrl.RequireArtifact() {
				path := filepath.Join(m.saveDir, m.ctrl.SuggestedFilename())
				return m, func() tea.Msg { return saveRequestMsg{path: path} }
			}
		case tea.KeyCtrlL:
			m.last = actionClear
			m.input = ""
			m.ctrl.Clear()
		case tea.KeyCtrlA:
			m.ctrl.ToggleAutoMode()
		case tea.KeyCtrlU:
			m.setInput("")
		case tea.KeyBackspace:
			if r := []rune(m.input); len(r) > 0 {
				m.setInput(string(r[:len(r)-1]))
			}
		case tea.KeySpace:
			m.setInput(m.input + " ")
		case tea.KeyRunes:
			m.setInput(m.input + sanitize(msg.Runes))
		}
	}
	return m, nil
}

// sanitize drops line breaks and control characters from typed or pasted text.
func sanitize(runes []rune) string {
	var b strings.Builder
	for _, r := range runes {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (m *QRModel) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Link → QR Code"))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render("Generate QR"))
	b.WriteString("\n")

	b.WriteString(s.Card.Render(m.inputCard()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(s.Card.Render(m.previewCard()))
	b.WriteString("\n")
	b.WriteString(s.Footer.Render("© link2qr • enter generate • ctrl+s save • ctrl+l clear • ctrl+a auto • esc quit"))

	screen := b.String()
	if m.notice != nil {
		return m.overlayNotice(screen)
	}
	return screen
}

func (m *QRModel) inputWidth() int {
	w := 60
	if m.width > 0 && m.width-12 < w {
		w = m.width - 12
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *QRModel) inputCard() string {
	s := m.styles

	value := m.input
	if value == "" {
		value = s.Placeholder.Render("https://…")
	} else {
		value += "█"
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.button(actionGenerate, "enter  Generate QR"),
		m.button(actionSave, "ctrl+s  Save PNG"),
		m.button(actionClear, "ctrl+l  Clear"),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Label.Render("Link / URL"),
		s.FocusedInput.Width(m.inputWidth()).Render(value),
		buttons,
	)
}

func (m *QRModel) button(a action, label string) string {
	s := m.styles
	var normal, active lipgloss.Style
	switch a {
	case actionGenerate:
		normal, active = s.GenerateButton, s.GenerateButtonActive
	case actionSave:
		normal, active = s.SaveButton, s.SaveButtonActive
	default:
		normal, active = s.ClearButton, s.ClearButtonActive
	}
	if m.last == a {
		return active.Render(label)
	}
	return normal.Render(label)
}

func (m *QRModel) statusLine() string {
	s := m.styles

	auto := s.AutoOff.Render("○ auto")
	if m.ctrl != nil && m.ctrl.AutoMode() {
		auto = s.AutoOn.Render("● auto")
	}

	var status string
	switch {
	case m.status.IsError():
		status = s.StatusError.Render(m.status.String())
	case m.status.Kind == render.StatusReady, m.status.Kind == render.StatusGenerated, m.status.Kind == render.StatusSaved:
		status = s.StatusOK.Render(m.status.String())
	default:
		status = s.Status.Render(m.status.String())
	}

	return auto + "  " + status
}

// previewChrome is the number of screen rows used by everything but the symbol.
const previewChrome = 20

func (m *QRModel) previewCard() string {
	s := m.styles
	title := s.Label.Render("Preview")

	if m.artifact == nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, s.Info.Render("Nothing yet. Start typing a link."))
	}

	n := m.artifact.Matrix.Size()
	var lines []string
	switch {
	case m.width == 0 || m.height == 0:
		lines = m.artifact.Matrix.HalfBlocks()
	case m.fits(2*n, n):
		lines = strings.Split(strings.TrimSuffix(m.artifact.Matrix.Blocks(), "\n"), "\n")
	case m.fits(n, (n+1)/2):
		lines = m.artifact.Matrix.HalfBlocks()
	default:
		return lipgloss.JoinVertical(lipgloss.Left, title,
			s.Info.Render("Terminal too small for the preview; saving still works."))
	}

	for i, line := range lines {
		lines[i] = s.Preview.Render(line)
	}

	caption := s.Info.Render(m.artifact.Text)
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"), caption)
}

// fits reports whether a w×h block fits next to the rest of the screen.
func (m *QRModel) fits(w, h int) bool {
	return w+8 <= m.width && h+previewChrome <= m.height
}

func (m *QRModel) overlayNotice(screen string) string {
	s := m.styles
	n := m.notice

	body := lipgloss.JoinVertical(lipgloss.Left,
		s.NoticeTitle.Render(n.Title),
		n.Message,
		"",
		s.Info.Render("press any key"),
	)
	style := s.Notice
	if n.Kind == render.NoticeError {
		style = style.BorderForeground(lipgloss.Color(s.Palette.Danger))
	}
	box := style.Render(body)

	if m.width == 0 || m.height == 0 {
		return screen + "\n\n" + box
	}
	// Leave room for the app padding around every screen.
	return lipgloss.Place(m.width-4, m.height-2, lipgloss.Center, lipgloss.Center, box)
}
