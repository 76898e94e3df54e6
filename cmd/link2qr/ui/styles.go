package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/link2qr/internal/theme"
)

// Styles is built once from the configured palette.
type Styles struct {
	Palette theme.Palette

	App          lipgloss.Style
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Card         lipgloss.Style
	Label        lipgloss.Style
	Input        lipgloss.Style
	FocusedInput lipgloss.Style
	Placeholder  lipgloss.Style

	GenerateButton       lipgloss.Style
	GenerateButtonActive lipgloss.Style
	SaveButton           lipgloss.Style
	SaveButtonActive     lipgloss.Style
	ClearButton          lipgloss.Style
	ClearButtonActive    lipgloss.Style

	AutoOn  lipgloss.Style
	AutoOff lipgloss.Style

	Status      lipgloss.Style
	StatusOK    lipgloss.Style
	StatusError lipgloss.Style

	Preview lipgloss.Style
	Info    lipgloss.Style
	Footer  lipgloss.Style

	Notice      lipgloss.Style
	NoticeTitle lipgloss.Style
}

func NewStyles(p theme.Palette) Styles {
	p = p.Sanitize()

	bg := lipgloss.Color(p.Background)
	card := lipgloss.Color(p.Card)
	fg := lipgloss.Color(p.Foreground)
	muted := lipgloss.Color("#94a3b8")
	soft := lipgloss.Color("#cbd5e1")

	return Styles{
		Palette: p,

		App: lipgloss.NewStyle().
			Background(bg).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(soft),

		Card: lipgloss.NewStyle().
			Background(card).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Darken(p.Card, 0.85))).
			Padding(1, 2).
			MarginTop(1),

		Label: lipgloss.NewStyle().
			Foreground(fg).
			Background(card).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),

		FocusedInput: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.Accent)).
			Padding(0, 1),

		Placeholder: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		GenerateButton:       button(p.Accent),
		GenerateButtonActive: button(theme.Darken(p.Accent, 0.85)),
		SaveButton:           button(p.Primary),
		SaveButtonActive:     button(theme.Darken(p.Primary, 0.85)),
		ClearButton:          button(p.Danger),
		ClearButtonActive:    button(theme.Darken(p.Danger, 0.85)),

		AutoOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		AutoOff: lipgloss.NewStyle().
			Foreground(muted),

		Status: lipgloss.NewStyle().
			Foreground(soft),

		StatusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Danger)).
			Bold(true),

		Preview: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ffffff")),

		Info: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		Footer: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),

		Notice: lipgloss.NewStyle().
			Foreground(fg).
			Background(card).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(p.Primary)).
			Padding(1, 3),

		NoticeTitle: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true).
			MarginBottom(1),
	}
}

// button draws a filled key hint. The active variant of each button is the
// same fill darkened, shown for the action the user triggered last.
func button(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(hex)).
		Padding(0, 2).
		MarginRight(1).
		Bold(true)
}
