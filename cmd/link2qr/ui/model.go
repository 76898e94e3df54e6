package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type View int

const (
	MainView View = iota
	SaveView
)

type Model struct {
	currentView View
	qr          *QRModel
	save        *SaveModel
	width       int
	height      int
}

func NewModel(qr *QRModel, save *SaveModel) Model {
	return Model{
		currentView: MainView,
		qr:          qr,
		save:        save,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		// Timer expiries and worker results run here, on the event loop.
		msg.fn()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qr.Update(msg)
		return m, nil

	case saveRequestMsg:
		m.save.Open(msg.path)
		m.currentView = SaveView
		return m, nil

	case saveSubmitMsg:
		m.currentView = MainView
		m.qr.ctrl.Save(msg.path)
		return m, nil

	case saveCancelMsg:
		m.currentView = MainView
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			if m.currentView == MainView && m.qr.notice == nil {
				return m, tea.Quit
			}
		}
	}

	switch m.currentView {
	case SaveView:
		updatedSave, cmd := m.save.Update(msg)
		m.save = updatedSave.(*SaveModel)
		return m, cmd

	default:
		updatedQR, cmd := m.qr.Update(msg)
		m.qr = updatedQR.(*QRModel)
		return m, cmd
	}
}

func (m Model) View() string {
	var content string
	switch m.currentView {
	case SaveView:
		content = m.save.View()
	default:
		content = m.qr.View()
	}

	return m.qr.styles.App.Render(content)
}
