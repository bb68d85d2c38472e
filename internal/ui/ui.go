package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"taskmaster/internal/app"
	"taskmaster/internal/config"
)

const blinkInterval = 500 * time.Millisecond

type blinkMsg time.Time

type Model struct {
	app    *app.App
	keys   keyMap
	help   help.Model
	width  int
	height int
}

func NewModel(a *app.App, cfg config.Config) Model {
	return Model{
		app:  a,
		keys: newKeyMap(cfg.Keys),
		help: help.New(),
	}
}

// Run drives the program until the user quits. Saving on exit is left to
// the caller so the error can decide the exit status.
func Run(a *app.App, cfg config.Config, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(a, cfg), opts...).Run()
	return err
}

func blinkTick() tea.Cmd {
	return tea.Tick(blinkInterval, func(t time.Time) tea.Msg {
		return blinkMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return blinkTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		dispatch(m.app, m.keys, msg)
		if m.app.ExitRequested() {
			return m, tea.Quit
		}
	case blinkMsg:
		m.app.ToggleCursorBlink()
		return m, blinkTick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}
