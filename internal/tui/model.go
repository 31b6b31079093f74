package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"wordsteady/internal/game"
)

type column int

const (
	columnStarters column = iota
	columnFinishers
)

// Model is the terminal play surface over one session machine
type Model struct {
	machine  *game.Machine
	view     game.View
	keys     KeyMap
	help     help.Model
	column   column
	cursor   [2]int
	quitting bool
	width    int
	height   int
}

func NewModel(machine *game.Machine) Model {
	return Model{
		machine: machine,
		view:    machine.View(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// dispatch sends action to the machine and keeps the cursors inside the
// freshly projected lists
func (m *Model) dispatch(action game.Action) {
	m.view = m.machine.Dispatch(action)
	m.clampCursors()
}

func (m *Model) clampCursors() {
	lengths := [2]int{len(m.view.Starters), len(m.view.Finishers)}
	for i, n := range lengths {
		switch {
		case n == 0:
			m.cursor[i] = 0
		case m.cursor[i] >= n:
			m.cursor[i] = n - 1
		}
	}
}
