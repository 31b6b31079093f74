package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"wordsteady/internal/game"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.StartOver):
			m.dispatch(game.StartOver())
			m.column = columnStarters
			m.cursor = [2]int{}
		case key.Matches(msg, m.keys.Reset):
			m.dispatch(game.Reset())
		case key.Matches(msg, m.keys.Challenge):
			if m.view.ChallengeEnabled {
				m.dispatch(game.SetChallenge(!m.view.Challenge))
				m.column = columnStarters
			}
		case key.Matches(msg, m.keys.Tab):
			if len(m.view.Finishers) > 0 {
				m.column = 1 - m.column
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor[m.column] > 0 {
				m.cursor[m.column]--
			}
		case key.Matches(msg, m.keys.Down):
			m.cursor[m.column]++
			m.clampCursors()
		case key.Matches(msg, m.keys.Enter):
			m.enter()
		case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
			m.placeLetter(msg.Runes[0])
		}
	}

	return m, nil
}

func (m *Model) enter() {
	if m.view.RevealEnabled && !m.view.ContentError {
		m.dispatch(game.Reveal())
		return
	}
	if m.view.SentencePanel != game.PanelStep3Working {
		return
	}

	switch m.column {
	case columnStarters:
		if len(m.view.Starters) == 0 {
			return
		}
		m.dispatch(game.PickStarter(m.cursor[columnStarters]))
		m.cursor[columnFinishers] = 0
		if len(m.view.Finishers) > 0 {
			m.column = columnFinishers
		}
	case columnFinishers:
		if len(m.view.Finishers) == 0 {
			return
		}
		m.dispatch(game.PickFinisher(m.cursor[columnFinishers]))
	}
}

// placeLetter moves the first enabled bank tile showing r into the next slot
func (m *Model) placeLetter(r rune) {
	if !unicode.IsLetter(r) && r != '-' {
		return
	}
	want := strings.ToUpper(string(r))
	for _, tile := range m.view.Bank {
		if tile.Enabled && tile.Text == want {
			m.dispatch(game.PlaceLetter(tile.Index, -1))
			return
		}
	}
}
