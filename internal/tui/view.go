package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wordsteady/internal/game"
	"wordsteady/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.view
	sections := []string{m.viewHeader(), m.viewSpelling(), m.viewSentence()}
	if v.Saved {
		sections = append(sections, mutedStyle.Render("Saved"))
	}
	sections = append(sections, "", m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewHeader() string {
	v := m.view
	lines := []string{
		eyebrowStyle.Render(v.Eyebrow),
		titleStyle.Render(v.Title),
		v.Meaning,
		mutedStyle.Render(v.Example),
	}
	if v.Fallback {
		lines = append(lines, warningStyle.Render("Today’s word could not be loaded, so here is a practice word."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewSpelling() string {
	v := m.view
	lines := []string{headingStyle.Render("Step 2 • Build the word")}

	switch {
	case v.ContentError:
		lines = append(lines, badStyle.Render(v.RevealLabel))
	case v.RevealEnabled:
		lines = append(lines, revealStyle.Render(v.RevealLabel)+"  "+mutedStyle.Render("press enter to start"))
	}

	if len(v.Slots) > 0 {
		slots := make([]string, len(v.Slots))
		for i, s := range v.Slots {
			text := s.Text
			if text == "" {
				text = "_"
			}
			slots[i] = slotStyle.Render(text)
		}
		lines = append(lines, strings.Join(slots, " "))
	}
	if len(v.Bank) > 0 {
		tiles := make([]string, len(v.Bank))
		for i, t := range v.Bank {
			tiles[i] = tileStyle.Render(t.Text)
		}
		lines = append(lines, strings.Join(tiles, " "))
		if v.SpellingPanel == game.PanelBuilding {
			lines = append(lines, mutedStyle.Render("type the letters in order"))
		}
	}
	if line := feedbackLine(v.Feedback); line != "" {
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewSentence() string {
	v := m.view
	lines := []string{headingStyle.Render("Step 3 • Build a sentence")}

	if v.LockedNote != "" {
		lines = append(lines, mutedStyle.Render(v.LockedNote))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	starters := m.viewColumn("Starters", v.Starters, columnStarters)
	finishers := m.viewColumn("Finishers", v.Finishers, columnFinishers)
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, starters, finishers))

	if line := feedbackLine(v.Result); line != "" {
		lines = append(lines, line)
	}
	lines = append(lines, eyebrowStyle.Render(v.ProgressText))

	challenge := "Challenge: off"
	if v.Challenge {
		challenge = "Challenge: on"
	}
	if !v.ChallengeEnabled {
		challenge = mutedStyle.Render(challenge)
	}
	lines = append(lines, challenge)
	if v.DoneEnabled {
		lines = append(lines, okStyle.Render("Done ✓"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewColumn(title string, chips []game.Chip, col column) string {
	lines := []string{eyebrowStyle.Render(title)}
	for i, c := range chips {
		prefix := "  "
		if m.column == col && m.cursor[col] == i && c.Enabled {
			prefix = cursorStyle.Render("> ")
		}
		style := chipStyle
		switch {
		case c.Pressed:
			style = pressedChipStyle
		case !c.Enabled:
			style = disabledChipStyle
		}
		lines = append(lines, prefix+style.Render(strings.TrimSpace(c.Text)))
	}
	return columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func feedbackLine(f models.Feedback) string {
	switch {
	case f.Text == "":
		return ""
	case f.OK:
		return okStyle.Render(f.Text)
	default:
		return badStyle.Render(f.Text)
	}
}
