package tui

import "github.com/charmbracelet/lipgloss"

var (
	eyebrowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			MarginTop(1)

	revealStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("29")).
			Padding(0, 2).
			Bold(true)

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36")).
			Bold(true).
			Underline(true)

	tileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	pressedChipStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("231")).
				Background(lipgloss.Color("29"))

	disabledChipStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	columnStyle = lipgloss.NewStyle().
			Width(38).
			MarginRight(2)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
