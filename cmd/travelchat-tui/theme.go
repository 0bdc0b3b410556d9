package main

import "github.com/charmbracelet/lipgloss"

type uiTheme struct {
	root         lipgloss.Style
	header       lipgloss.Style
	title        lipgloss.Style
	badgeOnline  lipgloss.Style
	badgeWaiting lipgloss.Style
	panel        lipgloss.Style
	panelTitle   lipgloss.Style
	footer       lipgloss.Style
	status       lipgloss.Style
	errorStatus  lipgloss.Style
	inputPanel   lipgloss.Style
	helpText     lipgloss.Style
	typing       lipgloss.Style
	timestamp    lipgloss.Style
	speaker      map[string]lipgloss.Style
	userText     lipgloss.Style
	botText      lipgloss.Style
	button       lipgloss.Style
	buttonFocus  lipgloss.Style
	buttonStale  lipgloss.Style
}

func newTheme() uiTheme {
	teal := lipgloss.Color("#2ec4b6")
	sky := lipgloss.Color("#4cc9f0")
	sand := lipgloss.Color("#ffd166")
	coral := lipgloss.Color("#ef476f")
	bg := lipgloss.Color("#0b132b")
	panelBg := lipgloss.Color("#1c2541")
	text := lipgloss.Color("#f1faee")
	muted := lipgloss.Color("#8d99ae")

	return uiTheme{
		root: lipgloss.NewStyle().
			Background(bg).
			Foreground(text).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(sky).
			Padding(0, 1),
		title: lipgloss.NewStyle().Foreground(sand).Bold(true),
		badgeOnline: lipgloss.NewStyle().
			Background(teal).
			Foreground(lipgloss.Color("#06281f")).
			Bold(true).
			Padding(0, 1),
		badgeWaiting: lipgloss.NewStyle().
			Background(sand).
			Foreground(lipgloss.Color("#3d2c00")).
			Bold(true).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(sky).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().
			Foreground(teal).
			Bold(true),
		footer: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(muted).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(sand).
			Padding(0, 1),
		status:      lipgloss.NewStyle().Foreground(sky).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(coral).Bold(true),
		inputPanel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(teal).
			Padding(0, 1),
		helpText:  lipgloss.NewStyle().Foreground(muted),
		typing:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		timestamp: lipgloss.NewStyle().Foreground(muted),
		speaker: map[string]lipgloss.Style{
			"user":      lipgloss.NewStyle().Foreground(teal).Bold(true),
			"assistant": lipgloss.NewStyle().Foreground(sand).Bold(true),
		},
		userText: lipgloss.NewStyle().Foreground(text),
		botText:  lipgloss.NewStyle().Foreground(text),
		button: lipgloss.NewStyle().
			Foreground(sky).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(sky).
			Padding(0, 1),
		buttonFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0b132b")).
			Background(sand).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(sand).
			Padding(0, 1),
		buttonStale: lipgloss.NewStyle().
			Foreground(muted).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
	}
}
