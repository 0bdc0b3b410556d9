package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"travelchat/internal/conversation"
)

func (m model) View() string {
	header := m.renderHeader()
	content := m.renderContent()
	typing := m.renderTyping()
	input := m.renderInput()
	footer := m.renderFooter()
	return m.theme.root.Render(lipgloss.JoinVertical(lipgloss.Left, header, content, typing, input, footer))
}

func (m *model) renderHeader() string {
	badge := m.theme.badgeOnline.Render("Online")
	if m.snapshot.AwaitingReply {
		badge = m.theme.badgeWaiting.Render("Waiting")
	}
	line := lipgloss.JoinHorizontal(lipgloss.Left,
		m.theme.title.Render(m.cfg.title),
		"  ",
		badge,
	)
	return m.theme.header.Width(maxInt(20, m.width-4)).Render(line)
}

func (m *model) renderContent() string {
	contentWidth := maxInt(40, m.width-4)
	panel := m.theme.panel.Width(contentWidth).Height(transcriptHeight(m.height) + 1)
	if m.showHelp {
		return panel.Render(m.theme.panelTitle.Render("Help") + "\n" + m.renderHelp())
	}
	return panel.Render(m.theme.panelTitle.Render("Conversation") + "\n" + m.transcript.View())
}

func (m *model) renderTyping() string {
	if !m.snapshot.AwaitingReply {
		return " "
	}
	return m.spinner.View() + " " + m.theme.typing.Render("assistant is typing...")
}

func (m *model) renderInput() string {
	contentWidth := maxInt(40, m.width-4)
	inputView := m.input.View()
	if m.snapshot.AwaitingReply {
		inputView = m.theme.helpText.Render("input disabled until the reply arrives")
	}
	return m.theme.inputPanel.Width(contentWidth).Render(inputView)
}

func (m *model) renderFooter() string {
	contentWidth := maxInt(40, m.width-4)
	statusStyle := m.theme.status
	if m.failed {
		statusStyle = m.theme.errorStatus
	}
	line := statusStyle.Render(compactSingleLine(m.statusLine, 160))
	hints := m.theme.helpText.Render("Enter send · Tab/Shift+Tab pick a button · Enter (empty input) press it · PgUp/PgDn scroll · /help · Ctrl+C quit")
	return m.theme.footer.Width(contentWidth).Render(line + "\n" + hints)
}

func (m *model) renderHelp() string {
	lines := []string{
		"Type a message and press Enter to send it to the assistant.",
		"When the assistant offers buttons, Tab and Shift+Tab move between the",
		"buttons of its latest reply; Enter on an empty input presses the",
		"highlighted button. Esc clears the highlight.",
		"",
		"/help   toggle this panel",
		"/quit   exit",
		"",
		fmt.Sprintf("Server: %s", m.cfg.serverURL),
		fmt.Sprintf("Sender: %s", m.session.SenderID()),
		"",
		"Recent activity:",
	}
	start := maxInt(0, len(m.logs)-8)
	for _, line := range m.logs[start:] {
		lines = append(lines, "  "+line)
	}
	return m.theme.helpText.Render(strings.Join(lines, "\n"))
}

// renderTranscript rebuilds the viewport content from the current snapshot.
func (m *model) renderTranscript() {
	m.renderedLen = len(m.snapshot.Entries)
	m.transcript.SetContent(m.transcriptContent())
}

func (m *model) transcriptContent() string {
	entries := m.snapshot.Entries
	if len(entries) == 0 {
		return m.theme.helpText.Render("No messages yet. Say hello to start planning your trip.")
	}
	width := maxInt(24, m.transcript.Width-2)
	active := activeButtonGroup(m.snapshot)

	var b strings.Builder
	for i, e := range entries {
		speaker := e.Origin.String()
		style, ok := m.theme.speaker[speaker]
		if !ok {
			style = m.theme.helpText
		}
		b.WriteString(m.theme.timestamp.Render(shortTime(e.CreatedAt)))
		b.WriteString(" ")
		b.WriteString(style.Render(speakerLabel(e.Origin)))
		b.WriteString("\n")
		switch e.Kind {
		case conversation.KindText:
			textStyle := m.theme.botText
			if e.Origin == conversation.OriginUser {
				textStyle = m.theme.userText
			}
			b.WriteString(textStyle.Render(wrapText(e.Text, width)))
		case conversation.KindButtonGroup:
			focus := -1
			if i == active {
				focus = m.buttonFocus
			}
			b.WriteString(m.renderButtons(e.Buttons, i == active, focus, width))
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderButtons lays chips out left to right, wrapping to width.
func (m *model) renderButtons(buttons []conversation.Button, active bool, focus int, width int) string {
	rows := []string{}
	row := []string{}
	rowWidth := 0
	for i, btn := range buttons {
		style := m.theme.buttonStale
		if active {
			style = m.theme.button
			if i == focus {
				style = m.theme.buttonFocus
			}
		}
		chip := style.Render(truncate(btn.Label, maxInt(8, width-6)))
		chipWidth := lipgloss.Width(chip) + 1
		if len(row) > 0 && rowWidth+chipWidth > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
			rowWidth = 0
		}
		row = append(row, chip, " ")
		rowWidth += chipWidth
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func speakerLabel(origin conversation.Origin) string {
	if origin == conversation.OriginUser {
		return "You"
	}
	return "Assistant"
}
